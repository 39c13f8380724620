package routing

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/octobees/lead-router/internal/entity"
)

// ErrMemberNotFound is returned when a capacity or performance update targets
// an unknown team member.
var ErrMemberNotFound = errors.New("team member not found")

// Directory holds the roster of team members for the lifetime of the process.
// All reads and mutations go through the mutex so concurrent capacity updates
// are never lost.
type Directory struct {
	mu      sync.RWMutex
	members []entity.TeamMember
	now     func() time.Time
}

// NewDirectory builds a directory over the given roster. The clock is used for
// working-hours checks and defaults to time.Now.
func NewDirectory(members []entity.TeamMember, now func() time.Time) *Directory {
	if now == nil {
		now = time.Now
	}
	roster := make([]entity.TeamMember, len(members))
	copy(roster, members)
	return &Directory{members: roster, now: now}
}

// Available returns active members who are not unavailable, sorted available
// before busy, then by ascending utilization, then by descending conversion
// rate. This ordering is the deterministic fallback order for assignment.
func (d *Directory) Available() []entity.TeamMember {
	d.mu.RLock()
	defer d.mu.RUnlock()

	available := make([]entity.TeamMember, 0, len(d.members))
	for _, m := range d.members {
		if !m.IsActive || m.Availability == entity.AvailabilityUnavailable {
			continue
		}
		available = append(available, m)
	}
	sortByBaseOrder(available)
	return available
}

// Active returns every active member in base-sorted order, regardless of
// availability. Used as the widest pool for the last-resort assignment path.
func (d *Directory) Active() []entity.TeamMember {
	d.mu.RLock()
	defer d.mu.RUnlock()

	active := make([]entity.TeamMember, 0, len(d.members))
	for _, m := range d.members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	sortByBaseOrder(active)
	return active
}

// Get returns a copy of the member with the given id.
func (d *Directory) Get(id string) (entity.TeamMember, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, m := range d.members {
		if m.ID == id {
			return m, true
		}
	}
	return entity.TeamMember{}, false
}

// Add appends a member to the roster.
func (d *Directory) Add(member entity.TeamMember) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.members = append(d.members, member)
}

// Size returns the roster length including inactive members.
func (d *Directory) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.members)
}

// UpdateCapacity merges the non-nil patch fields into the member's capacity.
// It does not validate current against maximum; that is the caller's contract.
func (d *Directory) UpdateCapacity(id string, patch CapacityPatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.members {
		if d.members[i].ID != id {
			continue
		}
		if patch.Current != nil {
			d.members[i].Capacity.Current = *patch.Current
			d.members[i].Performance.ActiveLeads = *patch.Current
		}
		if patch.Maximum != nil {
			d.members[i].Capacity.Maximum = *patch.Maximum
		}
		if patch.Availability != nil {
			d.members[i].Availability = *patch.Availability
		}
		return nil
	}
	return ErrMemberNotFound
}

// UpdatePerformance merges the non-nil patch fields into the member's
// performance metrics.
func (d *Directory) UpdatePerformance(id string, patch PerformancePatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.members {
		if d.members[i].ID != id {
			continue
		}
		if patch.ConversionRate != nil {
			d.members[i].Performance.ConversionRate = *patch.ConversionRate
		}
		if patch.AvgResponseMinutes != nil {
			d.members[i].Performance.AvgResponseMinutes = *patch.AvgResponseMinutes
		}
		if patch.Satisfaction != nil {
			d.members[i].Performance.Satisfaction = *patch.Satisfaction
		}
		if patch.ActiveLeads != nil {
			d.members[i].Performance.ActiveLeads = *patch.ActiveLeads
		}
		return nil
	}
	return ErrMemberNotFound
}

// Workload returns a utilization snapshot of the whole roster.
func (d *Directory) Workload() []MemberWorkload {
	d.mu.RLock()
	defer d.mu.RUnlock()

	workload := make([]MemberWorkload, 0, len(d.members))
	for i := range d.members {
		m := &d.members[i]
		workload = append(workload, MemberWorkload{
			MemberID:     m.ID,
			Name:         m.Name,
			Utilization:  m.Utilization(),
			Availability: m.Availability,
		})
	}
	return workload
}

// InWorkingHours reports whether the member's local clock currently falls
// inside that weekday's schedule window. Days without a schedule entry are
// days off. Bounds are inclusive and compared lexicographically as "HH:MM",
// which assumes zero-padded times and windows that do not cross midnight.
func (d *Directory) InWorkingHours(member entity.TeamMember) bool {
	loc, err := time.LoadLocation(member.WorkingHours.Timezone)
	if err != nil {
		return false
	}

	local := d.now().In(loc)
	day := strings.ToLower(local.Weekday().String())
	window, ok := member.WorkingHours.Schedule[day]
	if !ok {
		return false
	}

	clock := local.Format("15:04")
	return window.Start <= clock && clock <= window.End
}

func sortByBaseOrder(members []entity.TeamMember) {
	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := availabilityRank(members[i].Availability), availabilityRank(members[j].Availability)
		if ri != rj {
			return ri < rj
		}
		ui, uj := members[i].Utilization(), members[j].Utilization()
		if ui != uj {
			return ui < uj
		}
		return members[i].Performance.ConversionRate > members[j].Performance.ConversionRate
	})
}

func availabilityRank(a entity.Availability) int {
	if a == entity.AvailabilityAvailable {
		return 0
	}
	return 1
}
