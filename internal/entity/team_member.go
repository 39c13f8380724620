package entity

// Availability describes whether a team member can take new leads.
type Availability string

// Supported availability states.
const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

// Capacity tracks the concurrent lead load of a team member.
type Capacity struct {
	Current int `json:"current"`
	Maximum int `json:"maximum"`
}

// Performance aggregates the historical sales metrics of a team member.
type Performance struct {
	ConversionRate     float64 `json:"conversion_rate"`
	AvgResponseMinutes float64 `json:"avg_response_minutes"`
	Satisfaction       float64 `json:"satisfaction"`
	ActiveLeads        int     `json:"active_leads"`
}

// DaySchedule is a single working window expressed as zero-padded "HH:MM" bounds.
type DaySchedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WorkingHours holds the weekly schedule of a team member. Schedule keys are
// lowercase English weekday names; a missing key means the day is off.
type WorkingHours struct {
	Timezone string                 `json:"timezone"`
	Schedule map[string]DaySchedule `json:"schedule"`
}

// TeamMember represents a sales or technical staff record eligible for lead routing.
type TeamMember struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	Expertise    []string     `json:"expertise"`
	Industries   []string     `json:"industries"`
	Languages    []string     `json:"languages"`
	Capacity     Capacity     `json:"capacity"`
	Availability Availability `json:"availability"`
	Performance  Performance  `json:"performance"`
	WorkingHours WorkingHours `json:"working_hours"`
	IsActive     bool         `json:"is_active"`
}

// Utilization returns the current/maximum capacity ratio. Members without a
// positive maximum are treated as fully loaded.
func (m *TeamMember) Utilization() float64 {
	if m.Capacity.Maximum <= 0 {
		return 1
	}
	return float64(m.Capacity.Current) / float64(m.Capacity.Maximum)
}

// AtCapacity reports whether the member cannot accept another lead.
func (m *TeamMember) AtCapacity() bool {
	return m.Capacity.Current >= m.Capacity.Maximum
}
