package routing

import (
	"fmt"
	"strings"

	"github.com/octobees/lead-router/internal/entity"
)

// BestMatch scores every candidate against the criteria with an additive
// weighted heuristic and returns the strictly highest scorer along with a
// reasoning trace. Ties keep the earlier candidate, so the directory's base
// order decides. Members at capacity are never selected.
func (d *Directory) BestMatch(criteria Criteria, candidates []entity.TeamMember) (*entity.TeamMember, []string) {
	var (
		best        *entity.TeamMember
		bestScore   float64
		bestReasons []string
	)

	for i := range candidates {
		member := candidates[i]
		if member.AtCapacity() {
			continue
		}

		score, reasons := d.scoreCandidate(criteria, member)
		if best == nil || score > bestScore {
			best = &candidates[i]
			bestScore = score
			bestReasons = reasons
		}
	}

	if best == nil {
		return nil, []string{"No team member with free capacity for heuristic matching"}
	}

	trace := make([]string, 0, len(bestReasons)+1)
	trace = append(trace, fmt.Sprintf("Best match: %s (score %.1f)", best.Name, bestScore))
	trace = append(trace, bestReasons...)
	return best, trace
}

func (d *Directory) scoreCandidate(criteria Criteria, member entity.TeamMember) (float64, []string) {
	score := 0.0
	var reasons []string

	if criteria.Industry != "" && containsFold(member.Industries, criteria.Industry) {
		score += 30
		reasons = append(reasons, fmt.Sprintf("Industry experience: %s", criteria.Industry))
	}
	if criteria.ProductCategory != "" && matchesExpertise(member.Expertise, criteria.ProductCategory) {
		score += 25
		reasons = append(reasons, fmt.Sprintf("Product expertise: %s", criteria.ProductCategory))
	}
	if criteria.Language != "" && containsFold(member.Languages, criteria.Language) {
		score += 10
		reasons = append(reasons, fmt.Sprintf("Speaks %s", criteria.Language))
	}

	switch util := member.Utilization(); {
	case util < 0.5:
		score += 20
		reasons = append(reasons, "Low current workload")
	case util < 0.8:
		score += 10
		reasons = append(reasons, "Moderate current workload")
	}

	score += member.Performance.ConversionRate * 10
	score -= (5 - member.Performance.Satisfaction) * 5
	if bonus := (120 - member.Performance.AvgResponseMinutes) / 10; bonus > 0 {
		score += bonus
	}

	if d.InWorkingHours(member) {
		score += 15
		reasons = append(reasons, "Currently within working hours")
	}

	return score, reasons
}

// matchesExpertise performs a bidirectional substring comparison so that e.g.
// "pumps" matches the expertise tag "industrial pumps" and vice versa.
func matchesExpertise(expertise []string, category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return false
	}
	for _, tag := range expertise {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if strings.Contains(tag, category) || strings.Contains(category, tag) {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
