package routing

import "github.com/octobees/lead-router/internal/entity"

// Priority is the coarse urgency classification of a routed lead, independent
// of who it is assigned to.
type Priority string

// Priority tiers, from least to most urgent.
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Criteria is the normalized routing query built from an incoming lead.
// Empty string fields mean the lead did not declare that attribute; the
// heuristic scorer skips them, and rule conditions on them do not match.
type Criteria struct {
	Industry        string  `json:"industry,omitempty"`
	ProductCategory string  `json:"product_category,omitempty"`
	BudgetRange     string  `json:"budget_range,omitempty"`
	Urgency         string  `json:"urgency,omitempty"`
	CompanySize     string  `json:"company_size,omitempty"`
	Language        string  `json:"language,omitempty"`
	Timezone        string  `json:"timezone,omitempty"`
	LeadScore       float64 `json:"lead_score"`
}

// Decision is the outcome of routing a single lead.
type Decision struct {
	AssignedTo           string   `json:"assigned_to,omitempty"`
	TeamName             string   `json:"team_name,omitempty"`
	Priority             Priority `json:"priority"`
	EstimatedResponseMin int      `json:"estimated_response_minutes"`
	RecommendedApproach  string   `json:"recommended_approach"`
	Confidence           float64  `json:"confidence"`
	Reasoning            []string `json:"reasoning"`
	AlternativeAssignees []string `json:"alternative_assignees"`
}

// CapacityPatch is a partial update merged into a member's capacity fields.
type CapacityPatch struct {
	Current      *int                 `json:"current,omitempty"`
	Maximum      *int                 `json:"maximum,omitempty"`
	Availability *entity.Availability `json:"availability,omitempty"`
}

// PerformancePatch is a partial update merged into a member's performance fields.
type PerformancePatch struct {
	ConversionRate     *float64 `json:"conversion_rate,omitempty"`
	AvgResponseMinutes *float64 `json:"avg_response_minutes,omitempty"`
	Satisfaction       *float64 `json:"satisfaction,omitempty"`
	ActiveLeads        *int     `json:"active_leads,omitempty"`
}

// MemberWorkload is a read-only utilization snapshot for dashboards.
type MemberWorkload struct {
	MemberID     string              `json:"member_id"`
	Name         string              `json:"name"`
	Utilization  float64             `json:"utilization"`
	Availability entity.Availability `json:"availability"`
}

// Statistics summarises the routing configuration and team load.
type Statistics struct {
	TotalRules         int     `json:"total_rules"`
	ActiveRules        int     `json:"active_rules"`
	TeamMembers        int     `json:"team_members"`
	AvailableMembers   int     `json:"available_members"`
	AverageUtilization float64 `json:"average_utilization"`
}
