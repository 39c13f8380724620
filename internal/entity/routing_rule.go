package entity

// RuleConditions declares the criteria a routing rule constrains. Nil fields
// are wildcards: they never cause a mismatch. MinLeadScore is a minimum
// threshold, not an exact match.
type RuleConditions struct {
	Industry        *string  `json:"industry,omitempty"`
	ProductCategory *string  `json:"product_category,omitempty"`
	BudgetRange     *string  `json:"budget_range,omitempty"`
	Urgency         *string  `json:"urgency,omitempty"`
	CompanySize     *string  `json:"company_size,omitempty"`
	Language        *string  `json:"language,omitempty"`
	MinLeadScore    *float64 `json:"lead_score,omitempty"`
}

// RoutingRule is a declarative dispatch rule. Lower Priority values are
// evaluated first. AssignTo, when set, points directly at a team member id.
type RoutingRule struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Priority   int            `json:"priority"`
	Conditions RuleConditions `json:"conditions"`
	AssignTo   *string        `json:"assign_to,omitempty"`
	IsActive   bool           `json:"is_active"`
}
