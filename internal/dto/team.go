package dto

import "github.com/octobees/lead-router/internal/entity"

// TeamMemberRequest is the body of POST /team.
type TeamMemberRequest struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	Expertise    []string            `json:"expertise"`
	Industries   []string            `json:"industries"`
	Languages    []string            `json:"languages"`
	Capacity     entity.Capacity     `json:"capacity"`
	Availability entity.Availability `json:"availability"`
	Performance  entity.Performance  `json:"performance"`
	WorkingHours entity.WorkingHours `json:"working_hours"`
}

// RoutingRuleRequest is the body of POST /rules.
type RoutingRuleRequest struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Priority   int                   `json:"priority"`
	Conditions entity.RuleConditions `json:"conditions"`
	AssignTo   *string               `json:"assign_to,omitempty"`
}
