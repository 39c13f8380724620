package dto

import (
	"github.com/octobees/lead-router/internal/service/routing"
	"github.com/octobees/lead-router/internal/service/scoring"
)

// LeadPayload carries the inbound inquiry fields for routing.
type LeadPayload struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Company           string `json:"company"`
	IndustrySector    string `json:"industry_sector"`
	ProductCategory   string `json:"product_category"`
	BudgetRange       string `json:"budget_range"`
	Urgency           string `json:"urgency"`
	CompanySize       string `json:"company_size"`
	PreferredLanguage string `json:"preferred_language"`
	Timezone          string `json:"timezone"`
	Message           string `json:"message"`
}

// BehaviorPayload is the pre-computed engagement summary for a lead.
type BehaviorPayload struct {
	TimeOnPageSeconds  int      `json:"time_on_page_seconds"`
	ScrollDepthPercent int      `json:"scroll_depth_percent"`
	DeclaredScore      *float64 `json:"declared_score,omitempty"`
}

// RouteLeadRequest is the body of POST /routing/route.
type RouteLeadRequest struct {
	Lead     LeadPayload       `json:"lead"`
	Behavior BehaviorPayload   `json:"behavior"`
	Criteria *routing.Criteria `json:"criteria,omitempty"`
}

// RouteLeadResponse returns the computed score and routing decision.
type RouteLeadResponse struct {
	LeadID   string                 `json:"lead_id"`
	Score    scoring.ScoreBreakdown `json:"score"`
	Decision routing.Decision       `json:"decision"`
}
