package entity

import "github.com/google/uuid"

// Lead is an inbound sales inquiry with contact and project details.
type Lead struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Company           string    `json:"company,omitempty"`
	IndustrySector    string    `json:"industry_sector,omitempty"`
	ProductCategory   string    `json:"product_category,omitempty"`
	BudgetRange       string    `json:"budget_range,omitempty"`
	Urgency           string    `json:"urgency,omitempty"`
	CompanySize       string    `json:"company_size,omitempty"`
	PreferredLanguage string    `json:"preferred_language,omitempty"`
	Timezone          string    `json:"timezone,omitempty"`
	Message           string    `json:"message,omitempty"`
}
