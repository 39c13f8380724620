package routing

import "github.com/octobees/lead-router/internal/entity"

// Saudi working week runs Sunday through Thursday.
var saudiWeek = map[string]entity.DaySchedule{
	"sunday":    {Start: "08:00", End: "17:00"},
	"monday":    {Start: "08:00", End: "17:00"},
	"tuesday":   {Start: "08:00", End: "17:00"},
	"wednesday": {Start: "08:00", End: "17:00"},
	"thursday":  {Start: "08:00", End: "15:00"},
}

// DefaultTeam returns the built-in sales roster used when no roster is
// supplied at construction. Also serves as a fixture for tests.
func DefaultTeam() []entity.TeamMember {
	return []entity.TeamMember{
		{
			ID:           "tm-1",
			Name:         "Ahmed Al-Rashid",
			Email:        "ahmed.alrashid@example.com",
			Role:         "Senior Sales Manager",
			Expertise:    []string{"enterprise sales", "heavy equipment", "contract negotiation"},
			Industries:   []string{"oil_gas", "petrochemical"},
			Languages:    []string{"arabic", "english"},
			Capacity:     entity.Capacity{Current: 3, Maximum: 8},
			Availability: entity.AvailabilityAvailable,
			Performance:  entity.Performance{ConversionRate: 0.42, AvgResponseMinutes: 45, Satisfaction: 4.6, ActiveLeads: 3},
			WorkingHours: entity.WorkingHours{Timezone: "Asia/Riyadh", Schedule: saudiWeek},
			IsActive:     true,
		},
		{
			ID:           "tm-2",
			Name:         "Fatima Al-Zahrani",
			Email:        "fatima.alzahrani@example.com",
			Role:         "Sales Engineer",
			Expertise:    []string{"industrial pumps", "compressors", "technical consulting"},
			Industries:   []string{"manufacturing", "water_treatment"},
			Languages:    []string{"arabic", "english"},
			Capacity:     entity.Capacity{Current: 2, Maximum: 6},
			Availability: entity.AvailabilityAvailable,
			Performance:  entity.Performance{ConversionRate: 0.35, AvgResponseMinutes: 60, Satisfaction: 4.4, ActiveLeads: 2},
			WorkingHours: entity.WorkingHours{Timezone: "Asia/Riyadh", Schedule: saudiWeek},
			IsActive:     true,
		},
		{
			ID:           "tm-3",
			Name:         "Mohammed Al-Otaibi",
			Email:        "mohammed.alotaibi@example.com",
			Role:         "Project Manager",
			Expertise:    []string{"project delivery", "construction equipment", "site logistics"},
			Industries:   []string{"oil_gas", "construction"},
			Languages:    []string{"arabic", "english"},
			Capacity:     entity.Capacity{Current: 4, Maximum: 7},
			Availability: entity.AvailabilityAvailable,
			Performance:  entity.Performance{ConversionRate: 0.38, AvgResponseMinutes: 90, Satisfaction: 4.2, ActiveLeads: 4},
			WorkingHours: entity.WorkingHours{Timezone: "Asia/Riyadh", Schedule: saudiWeek},
			IsActive:     true,
		},
		{
			ID:           "tm-4",
			Name:         "Sara Al-Qahtani",
			Email:        "sara.alqahtani@example.com",
			Role:         "Account Executive",
			Expertise:    []string{"spare parts", "quotations", "customer success"},
			Industries:   []string{"construction", "real_estate"},
			Languages:    []string{"arabic", "english", "french"},
			Capacity:     entity.Capacity{Current: 1, Maximum: 5},
			Availability: entity.AvailabilityAvailable,
			Performance:  entity.Performance{ConversionRate: 0.30, AvgResponseMinutes: 30, Satisfaction: 4.8, ActiveLeads: 1},
			WorkingHours: entity.WorkingHours{Timezone: "Asia/Riyadh", Schedule: saudiWeek},
			IsActive:     true,
		},
		{
			ID:           "tm-5",
			Name:         "Khalid Al-Mutairi",
			Email:        "khalid.almutairi@example.com",
			Role:         "Technical Sales Specialist",
			Expertise:    []string{"generators", "power systems", "maintenance contracts"},
			Industries:   []string{"manufacturing", "utilities"},
			Languages:    []string{"arabic", "english", "urdu"},
			Capacity:     entity.Capacity{Current: 5, Maximum: 6},
			Availability: entity.AvailabilityBusy,
			Performance:  entity.Performance{ConversionRate: 0.33, AvgResponseMinutes: 120, Satisfaction: 4.0, ActiveLeads: 5},
			WorkingHours: entity.WorkingHours{Timezone: "Asia/Riyadh", Schedule: saudiWeek},
			IsActive:     true,
		},
	}
}

// DefaultRules returns the built-in routing rules used when no rules are
// supplied at construction, in declared priority order.
func DefaultRules() []entity.RoutingRule {
	return []entity.RoutingRule{
		{
			ID:       "rule-1",
			Name:     "VIP Budget to Senior Sales",
			Priority: 1,
			Conditions: entity.RuleConditions{
				BudgetRange: strPtr("over_1m"),
			},
			AssignTo: strPtr("tm-1"),
			IsActive: true,
		},
		{
			ID:       "rule-2",
			Name:     "Immediate Urgency Fast Track",
			Priority: 2,
			Conditions: entity.RuleConditions{
				Urgency: strPtr("immediate"),
			},
			AssignTo: strPtr("tm-4"),
			IsActive: true,
		},
		{
			ID:       "rule-3",
			Name:     "Oil & Gas to Project Manager",
			Priority: 3,
			Conditions: entity.RuleConditions{
				Industry:    strPtr("oil_gas"),
				BudgetRange: strPtr("500k_1m"),
			},
			AssignTo: strPtr("tm-3"),
			IsActive: true,
		},
		{
			ID:       "rule-4",
			Name:     "High Score to Senior Sales",
			Priority: 4,
			Conditions: entity.RuleConditions{
				MinLeadScore: floatPtr(80),
			},
			AssignTo: strPtr("tm-1"),
			IsActive: true,
		},
		{
			ID:       "rule-5",
			Name:     "Construction to Account Executive",
			Priority: 5,
			Conditions: entity.RuleConditions{
				Industry: strPtr("construction"),
			},
			AssignTo: strPtr("tm-4"),
			IsActive: true,
		},
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
