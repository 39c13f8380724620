package scoring

import (
	"math"
	"strings"
)

const (
	categoryBudget     = "budget"
	categoryUrgency    = "urgency"
	categoryIndustry   = "industry_fit"
	categoryEngagement = "engagement"
	categoryMessage    = "message_quality"
)

var coreIndustries = map[string]struct{}{
	"oil_gas":       {},
	"construction":  {},
	"manufacturing": {},
}

// LeadSignals captures the static attributes and behavioral summary used for
// lead qualification scoring.
type LeadSignals struct {
	Industry           string
	BudgetRange        string
	Urgency            string
	TimeOnPageSeconds  int
	ScrollDepthPercent int
	MessageLength      int
	DeclaredScore      *float64
}

// ScoreBreakdown reports the aggregate 0-100 score and the per-category breakdown.
type ScoreBreakdown struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// ComputeScore evaluates the provided signals and returns the clamped score breakdown.
func ComputeScore(input LeadSignals) ScoreBreakdown {
	breakdown := map[string]float64{
		categoryBudget:     scoreBudget(input.BudgetRange),
		categoryUrgency:    scoreUrgency(input.Urgency),
		categoryIndustry:   scoreIndustryFit(input.Industry),
		categoryEngagement: scoreEngagement(input.TimeOnPageSeconds, input.ScrollDepthPercent),
		categoryMessage:    scoreMessageQuality(input.MessageLength),
	}

	total := 0.0
	for _, value := range breakdown {
		total += value
	}

	// A declared score is a self-reported signal, averaged rather than trusted outright.
	if input.DeclaredScore != nil {
		total = (total + clamp(*input.DeclaredScore)) / 2
	}

	return ScoreBreakdown{
		Total:     clamp(math.Round(total*10) / 10),
		Breakdown: breakdown,
	}
}

func scoreBudget(budgetRange string) float64 {
	switch normalize(budgetRange) {
	case "over_1m":
		return 30
	case "500k_1m":
		return 25
	case "100k_500k":
		return 18
	case "50k_100k":
		return 10
	case "under_50k":
		return 5
	default:
		return 0
	}
}

func scoreUrgency(urgency string) float64 {
	switch normalize(urgency) {
	case "immediate":
		return 25
	case "1-2_weeks":
		return 18
	case "1-3_months":
		return 10
	case "planning":
		return 4
	default:
		return 0
	}
}

func scoreIndustryFit(industry string) float64 {
	industry = normalize(industry)
	if industry == "" {
		return 0
	}
	if _, ok := coreIndustries[industry]; ok {
		return 15
	}
	return 8
}

func scoreEngagement(timeOnPage, scrollDepth int) float64 {
	score := 0.0
	switch {
	case timeOnPage >= 180:
		score += 10
	case timeOnPage >= 60:
		score += 6
	case timeOnPage >= 20:
		score += 3
	}
	switch {
	case scrollDepth >= 75:
		score += 8
	case scrollDepth >= 40:
		score += 4
	}
	return score
}

func scoreMessageQuality(length int) float64 {
	switch {
	case length >= 400:
		return 12
	case length >= 120:
		return 8
	case length >= 30:
		return 4
	default:
		return 0
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
