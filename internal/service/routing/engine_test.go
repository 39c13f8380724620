package routing

import (
	"reflect"
	"strings"
	"testing"

	"github.com/octobees/lead-router/internal/entity"
	"github.com/octobees/lead-router/internal/service/scoring"
)

func testEngine(t *testing.T, inHours bool) *Engine {
	t.Helper()
	clock := mondayMorning
	if !inHours {
		clock = fridayMorning
	}
	return NewEngine(nil, nil, WithClock(fixedClock(clock)))
}

func containsReason(reasons []string, fragment string) bool {
	for _, r := range reasons {
		if strings.Contains(r, fragment) {
			return true
		}
	}
	return false
}

func TestRouteLeadVIPBudgetRule(t *testing.T) {
	e := testEngine(t, true)

	lead := entity.Lead{Name: "Al Noor Trading", BudgetRange: "over_1m"}
	decision := e.RouteLead(lead, scoring.ScoreBreakdown{Total: 85}, nil)

	if decision.AssignedTo != "tm-1" {
		t.Errorf("AssignedTo = %s, want tm-1", decision.AssignedTo)
	}
	if decision.Priority != PriorityCritical {
		t.Errorf("Priority = %s, want critical", decision.Priority)
	}
	if !almostEqual(decision.Confidence, 0.9) {
		t.Errorf("Confidence = %v, want 0.9", decision.Confidence)
	}
	if !containsReason(decision.Reasoning, "Matched rule: VIP Budget to Senior Sales") {
		t.Errorf("Reasoning missing rule match: %v", decision.Reasoning)
	}
	if decision.EstimatedResponseMin != 31 {
		t.Errorf("EstimatedResponseMin = %d, want 31", decision.EstimatedResponseMin)
	}
	want := []string{"tm-4", "tm-2"}
	if len(decision.AlternativeAssignees) != 2 || decision.AlternativeAssignees[0] != want[0] || decision.AlternativeAssignees[1] != want[1] {
		t.Errorf("AlternativeAssignees = %v, want %v", decision.AlternativeAssignees, want)
	}
}

func TestRouteLeadCascadesPastFullRuleTarget(t *testing.T) {
	e := testEngine(t, true)

	current := 8
	if err := e.UpdateTeamMemberCapacity("tm-1", CapacityPatch{Current: &current}); err != nil {
		t.Fatalf("UpdateTeamMemberCapacity: %v", err)
	}

	lead := entity.Lead{BudgetRange: "over_1m", Urgency: "immediate"}
	decision := e.RouteLead(lead, scoring.ScoreBreakdown{Total: 85}, nil)

	if decision.AssignedTo != "tm-4" {
		t.Errorf("AssignedTo = %s, want tm-4 via the next rule", decision.AssignedTo)
	}
	if !containsReason(decision.Reasoning, "at capacity") {
		t.Errorf("Reasoning missing capacity skip: %v", decision.Reasoning)
	}
	if !containsReason(decision.Reasoning, "Matched rule: Immediate Urgency Fast Track") {
		t.Errorf("Reasoning missing second rule: %v", decision.Reasoning)
	}
}

func TestRouteLeadOilGasRule(t *testing.T) {
	e := testEngine(t, true)

	lead := entity.Lead{IndustrySector: "oil_gas", BudgetRange: "500k_1m"}
	decision := e.RouteLead(lead, scoring.ScoreBreakdown{Total: 70}, nil)

	if decision.AssignedTo != "tm-3" {
		t.Errorf("AssignedTo = %s, want tm-3", decision.AssignedTo)
	}
	if decision.Priority != PriorityHigh {
		t.Errorf("Priority = %s, want high", decision.Priority)
	}
	if !containsReason(decision.Reasoning, "Matched rule: Oil & Gas to Project Manager") {
		t.Errorf("Reasoning missing rule match: %v", decision.Reasoning)
	}
}

func TestRouteLeadHeuristicMatch(t *testing.T) {
	e := testEngine(t, true)

	lead := entity.Lead{
		IndustrySector:  "manufacturing",
		ProductCategory: "industrial pumps",
		BudgetRange:     "100k_500k",
		Urgency:         "1-3_months",
	}
	decision := e.RouteLead(lead, scoring.ScoreBreakdown{Total: 54}, nil)

	if decision.AssignedTo != "tm-2" {
		t.Errorf("AssignedTo = %s, want tm-2 via heuristic", decision.AssignedTo)
	}
	if decision.Priority != PriorityMedium {
		t.Errorf("Priority = %s, want medium", decision.Priority)
	}
	if !almostEqual(decision.Confidence, 0.8) {
		t.Errorf("Confidence = %v, want 0.8", decision.Confidence)
	}
	if !containsReason(decision.Reasoning, "Best match: Fatima Al-Zahrani") {
		t.Errorf("Reasoning missing best match: %v", decision.Reasoning)
	}
	if !containsReason(decision.Reasoning, "Industry experience: manufacturing") {
		t.Errorf("Reasoning missing industry: %v", decision.Reasoning)
	}
}

func TestRouteLeadEveryoneAtCapacity(t *testing.T) {
	e := testEngine(t, true)

	for _, w := range e.GetTeamMemberWorkload() {
		member, _ := e.Directory().Get(w.MemberID)
		current := member.Capacity.Maximum
		if err := e.UpdateTeamMemberCapacity(w.MemberID, CapacityPatch{Current: &current}); err != nil {
			t.Fatalf("UpdateTeamMemberCapacity(%s): %v", w.MemberID, err)
		}
	}

	decision := e.RouteLead(entity.Lead{BudgetRange: "over_1m"}, scoring.ScoreBreakdown{Total: 85}, nil)

	if decision.AssignedTo != "" {
		t.Errorf("AssignedTo = %s, want unassigned", decision.AssignedTo)
	}
	if !containsReason(decision.Reasoning, "manual dispatch required") {
		t.Errorf("Reasoning missing manual dispatch: %v", decision.Reasoning)
	}
	if decision.EstimatedResponseMin != 240 {
		t.Errorf("EstimatedResponseMin = %d, want default 240", decision.EstimatedResponseMin)
	}
	if len(decision.AlternativeAssignees) != 0 {
		t.Errorf("AlternativeAssignees = %v, want empty", decision.AlternativeAssignees)
	}
}

func TestRouteLeadEmptyDirectory(t *testing.T) {
	roster := []entity.TeamMember{
		{
			ID:       "tm-gone",
			Name:     "Former Employee",
			Capacity: entity.Capacity{Current: 0, Maximum: 4},
			IsActive: false,
		},
	}
	e := NewEngine(roster, DefaultRules(), WithClock(fixedClock(mondayMorning)))

	decision := e.RouteLead(entity.Lead{Name: "Orphan Lead"}, scoring.ScoreBreakdown{Total: 10}, nil)

	if decision.AssignedTo != "" {
		t.Errorf("AssignedTo = %s, want unassigned", decision.AssignedTo)
	}
	if len(decision.Reasoning) == 0 {
		t.Error("Reasoning must not be empty for an unassigned decision")
	}
}

func TestRouteLeadDeterministic(t *testing.T) {
	e := testEngine(t, true)

	lead := entity.Lead{IndustrySector: "construction", Urgency: "1-2_weeks"}
	score := scoring.ScoreBreakdown{Total: 55}

	first := e.RouteLead(lead, score, nil)
	second := e.RouteLead(lead, score, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different decisions:\n%+v\n%+v", first, second)
	}
}

func TestRouteLeadUnavailableRosterGoesUnassigned(t *testing.T) {
	e := testEngine(t, false)

	unavailable := entity.AvailabilityUnavailable
	for _, w := range e.GetTeamMemberWorkload() {
		if err := e.UpdateTeamMemberCapacity(w.MemberID, CapacityPatch{Availability: &unavailable}); err != nil {
			t.Fatalf("UpdateTeamMemberCapacity(%s): %v", w.MemberID, err)
		}
	}

	lead := entity.Lead{
		IndustrySector: "manufacturing",
		BudgetRange:    "100k_500k",
		Urgency:        "1-3_months",
	}
	decision := e.RouteLead(lead, scoring.ScoreBreakdown{Total: 50}, nil)

	if decision.AssignedTo != "" {
		t.Errorf("AssignedTo = %s, want unassigned when nobody is available", decision.AssignedTo)
	}
	if !containsReason(decision.Reasoning, "manual dispatch required") {
		t.Errorf("Reasoning missing manual dispatch note: %v", decision.Reasoning)
	}
}

func TestFallbackAssigneeFollowsBaseOrder(t *testing.T) {
	e := testEngine(t, false)

	fallback := e.fallbackAssignee()
	if fallback == nil || fallback.ID != "tm-4" {
		t.Fatalf("fallbackAssignee() = %v, want least-loaded tm-4", fallback)
	}

	unavailable := entity.AvailabilityUnavailable
	full := 8
	if err := e.UpdateTeamMemberCapacity("tm-4", CapacityPatch{Availability: &unavailable}); err != nil {
		t.Fatalf("UpdateTeamMemberCapacity(tm-4): %v", err)
	}
	if err := e.UpdateTeamMemberCapacity("tm-2", CapacityPatch{Current: &full, Maximum: &full}); err != nil {
		t.Fatalf("UpdateTeamMemberCapacity(tm-2): %v", err)
	}

	fallback = e.fallbackAssignee()
	if fallback == nil || fallback.ID != "tm-1" {
		t.Fatalf("fallbackAssignee() = %v, want tm-1 after skipping unavailable and full members", fallback)
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		total    float64
		want     Priority
	}{
		{"immediate urgency outranks low score", Criteria{Urgency: "immediate"}, 20, PriorityCritical},
		{"vip budget", Criteria{BudgetRange: "over_1m"}, 20, PriorityCritical},
		{"score 80", Criteria{}, 80, PriorityCritical},
		{"short timeline", Criteria{Urgency: "1-2_weeks"}, 20, PriorityHigh},
		{"large budget", Criteria{BudgetRange: "500k_1m"}, 20, PriorityHigh},
		{"score 60", Criteria{}, 60, PriorityHigh},
		{"score 40", Criteria{}, 40, PriorityMedium},
		{"score 59.9", Criteria{}, 59.9, PriorityMedium},
		{"score below 40", Criteria{}, 39.9, PriorityLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyPriority(tc.criteria, tc.total); got != tc.want {
				t.Errorf("classifyPriority() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEstimateResponseMinutes(t *testing.T) {
	inHours := testEngine(t, true)
	offHours := testEngine(t, false)
	member, _ := inHours.Directory().Get("tm-1")

	tests := []struct {
		name     string
		engine   *Engine
		priority Priority
		want     int
	}{
		{"critical halves the baseline", inHours, PriorityCritical, 31},
		{"high trims the baseline", inHours, PriorityHigh, 43},
		{"medium keeps the baseline", inHours, PriorityMedium, 62},
		{"low stretches the baseline", inHours, PriorityLow, 93},
		{"off hours adds the overnight penalty", offHours, PriorityMedium, 542},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.engine.estimateResponseMinutes(member, tc.priority); got != tc.want {
				t.Errorf("estimateResponseMinutes() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEstimateResponseMinutesDefaultsBaseline(t *testing.T) {
	e := testEngine(t, true)
	member := entity.TeamMember{
		Capacity:     entity.Capacity{Current: 0, Maximum: 4},
		WorkingHours: entity.WorkingHours{Timezone: "Asia/Riyadh", Schedule: saudiWeek},
	}
	if got := e.estimateResponseMinutes(member, PriorityMedium); got != 240 {
		t.Errorf("estimateResponseMinutes() = %d, want default 240", got)
	}
}

func TestBuildCriteriaDefaults(t *testing.T) {
	e := testEngine(t, true)

	criteria := e.buildCriteria(entity.Lead{}, scoring.ScoreBreakdown{Total: 42}, nil)
	if criteria.Language != "arabic" {
		t.Errorf("Language = %q, want arabic default", criteria.Language)
	}
	if criteria.Timezone != "Asia/Riyadh" {
		t.Errorf("Timezone = %q, want Asia/Riyadh default", criteria.Timezone)
	}
	if criteria.LeadScore != 42 {
		t.Errorf("LeadScore = %v, want 42", criteria.LeadScore)
	}
}

func TestBuildCriteriaExtraOverrides(t *testing.T) {
	e := testEngine(t, true)

	lead := entity.Lead{IndustrySector: "construction", PreferredLanguage: "arabic"}
	extra := &Criteria{Language: "english", CompanySize: "enterprise"}
	criteria := e.buildCriteria(lead, scoring.ScoreBreakdown{Total: 10}, extra)

	if criteria.Language != "english" {
		t.Errorf("Language = %q, want override english", criteria.Language)
	}
	if criteria.CompanySize != "enterprise" {
		t.Errorf("CompanySize = %q, want enterprise", criteria.CompanySize)
	}
	if criteria.Industry != "construction" {
		t.Errorf("Industry = %q, want construction from lead", criteria.Industry)
	}
}

func TestComposeApproach(t *testing.T) {
	got := composeApproach(Criteria{Urgency: "immediate", BudgetRange: "over_1m", Industry: "oil_gas"}, 85)
	want := "Contact within the hour and offer a same-day technical call. " +
		"Prepare a detailed proposal with an executive summary. " +
		"Emphasize safety certifications and compliance track record. " +
		"Route through senior sales for high-touch handling"
	if got != want {
		t.Errorf("composeApproach() = %q, want %q", got, want)
	}

	if got := composeApproach(Criteria{}, 30); got != "Add to the nurture campaign with periodic follow-up" {
		t.Errorf("low-signal approach = %q", got)
	}
}

func TestEngineRulesManagement(t *testing.T) {
	e := testEngine(t, true)

	e.AddRule(entity.RoutingRule{ID: "rule-0", Name: "Override", Priority: 0, IsActive: true})
	rules := e.Rules()
	if rules[0].ID != "rule-0" {
		t.Errorf("Rules()[0] = %s, want rule-0 sorted first", rules[0].ID)
	}
	if len(rules) != 6 {
		t.Errorf("len(Rules()) = %d, want 6", len(rules))
	}
}

func TestEngineStatistics(t *testing.T) {
	e := testEngine(t, true)

	stats := e.GetRoutingStatistics()
	if stats.TotalRules != 5 || stats.ActiveRules != 5 {
		t.Errorf("rules = %d/%d, want 5/5", stats.ActiveRules, stats.TotalRules)
	}
	if stats.TeamMembers != 5 || stats.AvailableMembers != 5 {
		t.Errorf("members = %d/%d, want 5/5", stats.AvailableMembers, stats.TeamMembers)
	}
	if stats.AverageUtilization < 0.46 || stats.AverageUtilization > 0.47 {
		t.Errorf("AverageUtilization = %v, want about 0.4626", stats.AverageUtilization)
	}
}

func TestEngineAddTeamMember(t *testing.T) {
	e := testEngine(t, true)

	e.AddTeamMember(entity.TeamMember{
		ID:           "tm-6",
		Name:         "Noura Al-Harbi",
		Role:         "Inside Sales",
		Capacity:     entity.Capacity{Current: 0, Maximum: 4},
		Availability: entity.AvailabilityAvailable,
		IsActive:     true,
	})

	if e.Directory().Size() != 6 {
		t.Errorf("Size() = %d, want 6", e.Directory().Size())
	}
	if _, ok := e.Directory().Get("tm-6"); !ok {
		t.Error("tm-6 missing after AddTeamMember")
	}
}
