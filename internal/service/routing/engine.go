package routing

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/octobees/lead-router/internal/entity"
	"github.com/octobees/lead-router/internal/service/scoring"
)

const (
	baseConfidence         = 0.5
	ruleConfidenceBoost    = 0.3
	matchConfidenceBoost   = 0.2
	hoursConfidenceBoost   = 0.1
	fallbackConfidence     = 0.3
	defaultResponseMinutes = 240
	offHoursPenaltyMinutes = 480
)

// Engine routes incoming leads to team members using a rule cascade with a
// weighted heuristic fallback. It is safe for concurrent use; all mutable
// team state lives behind the directory's lock.
type Engine struct {
	directory *Directory

	mu    sync.RWMutex
	rules []entity.RoutingRule
}

// Option customises engine construction.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the engine clock, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewEngine builds an engine over the given roster and rules. When either is
// empty the built-in defaults are loaded instead.
func NewEngine(members []entity.TeamMember, rules []entity.RoutingRule, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(members) == 0 {
		members = DefaultTeam()
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	sorted := make([]entity.RoutingRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	return &Engine{
		directory: NewDirectory(members, o.now),
		rules:     sorted,
	}
}

// Directory exposes the engine's team directory.
func (e *Engine) Directory() *Directory {
	return e.directory
}

// Rules returns a copy of the configured rules in priority order.
func (e *Engine) Rules() []entity.RoutingRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rules := make([]entity.RoutingRule, len(e.rules))
	copy(rules, e.rules)
	return rules
}

// AddRule inserts a rule keeping the priority ordering.
func (e *Engine) AddRule(rule entity.RoutingRule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rule)
	sort.SliceStable(e.rules, func(i, j int) bool { return e.rules[i].Priority < e.rules[j].Priority })
}

// AddTeamMember appends a member to the directory roster.
func (e *Engine) AddTeamMember(member entity.TeamMember) {
	e.directory.Add(member)
}

// UpdateTeamMemberCapacity merges a partial capacity update into the member.
func (e *Engine) UpdateTeamMemberCapacity(id string, patch CapacityPatch) error {
	return e.directory.UpdateCapacity(id, patch)
}

// UpdateTeamMemberPerformance merges a partial performance update into the member.
func (e *Engine) UpdateTeamMemberPerformance(id string, patch PerformancePatch) error {
	return e.directory.UpdatePerformance(id, patch)
}

// GetTeamMemberWorkload returns the utilization snapshot of every roster member.
func (e *Engine) GetTeamMemberWorkload() []MemberWorkload {
	return e.directory.Workload()
}

// GetRoutingStatistics summarises configured rules and team load.
func (e *Engine) GetRoutingStatistics() Statistics {
	e.mu.RLock()
	activeRules := 0
	for _, r := range e.rules {
		if r.IsActive {
			activeRules++
		}
	}
	totalRules := len(e.rules)
	e.mu.RUnlock()

	workload := e.directory.Workload()
	totalUtil := 0.0
	for _, w := range workload {
		totalUtil += w.Utilization
	}
	avgUtil := 0.0
	if len(workload) > 0 {
		avgUtil = totalUtil / float64(len(workload))
	}

	return Statistics{
		TotalRules:         totalRules,
		ActiveRules:        activeRules,
		TeamMembers:        e.directory.Size(),
		AvailableMembers:   len(e.directory.Available()),
		AverageUtilization: avgUtil,
	}
}

// RouteLead computes the routing decision for a lead given its pre-computed
// score. Extra criteria, when provided, override the fields derived from the
// lead. The engine never fails for lack of candidates; it degrades to an
// unassigned decision with explanatory reasoning.
func (e *Engine) RouteLead(lead entity.Lead, score scoring.ScoreBreakdown, extra *Criteria) Decision {
	criteria := e.buildCriteria(lead, score, extra)

	decision := Decision{
		Confidence: baseConfidence,
		Reasoning:  []string{},
	}

	var assigned *entity.TeamMember

	// Rule cascade: the first matching rule with an under-capacity assignee wins.
	for _, rule := range FindMatchingRules(criteria, e.Rules()) {
		if rule.AssignTo == nil {
			continue
		}
		member, ok := e.directory.Get(*rule.AssignTo)
		if !ok || !member.IsActive {
			decision.Reasoning = append(decision.Reasoning, fmt.Sprintf("Rule %q targets an unknown or inactive member, skipping", rule.Name))
			continue
		}
		if member.AtCapacity() {
			decision.Reasoning = append(decision.Reasoning, fmt.Sprintf("Rule %q target %s is at capacity, trying next rule", rule.Name, member.Name))
			continue
		}
		assigned = &member
		decision.Reasoning = append(decision.Reasoning, fmt.Sprintf("Matched rule: %s", rule.Name))
		decision.Confidence += ruleConfidenceBoost
		break
	}

	available := e.directory.Available()

	if assigned == nil {
		match, trace := e.directory.BestMatch(criteria, available)
		decision.Reasoning = append(decision.Reasoning, trace...)
		if match != nil {
			assigned = match
			decision.Confidence += matchConfidenceBoost
		}
	}

	if assigned == nil {
		if fallback := e.fallbackAssignee(); fallback != nil {
			assigned = fallback
			decision.Reasoning = append(decision.Reasoning, "Assigned to next available team member")
			decision.Confidence = fallbackConfidence
		} else {
			decision.Reasoning = append(decision.Reasoning, "No team member available; manual dispatch required")
		}
	}

	decision.Priority = classifyPriority(criteria, score.Total)
	decision.Reasoning = append(decision.Reasoning, fmt.Sprintf("Priority classified as %s (lead score %.1f)", decision.Priority, score.Total))

	if assigned != nil {
		decision.AssignedTo = assigned.ID
		decision.TeamName = assigned.Role
		if e.directory.InWorkingHours(*assigned) {
			decision.Confidence += hoursConfidenceBoost
		}
		decision.EstimatedResponseMin = e.estimateResponseMinutes(*assigned, decision.Priority)
		decision.AlternativeAssignees = alternativeAssignees(available, assigned.ID)
	} else {
		decision.EstimatedResponseMin = defaultResponseMinutes
		decision.AlternativeAssignees = []string{}
	}

	decision.RecommendedApproach = composeApproach(criteria, score.Total)

	if decision.Confidence > 1.0 {
		decision.Confidence = 1.0
	}
	return decision
}

func (e *Engine) buildCriteria(lead entity.Lead, score scoring.ScoreBreakdown, extra *Criteria) Criteria {
	criteria := Criteria{
		Industry:        strings.TrimSpace(lead.IndustrySector),
		ProductCategory: strings.TrimSpace(lead.ProductCategory),
		BudgetRange:     strings.TrimSpace(lead.BudgetRange),
		Urgency:         strings.TrimSpace(lead.Urgency),
		CompanySize:     strings.TrimSpace(lead.CompanySize),
		Language:        strings.TrimSpace(lead.PreferredLanguage),
		Timezone:        strings.TrimSpace(lead.Timezone),
		LeadScore:       score.Total,
	}

	if extra != nil {
		mergeCriteria(&criteria, *extra)
	}

	if criteria.Language == "" {
		criteria.Language = "arabic"
	}
	if criteria.Timezone == "" {
		criteria.Timezone = "Asia/Riyadh"
	}
	return criteria
}

func mergeCriteria(dst *Criteria, src Criteria) {
	if src.Industry != "" {
		dst.Industry = src.Industry
	}
	if src.ProductCategory != "" {
		dst.ProductCategory = src.ProductCategory
	}
	if src.BudgetRange != "" {
		dst.BudgetRange = src.BudgetRange
	}
	if src.Urgency != "" {
		dst.Urgency = src.Urgency
	}
	if src.CompanySize != "" {
		dst.CompanySize = src.CompanySize
	}
	if src.Language != "" {
		dst.Language = src.Language
	}
	if src.Timezone != "" {
		dst.Timezone = src.Timezone
	}
	if src.LeadScore > 0 {
		dst.LeadScore = src.LeadScore
	}
}

// fallbackAssignee is the last-resort path when the heuristic found nobody:
// the first under-capacity member in the directory's base-sorted order.
func (e *Engine) fallbackAssignee() *entity.TeamMember {
	for _, member := range e.directory.Available() {
		if member.AtCapacity() {
			continue
		}
		m := member
		return &m
	}
	return nil
}

// classifyPriority checks tiers in order; the first match wins. A low score
// with immediate urgency is still critical.
func classifyPriority(criteria Criteria, total float64) Priority {
	switch {
	case criteria.Urgency == "immediate" || criteria.BudgetRange == "over_1m" || total >= 80:
		return PriorityCritical
	case criteria.Urgency == "1-2_weeks" || criteria.BudgetRange == "500k_1m" || total >= 60:
		return PriorityHigh
	case total >= 40:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func (e *Engine) estimateResponseMinutes(member entity.TeamMember, priority Priority) int {
	estimate := member.Performance.AvgResponseMinutes
	if estimate <= 0 {
		estimate = defaultResponseMinutes
	}

	switch priority {
	case PriorityCritical:
		estimate *= 0.5
	case PriorityHigh:
		estimate *= 0.7
	case PriorityLow:
		estimate *= 1.5
	}

	estimate *= 1 + member.Utilization()

	if !e.directory.InWorkingHours(member) {
		estimate += offHoursPenaltyMinutes
	}

	return int(math.Round(estimate))
}

func alternativeAssignees(available []entity.TeamMember, chosen string) []string {
	alternatives := make([]string, 0, 2)
	for _, member := range available {
		if member.ID == chosen {
			continue
		}
		alternatives = append(alternatives, member.ID)
		if len(alternatives) == 2 {
			break
		}
	}
	return alternatives
}

func composeApproach(criteria Criteria, total float64) string {
	var clauses []string

	switch criteria.Urgency {
	case "immediate":
		clauses = append(clauses, "Contact within the hour and offer a same-day technical call")
	case "1-2_weeks":
		clauses = append(clauses, "Contact within one business day to align on timing")
	}

	switch criteria.BudgetRange {
	case "over_1m", "500k_1m":
		clauses = append(clauses, "Prepare a detailed proposal with an executive summary")
	case "100k_500k", "50k_100k":
		clauses = append(clauses, "Prepare a formal quotation with itemized pricing")
	case "under_50k":
		clauses = append(clauses, "Share standard product information and list pricing")
	}

	switch criteria.Industry {
	case "oil_gas":
		clauses = append(clauses, "Emphasize safety certifications and compliance track record")
	case "construction":
		clauses = append(clauses, "Highlight delivery timelines and bulk pricing options")
	case "manufacturing":
		clauses = append(clauses, "Focus on equipment quality and after-sales support")
	}

	switch {
	case total >= 80:
		clauses = append(clauses, "Route through senior sales for high-touch handling")
	case total >= 50:
		clauses = append(clauses, "Provide detailed technical information on request")
	default:
		clauses = append(clauses, "Add to the nurture campaign with periodic follow-up")
	}

	return strings.Join(clauses, ". ")
}
