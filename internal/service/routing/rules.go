package routing

import (
	"sort"
	"strings"

	"github.com/octobees/lead-router/internal/entity"
)

// FindMatchingRules returns the active rules whose declared conditions are all
// satisfied by the criteria, sorted ascending by priority. Conditions a rule
// does not declare are wildcards; a declared condition fails against a
// criteria field the lead left empty.
func FindMatchingRules(criteria Criteria, rules []entity.RoutingRule) []entity.RoutingRule {
	matched := make([]entity.RoutingRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if ruleMatches(rule.Conditions, criteria) {
			matched = append(matched, rule)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority < matched[j].Priority
	})
	return matched
}

func ruleMatches(cond entity.RuleConditions, criteria Criteria) bool {
	if !fieldMatches(cond.Industry, criteria.Industry) {
		return false
	}
	if !fieldMatches(cond.ProductCategory, criteria.ProductCategory) {
		return false
	}
	if !fieldMatches(cond.BudgetRange, criteria.BudgetRange) {
		return false
	}
	if !fieldMatches(cond.Urgency, criteria.Urgency) {
		return false
	}
	if !fieldMatches(cond.CompanySize, criteria.CompanySize) {
		return false
	}
	if !fieldMatches(cond.Language, criteria.Language) {
		return false
	}
	// A lead-score condition is a minimum threshold, never an exact match.
	if cond.MinLeadScore != nil && criteria.LeadScore < *cond.MinLeadScore {
		return false
	}
	return true
}

func fieldMatches(condition *string, value string) bool {
	if condition == nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(*condition), strings.TrimSpace(value))
}
