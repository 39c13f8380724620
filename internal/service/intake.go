package service

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/lead-router/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "SA"

// ValidationError indicates that an incoming lead payload is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// LeadIntake normalizes incoming lead payloads before scoring and routing.
// Malformed contact fields are dropped rather than rejected: routing treats
// absent fields as wildcards, so partial data never blocks a lead.
type LeadIntake struct {
	DefaultRegion string
}

// NewLeadIntake builds an intake processor with the given phone region default.
func NewLeadIntake(defaultRegion string) *LeadIntake {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &LeadIntake{DefaultRegion: region}
}

// Normalize trims, lowercases, and validates the lead's fields. It fails only
// when the lead carries no usable identity at all.
func (p *LeadIntake) Normalize(lead entity.Lead) (entity.Lead, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Company = strings.TrimSpace(lead.Company)
	lead.Message = strings.TrimSpace(lead.Message)
	lead.Email = p.cleanEmail(lead.Email)
	lead.Phone = p.normalizePhone(lead.Phone)

	lead.IndustrySector = normalizeTag(lead.IndustrySector)
	lead.ProductCategory = normalizeTag(lead.ProductCategory)
	lead.BudgetRange = normalizeTag(lead.BudgetRange)
	lead.Urgency = normalizeTag(lead.Urgency)
	lead.CompanySize = normalizeTag(lead.CompanySize)
	lead.PreferredLanguage = normalizeTag(lead.PreferredLanguage)
	lead.Timezone = strings.TrimSpace(lead.Timezone)

	if lead.Name == "" && lead.Email == "" && lead.Phone == "" {
		return entity.Lead{}, ValidationError{Message: "lead must have a name, email, or phone"}
	}
	return lead, nil
}

func (p *LeadIntake) cleanEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return ""
	}
	parts := strings.SplitN(email, "@", 2)
	asciiDomain, err := idnaProfile.ToASCII(parts[1])
	if err != nil || asciiDomain == "" {
		return ""
	}
	return parts[0] + "@" + asciiDomain
}

func (p *LeadIntake) normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, p.DefaultRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func normalizeTag(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
