package search

import (
	"strings"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
)

// Matches reports whether a caregiver satisfies every predicate in the plan.
// Predicates combine with logical AND. The repository pushes the scalar
// subset into SQL for efficiency, but this is the authoritative check: the
// executor re-evaluates the full plan in memory over every scanned row.
func (p *Plan) Matches(c *domain.Caregiver) bool {
	return p.matchDistrict(c) &&
		p.matchRegion(c) &&
		p.matchServiceType(c) &&
		p.matchRate(c) &&
		p.matchFlags(c) &&
		p.matchExperience(c) &&
		p.matchAgeGroups(c) &&
		p.matchLanguages(c) &&
		p.matchAvailability(c) &&
		p.matchText(c)
}

func (p *Plan) matchDistrict(c *domain.Caregiver) bool {
	return p.District == nil || c.District == *p.District
}

func (p *Plan) matchRegion(c *domain.Caregiver) bool {
	return p.Region == nil || c.Region == *p.Region
}

func (p *Plan) matchServiceType(c *domain.Caregiver) bool {
	return p.ServiceType == nil || hasTag(c.Services, *p.ServiceType)
}

// matchRate uses inclusive bounds. A caregiver without an hourly rate cannot
// satisfy a rate constraint.
func (p *Plan) matchRate(c *domain.Caregiver) bool {
	if p.MinRate == nil && p.MaxRate == nil {
		return true
	}
	if c.HourlyRate == nil {
		return false
	}
	if p.MinRate != nil && *c.HourlyRate < *p.MinRate {
		return false
	}
	if p.MaxRate != nil && *c.HourlyRate > *p.MaxRate {
		return false
	}
	return true
}

func (p *Plan) matchFlags(c *domain.Caregiver) bool {
	if p.IsVerified != nil && c.IsVerified != *p.IsVerified {
		return false
	}
	if p.BackgroundCheck != nil && c.BackgroundCheck != *p.BackgroundCheck {
		return false
	}
	if p.FirstAidCertified != nil && c.FirstAidCertified != *p.FirstAidCertified {
		return false
	}
	return true
}

func (p *Plan) matchExperience(c *domain.Caregiver) bool {
	return p.MinExperience == nil || c.Experience >= *p.MinExperience
}

// matchAgeGroups requires a non-empty intersection with the caregiver's
// age-group tags, likewise matchLanguages.
func (p *Plan) matchAgeGroups(c *domain.Caregiver) bool {
	return len(p.AgeGroups) == 0 || intersects(c.AgeGroups, p.AgeGroups)
}

func (p *Plan) matchLanguages(c *domain.Caregiver) bool {
	return len(p.Languages) == 0 || intersects(c.Languages, p.Languages)
}

func (p *Plan) matchAvailability(c *domain.Caregiver) bool {
	return p.Availability == nil || hasTag(c.Availability, *p.Availability)
}

// matchText is a case-insensitive substring match against name fields and
// bio. Deliberately not tokenized.
func (p *Plan) matchText(c *domain.Caregiver) bool {
	if p.Text == "" {
		return true
	}
	needle := strings.ToLower(p.Text)
	return strings.Contains(strings.ToLower(c.FirstName), needle) ||
		strings.Contains(strings.ToLower(c.LastName), needle) ||
		strings.Contains(strings.ToLower(c.Bio), needle)
}

func hasTag(set []string, tag string) bool {
	for _, t := range set {
		if t == tag {
			return true
		}
	}
	return false
}

func intersects(set, wanted []string) bool {
	for _, w := range wanted {
		if hasTag(set, w) {
			return true
		}
	}
	return false
}
