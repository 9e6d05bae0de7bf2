package search

import (
	"strconv"
	"strings"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
)

// SortKey selects the primary ordering of search results.
type SortKey string

const (
	SortRating     SortKey = "rating"
	SortRateLow    SortKey = "rate-low"
	SortRateHigh   SortKey = "rate-high"
	SortExperience SortKey = "experience"
	SortNewest     SortKey = "newest"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Plan is the validated, normalized form of a search request. Nil optional
// fields mean "no constraint". The query executor trusts a Plan completely;
// all coercion happens in Build.
type Plan struct {
	District          *string  `json:"district,omitempty"`
	Region            *string  `json:"region,omitempty"`
	ServiceType       *string  `json:"service_type,omitempty"`
	MinRate           *float64 `json:"min_rate,omitempty"`
	MaxRate           *float64 `json:"max_rate,omitempty"`
	IsVerified        *bool    `json:"is_verified,omitempty"`
	BackgroundCheck   *bool    `json:"background_check,omitempty"`
	FirstAidCertified *bool    `json:"first_aid_certified,omitempty"`
	MinExperience     *int     `json:"min_experience,omitempty"`
	AgeGroups         []string `json:"age_groups,omitempty"`
	Languages         []string `json:"languages,omitempty"`
	Availability      *string  `json:"availability,omitempty"`
	Text              string   `json:"text,omitempty"`
	Sort              SortKey  `json:"sort"`
	Limit             int      `json:"limit"`
	Offset            int      `json:"offset"`
}

// Build converts raw search params into a Plan. It fails with a
// ValidationError only for an inverted rate range or non-coercible
// limit/offset; every other malformed optional field degrades to no
// constraint, mirroring permissive search UX.
func Build(params domain.SearchParams) (*Plan, error) {
	plan := &Plan{
		District:          optString(params.District),
		Region:            optString(params.Region),
		ServiceType:       optString(params.ServiceType),
		MinRate:           optFloat(params.MinRate),
		MaxRate:           optFloat(params.MaxRate),
		IsVerified:        optBool(params.IsVerified),
		BackgroundCheck:   optBool(params.BackgroundCheck),
		FirstAidCertified: optBool(params.FirstAidCertified),
		MinExperience:     optExperience(params.Experience),
		AgeGroups:         normalizeTags(params.AgeGroups),
		Languages:         normalizeTags(params.Languages),
		Availability:      optString(params.Availability),
		Text:              strings.TrimSpace(params.Search),
		Sort:              normalizeSort(params.SortBy),
	}

	if plan.MinRate != nil && plan.MaxRate != nil && *plan.MinRate > *plan.MaxRate {
		return nil, domain.NewValidationError("minRate", "must not exceed maxRate")
	}

	limit, err := CoerceInt("limit", params.Limit, DefaultLimit)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	plan.Limit = limit

	offset, err := CoerceInt("offset", params.Offset, 0)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	plan.Offset = offset

	return plan, nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func optBool(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		b := true
		return &b
	case "false", "0":
		b := false
		return &b
	default:
		return nil
	}
}

func optExperience(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// normalizeTags flattens repeated and comma-separated values into one
// trimmed, deduplicated list.
func normalizeTags(values []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

func normalizeSort(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortRateLow:
		return SortRateLow
	case SortRateHigh:
		return SortRateHigh
	case SortExperience:
		return SortExperience
	case SortNewest:
		return SortNewest
	default:
		return SortRating
	}
}

// CoerceInt parses an optional integer query parameter. Empty means the
// default; anything else must parse or the request is malformed.
func CoerceInt(field, s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be an integer")
	}
	return n, nil
}
