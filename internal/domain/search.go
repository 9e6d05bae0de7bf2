package domain

// SearchParams carries the raw, untrusted search query parameters. Numeric
// and boolean fields stay strings here; the filter builder owns all coercion
// and validation so nothing is rejected before it gets the chance to degrade
// a malformed optional field to "no constraint".
type SearchParams struct {
	District          string   `form:"district"`
	Region            string   `form:"region"`
	ServiceType       string   `form:"serviceType"`
	MinRate           string   `form:"minRate"`
	MaxRate           string   `form:"maxRate"`
	IsVerified        string   `form:"isVerified"`
	BackgroundCheck   string   `form:"backgroundCheck"`
	FirstAidCertified string   `form:"firstAidCertified"`
	Experience        string   `form:"experience"`
	AgeGroups         []string `form:"ageGroups"`
	Languages         []string `form:"languages"`
	Availability      string   `form:"availability"`
	Search            string   `form:"search"`
	SortBy            string   `form:"sortBy"`
	Limit             string   `form:"limit"`
	Offset            string   `form:"offset"`
}

// SearchResponse is one page of ranked caregivers. No total count is
// computed; a page shorter than limit signals the last page.
type SearchResponse struct {
	Caregivers []CaregiverResponse `json:"caregivers"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}
