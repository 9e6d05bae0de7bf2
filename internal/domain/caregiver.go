package domain

import (
	"time"

	"github.com/LenzB1987/maid-finderapp/pkg/database"
)

// CaregiverModel is the GORM model for the nanny_profiles table. One row per
// caregiver identity; district and region are always present once the profile
// exists. The search service never writes this table.
type CaregiverModel struct {
	ID                int                  `gorm:"primaryKey;autoIncrement"`
	UserID            string               `gorm:"type:varchar(36);uniqueIndex;not null"`
	Bio               string               `gorm:"type:text"`
	Experience        int                  `gorm:"default:0"`
	HourlyRate        *float64             `gorm:"type:decimal(10,2)"`
	MonthlyRate       *float64             `gorm:"type:decimal(10,2)"`
	District          string               `gorm:"type:varchar(100);index;not null"`
	Region            string               `gorm:"type:varchar(100);index;not null"`
	Services          database.StringArray `gorm:"type:text"`
	AgeGroups         database.StringArray `gorm:"type:text"`
	Availability      database.StringArray `gorm:"type:text"`
	Languages         database.StringArray `gorm:"type:text"`
	IsVerified        bool                 `gorm:"default:false"`
	BackgroundCheck   bool                 `gorm:"default:false"`
	FirstAidCertified bool                 `gorm:"default:false"`
	CreatedAt         time.Time            `gorm:"autoCreateTime"`
	UpdatedAt         time.Time            `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for CaregiverModel.
func (CaregiverModel) TableName() string {
	return "nanny_profiles"
}

// Caregiver is a caregiver profile joined with its identity row.
type Caregiver struct {
	ID                string     `json:"caregiver_id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	ProfileImageURL   string     `json:"profile_image_url,omitempty"`
	Bio               string     `json:"bio,omitempty"`
	Experience        int        `json:"experience"`
	HourlyRate        *float64   `json:"hourly_rate,omitempty"`
	MonthlyRate       *float64   `json:"monthly_rate,omitempty"`
	District          string     `json:"district"`
	Region            string     `json:"region"`
	Services          []string   `json:"services,omitempty"`
	AgeGroups         []string   `json:"age_groups,omitempty"`
	Availability      []string   `json:"availability,omitempty"`
	Languages         []string   `json:"languages,omitempty"`
	IsVerified        bool       `json:"is_verified"`
	BackgroundCheck   bool       `json:"background_check"`
	FirstAidCertified bool       `json:"first_aid_certified"`
	CreatedAt         time.Time  `json:"created_at"`
}

// RatingAggregate is the derived per-caregiver review summary. A caregiver
// with no reviews carries {0, 0}, which sorts it to the bottom of rating
// order instead of needing null handling.
type RatingAggregate struct {
	Count   int     `json:"review_count"`
	Average float64 `json:"avg_rating"`
}

// Candidate is a caregiver merged with its rating aggregate, prior to
// ranking and pagination.
type Candidate struct {
	Caregiver
	Rating RatingAggregate
}

// CaregiverResponse is one search or detail result row.
type CaregiverResponse struct {
	Caregiver
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// ToResponse converts a Candidate to a CaregiverResponse.
func (c *Candidate) ToResponse() CaregiverResponse {
	return CaregiverResponse{
		Caregiver:   c.Caregiver,
		AvgRating:   c.Rating.Average,
		ReviewCount: c.Rating.Count,
	}
}
