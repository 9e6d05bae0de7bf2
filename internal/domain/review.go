package domain

import (
	"time"
)

// ReviewModel is the GORM model for the reviews table. Rating is always
// within [1,5]; review submission enforces that invariant, the search
// service only reads it.
type ReviewModel struct {
	ID         int       `gorm:"primaryKey;autoIncrement"`
	BookingID  int       `gorm:"not null"`
	ReviewerID string    `gorm:"type:varchar(36);not null"`
	RevieweeID string    `gorm:"type:varchar(36);index;not null"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for ReviewModel.
func (ReviewModel) TableName() string {
	return "reviews"
}

// Review is one review joined with the reviewer's name fields.
type Review struct {
	ID                int       `json:"id"`
	ReviewerID        string    `json:"reviewer_id"`
	ReviewerFirstName string    `json:"reviewer_first_name"`
	ReviewerLastName  string    `json:"reviewer_last_name"`
	Rating            int       `json:"rating"`
	Comment           string    `json:"comment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ReviewListResponse is a page of reviews for one caregiver. A page shorter
// than limit signals the last page.
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
