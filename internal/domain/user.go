package domain

import (
	"time"
)

// UserType distinguishes platform roles.
type UserType string

const (
	UserTypeParent    UserType = "parent"
	UserTypeCaregiver UserType = "nanny"
	UserTypeAdmin     UserType = "admin"
)

// UserModel is the GORM model for the users table. The search service reads
// identity rows only; account management owns every write to this table.
type UserModel struct {
	ID              string     `gorm:"type:varchar(36);primaryKey"`
	Email           *string    `gorm:"type:varchar(255);uniqueIndex"`
	FirstName       string     `gorm:"type:varchar(100)"`
	LastName        string     `gorm:"type:varchar(100)"`
	ProfileImageURL string     `gorm:"type:varchar(500)"`
	PhoneNumber     string     `gorm:"type:varchar(30)"`
	UserType        UserType   `gorm:"type:varchar(20);index;not null;default:'parent'"`
	IsVerified      bool       `gorm:"default:false"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}
