package models

import (
	"time"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	DisplayName  string    `gorm:"type:varchar(100)" json:"displayName"`
	AvatarURL    string    `gorm:"type:varchar(512)" json:"avatarUrl"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Company      string    `gorm:"type:varchar(255)" json:"company"`
	Location     string    `gorm:"type:varchar(255)" json:"location"`
	Website      string    `gorm:"type:varchar(512)" json:"website"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Projects []Project `gorm:"foreignKey:UserID" json:"-"`
}

// HasPassword reports whether the user registered with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}
