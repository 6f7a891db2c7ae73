package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// User is an account that can log in. Users are never deleted.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

// UserRole links a user to a role. The lowest ID is the first role
// assigned.
type UserRole struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"size:36;not null;uniqueIndex:idx_user_role"`
	RoleID uint   `gorm:"not null;uniqueIndex:idx_user_role"`
	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role   Role   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
