// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role values a user account can hold.
const (
	RoleAdmin     = "Admin"
	RoleApplicant = "Applicant"
)

// User represents an account in the recruitment system. Admins post jobs and
// review applicants; Applicants own exactly one Profile and apply to jobs.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Role            string    `gorm:"size:20;not null;default:Applicant" json:"userType"`
	ProfileHeadline string    `gorm:"size:200" json:"profileHeadline,omitempty"`
	Address         string    `gorm:"size:500" json:"address,omitempty"`
	ProfileID       *uint     `json:"profileId,omitempty"`
	Profile         *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsValidRole reports whether role is one of the known account roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleApplicant
}
