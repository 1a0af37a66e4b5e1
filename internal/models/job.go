package models

import (
	"time"
)

// JobType values accepted for a posting.
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship", "Remote"}

// IsValidJobType reports whether jobType is one of the accepted posting types.
func IsValidJobType(jobType string) bool {
	for _, t := range JobTypes {
		if t == jobType {
			return true
		}
	}
	return false
}

// Job is a posting owned by an Admin. TotalApplications and the Applicants
// membership set are denormalized from Application rows and maintained
// best-effort after each successful apply; the Application table's composite
// unique index is the authoritative record.
type Job struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"size:200;not null" json:"title"`
	Description       string    `gorm:"size:2000;not null" json:"description"`
	CompanyName       string    `gorm:"size:100;not null" json:"companyName"`
	PostedByID        uint      `gorm:"not null;index" json:"postedById"`
	PostedBy          *User     `gorm:"foreignKey:PostedByID" json:"postedBy,omitempty"`
	Requirements      string    `gorm:"size:1000" json:"requirements,omitempty"`
	Location          string    `gorm:"size:100;index" json:"location,omitempty"`
	JobType           string    `gorm:"size:20;not null;default:Full-time" json:"jobType"`
	SalaryMin         int       `json:"salaryMin,omitempty"`
	SalaryMax         int       `json:"salaryMax,omitempty"`
	SalaryCurrency    string    `gorm:"size:10;default:USD" json:"salaryCurrency,omitempty"`
	IsActive          bool      `gorm:"not null;index" json:"isActive"`
	TotalApplications int       `gorm:"not null;default:0" json:"totalApplications"`
	Applicants        []User    `gorm:"many2many:job_applicants" json:"applicants,omitempty"`
	CreatedAt         time.Time `json:"postedOn"`
	UpdatedAt         time.Time `json:"updated_at"`
}
