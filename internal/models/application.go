package models

import (
	"time"
)

// Application review statuses.
const (
	StatusApplied     = "Applied"
	StatusUnderReview = "Under Review"
	StatusShortlisted = "Shortlisted"
	StatusRejected    = "Rejected"
	StatusSelected    = "Selected"
)

// statusTransitions encodes the legal review edges. Rejected and Selected
// are terminal.
var statusTransitions = map[string][]string{
	StatusApplied:     {StatusUnderReview, StatusSelected},
	StatusUnderReview: {StatusShortlisted, StatusRejected},
}

// CanTransition reports whether an application may move from one review
// status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Application joins exactly one Job and one applicant User. The composite
// unique index on (job_id, applicant_id) is the concurrency guard: two
// simultaneous applies commit exactly one row, the loser gets a constraint
// violation which the repository translates to a Conflict.
type Application struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobID       uint      `gorm:"not null;uniqueIndex:idx_job_applicant;index" json:"jobId"`
	Job         *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID uint      `gorm:"not null;uniqueIndex:idx_job_applicant;index" json:"applicantId"`
	Applicant   *User     `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	Status      string    `gorm:"size:20;not null;default:Applied;index" json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
	Notes       string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
