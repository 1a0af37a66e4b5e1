package models

import (
	"time"
)

// Profile is the applicant-owned résumé record. It is created empty at signup
// (or lazily on first upload) and mutated only by the owning applicant's
// resume uploads. Collection-shaped parser output (skills, education,
// experience) is flattened into delimited text; the verbatim parser response
// is kept in ExtractedData for future reprocessing.
type Profile struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ApplicantID       uint      `gorm:"uniqueIndex;not null" json:"applicantId"`
	ResumeFileAddress string    `json:"resumeFileAddress,omitempty"`
	Name              string    `json:"name,omitempty"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Skills            string    `json:"skills,omitempty"`
	Education         string    `json:"education,omitempty"`
	Experience        string    `json:"experience,omitempty"`
	ExtractedData     string    `gorm:"type:text" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
