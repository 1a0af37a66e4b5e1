// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"talenthub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the shared plaintext password for all seeded accounts.
const SeedPassword = "password123"

// Seeder populates the database with generated recruitment data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
	// hash is computed once; bcrypt per user would dominate seeding time.
	hash string
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		hash: string(hashed),
	}, nil
}

// ClearAll removes all seeded rows. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{"applications", "job_applicants", "jobs", "profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedAdmins creates n admin accounts.
func (s *Seeder) SeedAdmins(n int) ([]models.User, error) {
	admins := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		admin := models.User{
			Name:            gofakeit.Name(),
			Email:           fmt.Sprintf("admin%d@%s", i+1, gofakeit.DomainName()),
			Password:        s.hash,
			Role:            models.RoleAdmin,
			ProfileHeadline: gofakeit.JobTitle() + " at " + gofakeit.Company(),
			Address:         gofakeit.City() + ", " + gofakeit.StateAbr(),
		}
		if err := s.db.Create(&admin).Error; err != nil {
			return nil, fmt.Errorf("creating admin: %w", err)
		}
		admins = append(admins, admin)
	}
	return admins, nil
}

// SeedApplicants creates n applicant accounts, each with a profile.
func (s *Seeder) SeedApplicants(n int) ([]models.User, error) {
	applicants := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Name:            gofakeit.Name(),
			Email:           fmt.Sprintf("applicant%d@%s", i+1, gofakeit.DomainName()),
			Password:        s.hash,
			Role:            models.RoleApplicant,
			ProfileHeadline: gofakeit.JobTitle(),
			Address:         gofakeit.City() + ", " + gofakeit.StateAbr(),
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := models.Profile{
				ApplicantID: user.ID,
				Name:        user.Name,
				Email:       user.Email,
				Phone:       gofakeit.Phone(),
				Skills:      s.randomSkills(),
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			return tx.Model(&user).Update("profile_id", profile.ID).Error
		})
		if err != nil {
			return nil, fmt.Errorf("creating applicant: %w", err)
		}
		applicants = append(applicants, user)
	}
	return applicants, nil
}

// SeedJobs creates n postings spread across the given admins.
func (s *Seeder) SeedJobs(admins []models.User, n int) ([]models.Job, error) {
	if len(admins) == 0 {
		return nil, fmt.Errorf("no admins to post jobs")
	}

	jobs := make([]models.Job, 0, n)
	for i := 0; i < n; i++ {
		admin := admins[s.rand.Intn(len(admins))]
		salaryMin := 40000 + s.rand.Intn(80000)
		job := models.Job{
			Title:          gofakeit.JobTitle(),
			Description:    gofakeit.Paragraph(1, 3, 12, " "),
			CompanyName:    gofakeit.Company(),
			PostedByID:     admin.ID,
			Requirements:   s.randomSkills(),
			Location:       gofakeit.City() + ", " + gofakeit.StateAbr(),
			JobType:        models.JobTypes[s.rand.Intn(len(models.JobTypes))],
			SalaryMin:      salaryMin,
			SalaryMax:      salaryMin + 10000 + s.rand.Intn(40000),
			SalaryCurrency: "USD",
			IsActive:       s.rand.Intn(10) > 1,
		}
		job.CreatedAt = time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour)
		if err := s.db.Create(&job).Error; err != nil {
			return nil, fmt.Errorf("creating job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// SeedApplications has each applicant apply to up to maxPerApplicant jobs.
func (s *Seeder) SeedApplications(jobs []models.Job, applicants []models.User, maxPerApplicant int) (int, error) {
	if len(jobs) == 0 || len(applicants) == 0 {
		return 0, nil
	}

	created := 0
	for _, applicant := range applicants {
		count := s.rand.Intn(maxPerApplicant + 1)
		seen := make(map[uint]bool, count)
		for j := 0; j < count; j++ {
			job := jobs[s.rand.Intn(len(jobs))]
			if seen[job.ID] || !job.IsActive {
				continue
			}
			seen[job.ID] = true

			application := models.Application{
				JobID:       job.ID,
				ApplicantID: applicant.ID,
				Status:      models.StatusApplied,
				AppliedAt:   time.Now().Add(-time.Duration(s.rand.Intn(30*24)) * time.Hour),
			}
			err := s.db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&application).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).
					UpdateColumn("total_applications", gorm.Expr("total_applications + ?", 1)).Error; err != nil {
					return err
				}
				return tx.Model(&job).Association("Applicants").Append(&applicant)
			})
			if err != nil {
				return created, fmt.Errorf("creating application: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) randomSkills() string {
	count := 3 + s.rand.Intn(4)
	skills := make([]string, 0, count)
	for i := 0; i < count; i++ {
		skills = append(skills, gofakeit.ProgrammingLanguage())
	}
	return joinUnique(skills)
}

func joinUnique(items []string) string {
	seen := make(map[string]bool, len(items))
	out := ""
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		if out != "" {
			out += ", "
		}
		out += item
	}
	return out
}
