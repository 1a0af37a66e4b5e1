// Command main runs the database seeder for the recruitment API.
package main

import (
	"flag"
	"log"

	"talenthub/internal/config"
	"talenthub/internal/database"
	"talenthub/internal/seed"
)

func main() {
	// Parse command line flags
	numAdmins := flag.Int("admins", 5, "Number of admin accounts to create")
	numApplicants := flag.Int("applicants", 50, "Number of applicant accounts to create")
	numJobs := flag.Int("jobs", 30, "Number of job postings to create")
	maxApps := flag.Int("max-applications", 5, "Max applications per applicant")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d admins, %d applicants, %d jobs, clean=%v\n",
		*numAdmins, *numApplicants, *numJobs, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	admins, err := s.SeedAdmins(*numAdmins)
	if err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}

	applicants, err := s.SeedApplicants(*numApplicants)
	if err != nil {
		log.Fatalf("Applicant seeding failed: %v", err)
	}

	jobs, err := s.SeedJobs(admins, *numJobs)
	if err != nil {
		log.Fatalf("Job seeding failed: %v", err)
	}

	applications, err := s.SeedApplications(jobs, applicants, *maxApps)
	if err != nil {
		log.Fatalf("Application seeding failed: %v", err)
	}

	log.Printf("Seeded %d admins, %d applicants, %d jobs, %d applications",
		len(admins), len(applicants), len(jobs), applications)
	log.Printf("All accounts use the password: %s", seed.SeedPassword)
}
