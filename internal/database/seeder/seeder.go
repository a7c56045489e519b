// Package seeder loads a small development dataset so the matching
// endpoints work out of the box against either storage backend.
package seeder

import (
	"context"
	"encoding/json"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

func Candidates() []candidate.Candidate {
	return []candidate.Candidate{
		{
			ID: uuid.MustParse("5f2a1d60-9f3c-4f7e-8a4b-1d2e3f405061"),
			Skills: []candidate.Skill{
				{Name: "Go", Proficiency: 90, Category: "backend", Verified: true},
				{Name: "PostgreSQL", Proficiency: 80, Category: "database"},
				{Name: "Docker", Proficiency: 70, Category: "infra"},
			},
			YearsExperience: 6,
			Location:        candidate.Location{City: "Jakarta", Region: "Jakarta", Country: "ID"},
			AccommodationNeeds: []candidate.AccommodationNeed{
				candidate.NeedRemoteWork,
				candidate.NeedFlexibleSchedule,
			},
			Compensation: candidate.CompensationRange{Min: 90_000_000, Max: 140_000_000, Currency: "IDR"},
			WorkModes:    []candidate.WorkMode{candidate.WorkModeRemote, candidate.WorkModeHybrid},
			CultureTags:  []string{"async", "documentation-first", "flat"},
		},
		{
			ID: uuid.MustParse("7b8c9dae-0f10-4121-9232-434454657687"),
			Skills: []candidate.Skill{
				{Name: "TypeScript", Proficiency: 85, Category: "frontend"},
				{Name: "React", Proficiency: 80, Category: "frontend"},
			},
			YearsExperience: 3,
			Location:        candidate.Location{City: "Bandung", Region: "West Java", Country: "ID"},
			AccommodationNeeds: []candidate.AccommodationNeed{
				candidate.NeedScreenReader,
			},
			Compensation: candidate.CompensationRange{Min: 60_000_000, Max: 100_000_000, Currency: "IDR"},
			WorkModes:    []candidate.WorkMode{candidate.WorkModeOnsite, candidate.WorkModeHybrid},
			CultureTags:  []string{"mentoring", "pairing"},
		},
	}
}

func Jobs() []job.Job {
	return []job.Job{
		{
			ID:      uuid.MustParse("a1b2c3d4-e5f6-4708-9910-111213141516"),
			Title:   "Senior Backend Engineer",
			Company: "Nimbus Logistics",
			RequiredSkills: []job.RequiredSkill{
				{Name: "Go", Category: "backend"},
				{Name: "PostgreSQL", Category: "database"},
			},
			MinYears:    3,
			TargetYears: 5,
			Location:    job.Location{City: "Surabaya", Region: "East Java", Country: "ID"},
			AccessibilityFeatures: []job.AccessibilityFeature{
				job.FeatureRemoteWork,
				job.FeatureFlexibleSchedule,
			},
			Compensation: job.CompensationRange{Min: 100_000_000, Max: 160_000_000, Currency: "IDR"},
			WorkModes:    []job.WorkMode{job.WorkModeRemote},
			CultureTags:  []string{"async", "flat"},
		},
		{
			ID:      uuid.MustParse("b2c3d4e5-f607-4819-a02b-1c2d3e4f5a6b"),
			Title:   "Frontend Engineer",
			Company: "Kawan Sehat",
			RequiredSkills: []job.RequiredSkill{
				{Name: "TypeScript", Category: "frontend"},
				{Name: "React", Category: "frontend"},
			},
			MinYears:    2,
			TargetYears: 4,
			Location:    job.Location{City: "Bandung", Region: "West Java", Country: "ID"},
			AccessibilityFeatures: []job.AccessibilityFeature{
				job.FeatureScreenReader,
				job.FeatureWheelchairAccess,
			},
			Compensation: job.CompensationRange{Min: 70_000_000, Max: 110_000_000, Currency: "IDR"},
			WorkModes:    []job.WorkMode{job.WorkModeHybrid, job.WorkModeOnsite},
			CultureTags:  []string{"mentoring", "user-research"},
		},
	}
}

func SeedMemory(candidates *repository.MemoryCandidateStore, jobs *repository.MemoryJobStore) {
	for _, c := range Candidates() {
		candidates.Put(c)
	}
	for _, j := range Jobs() {
		jobs.Put(j)
	}
}

func SeedPostgres(ctx context.Context, db database.DB) error {
	for _, c := range Candidates() {
		profile, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO candidates (id, profile) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			c.ID, profile,
		); err != nil {
			return err
		}
	}
	for _, j := range Jobs() {
		posting, err := json.Marshal(j)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO jobs (id, posting) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			j.ID, posting,
		); err != nil {
			return err
		}
	}
	return nil
}
