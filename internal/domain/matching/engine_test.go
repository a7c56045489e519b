package matching

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

func TestEngine_Evaluate_StrongCandidate(t *testing.T) {
	eng := NewEngine(nil)

	c := candidate.Candidate{
		ID: uuid.New(),
		Skills: []candidate.Skill{
			{Name: "Distributed Systems", Proficiency: 90, Verified: true},
			{Name: "Relational Databases", Proficiency: 85, Verified: true},
		},
		YearsExperience:    6,
		AccommodationNeeds: []candidate.AccommodationNeed{candidate.NeedFlexibleSchedule},
	}
	j := job.Job{
		ID: uuid.New(),
		RequiredSkills: []job.RequiredSkill{
			{Name: "Distributed Systems"},
			{Name: "Relational Databases"},
		},
		TargetYears: 3,
		WorkModes:   []job.WorkMode{job.WorkModeRemote},
	}

	res, err := eng.Evaluate(c, j, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if got := factorByCategory(t, res, match.FactorSkills); got.RawScore < 85 {
		t.Fatalf("expected skills factor >= 85, got %d", got.RawScore)
	}
	if got := factorByCategory(t, res, match.FactorAccessibility); got.RawScore != 100 {
		t.Fatalf("expected accessibility factor 100 via remote override, got %d", got.RawScore)
	}
	if res.Score < 85 {
		t.Fatalf("expected overall score >= 85, got %d", res.Score)
	}
	if res.Status != match.StatusPending {
		t.Fatalf("expected pending status, got %s", res.Status)
	}
}

func TestEngine_Evaluate_AccessibilityGap(t *testing.T) {
	eng := NewEngine(nil)

	c := candidate.Candidate{
		ID:                 uuid.New(),
		Skills:             []candidate.Skill{{Name: "Go", Proficiency: 80}},
		YearsExperience:    5,
		AccommodationNeeds: []candidate.AccommodationNeed{candidate.NeedWheelchairAccess},
	}
	j := job.Job{
		ID:             uuid.New(),
		RequiredSkills: []job.RequiredSkill{{Name: "Go"}},
		TargetYears:    3,
	}

	res, err := eng.Evaluate(c, j, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	acc := factorByCategory(t, res, match.FactorAccessibility)
	if acc.RawScore > 10 {
		t.Fatalf("expected accessibility factor <= 10, got %d", acc.RawScore)
	}
	if acc.Positive {
		t.Fatalf("expected a negative accessibility factor")
	}

	foundReason := false
	for _, r := range res.Reasons {
		if strings.Contains(r, string(match.FactorAccessibility)) {
			foundReason = true
		}
	}
	if !foundReason {
		t.Fatalf("expected an accessibility reason, got %v", res.Reasons)
	}

	foundRec := false
	for _, r := range res.Recommendations {
		if strings.Contains(r, "accessibility") {
			foundRec = true
		}
	}
	if !foundRec {
		t.Fatalf("expected an accessibility recommendation, got %v", res.Recommendations)
	}
}

func TestEngine_Evaluate_BoundsAndDeterminism(t *testing.T) {
	eng := NewEngine(nil)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 250; i++ {
		c := randomCandidate(rng)
		j := randomJob(rng)
		overrides := randomOverrides(rng)

		first, err := eng.Evaluate(c, j, overrides)
		if err != nil {
			t.Fatalf("iter %d: unexpected err: %v", i, err)
		}
		if first.Score < 0 || first.Score > 100 {
			t.Fatalf("iter %d: score out of bounds: %d", i, first.Score)
		}
		if first.Confidence < 0 || first.Confidence > 1 {
			t.Fatalf("iter %d: confidence out of bounds: %v", i, first.Confidence)
		}

		var sum float64
		for _, f := range first.Factors {
			sum += f.Weight
		}
		if sum < 1-1e-6 || sum > 1+1e-6 {
			t.Fatalf("iter %d: factor weights sum %v, expected 1.0", i, sum)
		}

		second, err := eng.Evaluate(c, j, overrides)
		if err != nil {
			t.Fatalf("iter %d: unexpected err on replay: %v", i, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("iter %d: evaluation is not deterministic:\nfirst:  %+v\nsecond: %+v", i, first, second)
		}
	}
}

func factorByCategory(t *testing.T, res match.Result, cat match.FactorCategory) match.Factor {
	t.Helper()
	for _, f := range res.Factors {
		if f.Category == cat {
			return f
		}
	}
	t.Fatalf("factor %s not found", cat)
	return match.Factor{}
}

var skillPool = []string{"Go", "PostgreSQL", "Redis", "Kubernetes", "Terraform", "React", "Rust", "Kafka"}
var cityPool = []string{"", "Jakarta", "Berlin", "Oslo", "Tokyo"}
var regionPool = []string{"", "West Java", "Brandenburg", "Kanto"}
var needPool = []candidate.AccommodationNeed{
	candidate.NeedWheelchairAccess,
	candidate.NeedFlexibleSchedule,
	candidate.NeedScreenReader,
	candidate.NeedQuietWorkspace,
}
var tagPool = []string{"async", "pair programming", "flat hierarchy", "on-call"}

func randomCandidate(rng *rand.Rand) candidate.Candidate {
	skills := make([]candidate.Skill, 0)
	for _, name := range skillPool {
		if rng.Intn(2) == 0 {
			continue
		}
		skills = append(skills, candidate.Skill{
			Name:        name,
			Proficiency: rng.Intn(101),
			Verified:    rng.Intn(2) == 0,
		})
	}

	needs := make([]candidate.AccommodationNeed, 0)
	for _, n := range needPool {
		if rng.Intn(4) == 0 {
			needs = append(needs, n)
		}
	}

	modes := make([]candidate.WorkMode, 0)
	if rng.Intn(2) == 0 {
		modes = append(modes, candidate.WorkModeRemote)
	}

	tags := make([]string, 0)
	for _, tg := range tagPool {
		if rng.Intn(2) == 0 {
			tags = append(tags, tg)
		}
	}

	minComp := int64(rng.Intn(100)) * 1000
	return candidate.Candidate{
		ID:                 uuid.New(),
		Skills:             skills,
		YearsExperience:    rng.Intn(20),
		Location:           candidate.Location{City: cityPool[rng.Intn(len(cityPool))], Region: regionPool[rng.Intn(len(regionPool))]},
		AccommodationNeeds: needs,
		Compensation:       candidate.CompensationRange{Min: minComp, Max: minComp + int64(rng.Intn(50))*1000},
		WorkModes:          modes,
		CultureTags:        tags,
	}
}

func randomJob(rng *rand.Rand) job.Job {
	required := make([]job.RequiredSkill, 0)
	for _, name := range skillPool {
		if rng.Intn(3) == 0 {
			required = append(required, job.RequiredSkill{Name: name})
		}
	}

	features := make([]job.AccessibilityFeature, 0)
	if rng.Intn(3) == 0 {
		features = append(features, job.FeatureWheelchairAccess)
	}

	modes := make([]job.WorkMode, 0)
	if rng.Intn(2) == 0 {
		modes = append(modes, job.WorkModeRemote)
	}

	tags := make([]string, 0)
	for _, tg := range tagPool {
		if rng.Intn(2) == 0 {
			tags = append(tags, tg)
		}
	}

	minComp := int64(rng.Intn(100)) * 1000
	target := rng.Intn(10)
	return job.Job{
		ID:                    uuid.New(),
		RequiredSkills:        required,
		MinYears:              target / 2,
		TargetYears:           target,
		Location:              job.Location{City: cityPool[rng.Intn(len(cityPool))], Region: regionPool[rng.Intn(len(regionPool))]},
		AccessibilityFeatures: features,
		Compensation:          job.CompensationRange{Min: minComp, Max: minComp + int64(rng.Intn(60))*1000},
		WorkModes:             modes,
		CultureTags:           tags,
	}
}

func randomOverrides(rng *rand.Rand) Weights {
	if rng.Intn(2) == 0 {
		return nil
	}
	return Weights{
		match.FactorSkills:     rng.Float64(),
		match.FactorExperience: rng.Float64(),
	}
}
