package job

import (
	"time"

	"github.com/google/uuid"
)

type WorkMode string

const (
	WorkModeOnsite   WorkMode = "onsite"
	WorkModeRemote   WorkMode = "remote"
	WorkModeHybrid   WorkMode = "hybrid"
	WorkModeFlexible WorkMode = "flexible"
)

type AccessibilityFeature string

const (
	FeatureWheelchairAccess AccessibilityFeature = "wheelchair_access"
	FeatureFlexibleSchedule AccessibilityFeature = "flexible_schedule"
	FeatureRemoteWork       AccessibilityFeature = "remote_work"
	FeatureScreenReader     AccessibilityFeature = "screen_reader"
	FeatureSignLanguage     AccessibilityFeature = "sign_language"
	FeatureQuietWorkspace   AccessibilityFeature = "quiet_workspace"
)

type RequiredSkill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type Location struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type CompensationRange struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type Job struct {
	ID                    uuid.UUID              `json:"id"`
	Title                 string                 `json:"title"`
	Company               string                 `json:"company"`
	RequiredSkills        []RequiredSkill        `json:"required_skills"`
	MinYears              int                    `json:"min_years"`
	TargetYears           int                    `json:"target_years"`
	Location              Location               `json:"location"`
	AccessibilityFeatures []AccessibilityFeature `json:"accessibility_features"`
	Compensation          CompensationRange      `json:"compensation"`
	WorkModes             []WorkMode             `json:"work_modes"`
	CultureTags           []string               `json:"culture_tags"`
	CreatedAt             time.Time              `json:"created_at"`
}
