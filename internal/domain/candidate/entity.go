package candidate

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

type AccommodationNeed string

const (
	NeedWheelchairAccess AccommodationNeed = "wheelchair_access"
	NeedFlexibleSchedule AccommodationNeed = "flexible_schedule"
	NeedRemoteWork       AccommodationNeed = "remote_work"
	NeedScreenReader     AccommodationNeed = "screen_reader"
	NeedSignLanguage     AccommodationNeed = "sign_language"
	NeedQuietWorkspace   AccommodationNeed = "quiet_workspace"
)

type Skill struct {
	Name        string `json:"name"`
	Proficiency int    `json:"proficiency"`
	Category    string `json:"category"`
	Verified    bool   `json:"verified"`
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

type Candidate struct {
	ID                 uuid.UUID           `json:"id"`
	Skills             []Skill             `json:"skills"`
	YearsExperience    int                 `json:"years_experience"`
	Location           Location            `json:"location"`
	AccommodationNeeds []AccommodationNeed `json:"accommodation_needs"`
	Compensation       CompensationRange   `json:"compensation"`
	WorkModes          []WorkMode          `json:"work_modes"`
	CultureTags        []string            `json:"culture_tags"`
	CreatedAt          time.Time           `json:"created_at"`
}
