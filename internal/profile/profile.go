package profile

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"careermatch/internal/catalog"
)

// Profile holds everything the matching engine knows about the user. There
// is exactly one profile per installation; saving replaces the previous one.
type Profile struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"userId"`
	Name                   string    `json:"name"`
	Skills                 []string  `json:"skills"`
	ExperienceLevel        string    `json:"experienceLevel"`
	YearsOfExperience      int       `json:"yearsOfExperience"`
	LocationPreferences    []string  `json:"locationPreferences"`
	WorkModePreferences    []string  `json:"workModePreferences"`
	SalaryMin              int       `json:"salaryMin"`
	SalaryMax              int       `json:"salaryMax"`
	CompanyTypePreferences []string  `json:"companyTypePreferences"`
	CulturalValues         []string  `json:"culturalValues"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func New(name string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        uuid.NewString(),
		UserID:    uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the profile as modified. Called by every mutating flow before
// the profile is saved.
func (p *Profile) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// Validate reports malformed profiles. The matching engine assumes its
// inputs passed this check.
func (p *Profile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.YearsOfExperience, validation.Min(0)),
		validation.Field(&p.ExperienceLevel, validation.In(toAny(catalog.ExperienceLevels())...)),
		validation.Field(&p.WorkModePreferences, validation.Each(validation.In(toAny(catalog.WorkModes())...))),
		validation.Field(&p.CompanyTypePreferences, validation.Each(validation.In(toAny(catalog.CompanyTypes())...))),
		validation.Field(&p.SalaryMin, validation.Min(0)),
		validation.Field(&p.SalaryMax, validation.Min(0), validation.By(func(any) error {
			if p.SalaryMax < p.SalaryMin {
				return errors.New("must be greater than or equal to salaryMin")
			}
			return nil
		})),
	)
}

func toAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// MergeStrings unions extra into base, dropping case-insensitive duplicates
// while keeping the casing of the first occurrence.
func MergeStrings(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	merged := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, s)
	}
	for _, s := range extra {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, s)
	}
	return merged
}
