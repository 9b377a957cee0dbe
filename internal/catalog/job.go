package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"
)

// Work modes shared between jobs and profile preferences.
const (
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
	WorkModeOnsite = "onsite"
)

// Company types shared between jobs and profile preferences.
const (
	CompanyTypeStartup    = "startup"
	CompanyTypeScaleup    = "scaleup"
	CompanyTypeEnterprise = "enterprise"
	CompanyTypeAgency     = "agency"
	CompanyTypeNonprofit  = "nonprofit"
)

// Experience levels, ordered from junior to executive.
const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceLead      = "lead"
	ExperienceExecutive = "executive"
)

func WorkModes() []string {
	return []string{WorkModeRemote, WorkModeHybrid, WorkModeOnsite}
}

func CompanyTypes() []string {
	return []string{CompanyTypeStartup, CompanyTypeScaleup, CompanyTypeEnterprise, CompanyTypeAgency, CompanyTypeNonprofit}
}

func ExperienceLevels() []string {
	return []string{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive}
}

type Jobs struct {
	Items []*Job
}

// Job is a read-only catalog entry.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	CompanyType      string    `json:"companyType"`
	Description      string    `json:"description"`
	RequiredSkills   []string  `json:"requiredSkills"`
	NiceToHaveSkills []string  `json:"niceToHaveSkills"`
	ExperienceLevel  string    `json:"experienceLevel"`
	Location         string    `json:"location"`
	WorkMode         string    `json:"workMode"`
	EmploymentType   string    `json:"employmentType"`
	SalaryMin        int       `json:"salaryMin"`
	SalaryMax        int       `json:"salaryMax"`
	Benefits         []string  `json:"benefits"`
	CulturalValues   []string  `json:"culturalValues"`
	PostedAt         time.Time `json:"postedAt"`
}

// Validate reports malformed catalog entries. The matching engine assumes
// its inputs passed this check.
func (j *Job) Validate() error {
	return validation.ValidateStruct(j,
		validation.Field(&j.ID, validation.Required),
		validation.Field(&j.Title, validation.Required),
		validation.Field(&j.Company, validation.Required),
		validation.Field(&j.CompanyType, validation.In(toAny(CompanyTypes())...)),
		validation.Field(&j.WorkMode, validation.Required, validation.In(toAny(WorkModes())...)),
		validation.Field(&j.SalaryMin, validation.Min(0)),
		validation.Field(&j.SalaryMax, validation.Min(0), validation.By(func(any) error {
			if j.SalaryMax < j.SalaryMin {
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

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Search returns the subset of jobs whose title, description, company or
// skills contain the query as a case-insensitive substring. An empty query
// returns the full list.
func (j *Jobs) Search(query string) *Jobs {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return &Jobs{Items: append([]*Job{}, j.Items...)}
	}

	matched := make([]*Job, 0, len(j.Items))
	for _, job := range j.Items {
		if job.matchesQuery(query) {
			matched = append(matched, job)
		}
	}
	return &Jobs{Items: matched}
}

func (j *Job) matchesQuery(query string) bool {
	for _, field := range []string{j.Title, j.Description, j.Company} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, skills := range [][]string{j.RequiredSkills, j.NiceToHaveSkills} {
		for _, skill := range skills {
			if strings.Contains(strings.ToLower(skill), query) {
				return true
			}
		}
	}
	return false
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobCompanyField:
		return j.Company

	default:
		return ""
	}
}

// Exclude removes every job matching one of the given field values.
// Matching is case-insensitive so configured company names do not need
// exact casing. A target may match several jobs, e.g. a company with
// multiple postings.
func (j *Jobs) Exclude(name string, targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx := 0; idx < len(j.Items); {
			if strings.EqualFold(j.Items[idx].GetStringField(name), target) {
				excluded = append(excluded, j.Items[idx].ID)
				// RemoveByIndex swaps the last item into idx, recheck it.
				j.RemoveByIndex(idx)
				continue
			}
			idx++
		}
	}
	return excluded
}

// RemoveByIndex removes a job from the list by index. Does not preserve order.
func (j *Jobs) RemoveByIndex(idx int) {
	j.Items[idx] = j.Items[len(j.Items)-1]
	j.Items = j.Items[:len(j.Items)-1]
}

// ReportByCompany groups a short summary of each job under its company name.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		key := fmt.Sprintf("%s (%s)", job.Company, job.CompanyType)
		report[key] = append(report[key], map[string]string{
			"id":        job.ID,
			"title":     job.Title,
			"location":  job.Location,
			"work mode": job.WorkMode,
			"salary":    fmt.Sprintf("%d-%d", job.SalaryMin, job.SalaryMax),
			"skills":    strings.Join(job.RequiredSkills, ", "),
		})
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
