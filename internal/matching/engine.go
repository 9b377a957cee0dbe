package matching

import (
	"math"
	"strings"

	"careermatch/internal/catalog"
	"careermatch/internal/profile"
)

// Fixed weights of the overall score. Skills dominate; salary and culture
// act as tie-breakers.
const (
	weightSkills     = 0.40
	weightExperience = 0.25
	weightLocation   = 0.15
	weightSalary     = 0.10
	weightCulture    = 0.10
)

// MatchScore is the five-dimension compatibility score between a profile
// and a job. Every field is an integer in [0,100].
type MatchScore struct {
	Overall       int `json:"overall"`
	SkillsFit     int `json:"skillsFit"`
	ExperienceFit int `json:"experienceFit"`
	LocationFit   int `json:"locationFit"`
	SalaryFit     int `json:"salaryFit"`
	CultureFit    int `json:"cultureFit"`
}

// Score computes the weighted multi-factor compatibility between a profile
// and a job. Pure and deterministic: identical inputs always produce an
// identical score, and empty collections fall back to fixed neutral values
// instead of failing.
func Score(p *profile.Profile, j *catalog.Job) MatchScore {
	score := MatchScore{
		SkillsFit:     clamp(skillsFit(p, j)),
		ExperienceFit: clamp(experienceFit(p, j)),
		LocationFit:   clamp(locationFit(p, j)),
		SalaryFit:     clamp(salaryFit(p, j)),
		CultureFit:    clamp(cultureFit(p, j)),
	}

	// The overall is derived from the rounded sub-scores, so the published
	// breakdown always adds up to the published overall.
	score.Overall = clamp(float64(score.SkillsFit)*weightSkills +
		float64(score.ExperienceFit)*weightExperience +
		float64(score.LocationFit)*weightLocation +
		float64(score.SalaryFit)*weightSalary +
		float64(score.CultureFit)*weightCulture)

	return score
}

// clamp rounds to the nearest integer and bounds the result to [0,100].
func clamp(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// skillsFit weighs required skills at 80% and nice-to-haves at 20%.
// A job with no required skills scores 100, and a missing nice-to-have
// list grants the full 20 rather than penalizing the candidate.
func skillsFit(p *profile.Profile, j *catalog.Job) float64 {
	if len(j.RequiredSkills) == 0 {
		return 100
	}

	have := make(map[string]bool, len(p.Skills))
	for _, skill := range p.Skills {
		have[normalize(skill)] = true
	}

	required := 0
	for _, skill := range j.RequiredSkills {
		if have[normalize(skill)] {
			required++
		}
	}
	requiredScore := float64(required) / float64(len(j.RequiredSkills)) * 80

	niceScore := 20.0
	if len(j.NiceToHaveSkills) > 0 {
		nice := 0
		for _, skill := range j.NiceToHaveSkills {
			if have[normalize(skill)] {
				nice++
			}
		}
		niceScore = float64(nice) / float64(len(j.NiceToHaveSkills)) * 20
	}

	return requiredScore + niceScore
}

var experienceRanks = map[string]int{
	catalog.ExperienceEntry:     1,
	catalog.ExperienceMid:       2,
	catalog.ExperienceSenior:    3,
	catalog.ExperienceLead:      4,
	catalog.ExperienceExecutive: 5,
}

func experienceRank(level string) int {
	if rank, ok := experienceRanks[normalize(level)]; ok {
		return rank
	}
	// Unrecognized levels count as mid rather than erroring.
	return 2
}

// experienceFit maps the rank distance between the two levels onto a fixed
// step function. The floor of 25 keeps an experience mismatch from zeroing
// out an otherwise good candidate.
func experienceFit(p *profile.Profile, j *catalog.Job) float64 {
	distance := experienceRank(p.ExperienceLevel) - experienceRank(j.ExperienceLevel)
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return 100
	case 1:
		return 75
	case 2:
		return 50
	default:
		return 25
	}
}

// locationFit combines work-mode and location matches as a priority ladder,
// not an additive formula. Work mode outranks a location substring hit, and
// remote jobs keep partial credit even without any explicit match.
func locationFit(p *profile.Profile, j *catalog.Job) float64 {
	workModeMatch := false
	for _, mode := range p.WorkModePreferences {
		if normalize(mode) == normalize(j.WorkMode) {
			workModeMatch = true
			break
		}
	}

	jobLocation := normalize(j.Location)
	jobRemote := normalize(j.WorkMode) == catalog.WorkModeRemote

	locationMatch := false
	for _, pref := range p.LocationPreferences {
		pref = normalize(pref)
		if pref == "" {
			continue
		}
		if strings.Contains(jobLocation, pref) || (strings.Contains(pref, "remote") && jobRemote) {
			locationMatch = true
			break
		}
	}

	switch {
	case workModeMatch && locationMatch:
		return 100
	case workModeMatch:
		return 80
	case locationMatch:
		return 60
	case jobRemote:
		return 50
	default:
		return 30
	}
}

// salaryFit scores the interval overlap between the profile's expectations
// and the job's range. Any overlap guarantees at least 60. A job paying
// below expectations is penalized in proportion to the shortfall (a 50%
// gap zeroes the score); a job paying entirely above them gets a flat 50,
// flagging a likely scope mismatch without punishing the candidate.
func salaryFit(p *profile.Profile, j *catalog.Job) float64 {
	low := max(p.SalaryMin, j.SalaryMin)
	high := min(p.SalaryMax, j.SalaryMax)

	if low <= high {
		overlapPercent := 1.0
		if profileRange := p.SalaryMax - p.SalaryMin; profileRange > 0 {
			overlapPercent = float64(high-low) / float64(profileRange)
		}
		return math.Min(100, 60+overlapPercent*40)
	}

	if j.SalaryMax < p.SalaryMin {
		if p.SalaryMin <= 0 {
			return 0
		}
		gap := float64(p.SalaryMin - j.SalaryMax)
		return math.Max(0, 100-gap/float64(p.SalaryMin)*200)
	}

	return 50
}

// cultureFit sums a value-overlap component (70%) and a company-type
// component (30%). A job that declares no values gets a neutral 35, and a
// company-type mismatch still keeps 15 as a baseline.
func cultureFit(p *profile.Profile, j *catalog.Job) float64 {
	valuesScore := 35.0
	if len(j.CulturalValues) > 0 {
		matched := 0
		for _, jobValue := range j.CulturalValues {
			if matchesAnyValue(jobValue, p.CulturalValues) {
				matched++
			}
		}
		valuesScore = float64(matched) / float64(len(j.CulturalValues)) * 70
	}

	companyTypeScore := 15.0
	for _, companyType := range p.CompanyTypePreferences {
		if normalize(companyType) == normalize(j.CompanyType) {
			companyTypeScore = 30
			break
		}
	}

	return valuesScore + companyTypeScore
}

// matchesAnyValue checks case-insensitive substring containment in either
// direction, so "innovation" pairs with "continuous innovation".
func matchesAnyValue(jobValue string, profileValues []string) bool {
	jobValue = normalize(jobValue)
	if jobValue == "" {
		return false
	}
	for _, value := range profileValues {
		value = normalize(value)
		if value == "" {
			continue
		}
		if strings.Contains(jobValue, value) || strings.Contains(value, jobValue) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
