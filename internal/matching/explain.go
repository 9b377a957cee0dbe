package matching

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"careermatch/internal/catalog"
	"careermatch/internal/profile"
)

// MatchExplanation is the human-readable rationale behind a MatchScore:
// one sentence per dimension plus an overall verdict.
type MatchExplanation struct {
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Location   string `json:"location"`
	Salary     string `json:"salary"`
	Culture    string `json:"culture"`
	Summary    string `json:"summary"`
}

var moneyPrinter = message.NewPrinter(language.English)

func formatMoney(amount int) string {
	return moneyPrinter.Sprintf("$%d", amount)
}

// Explain derives the explanation for a previously computed score. Pure
// templating over the same inputs as Score: the tier for each dimension is
// picked by fixed thresholds and filled with concrete details.
func Explain(p *profile.Profile, j *catalog.Job, score MatchScore) MatchExplanation {
	return MatchExplanation{
		Skills:     explainSkills(p, j, score.SkillsFit),
		Experience: explainExperience(p, j, score.ExperienceFit),
		Location:   explainLocation(p, j, score.LocationFit),
		Salary:     explainSalary(p, j, score.SalaryFit),
		Culture:    explainCulture(p, j, score.CultureFit),
		Summary:    explainSummary(j, score.Overall),
	}
}

func splitSkills(p *profile.Profile, j *catalog.Job) (matched, missing []string) {
	have := make(map[string]bool, len(p.Skills))
	for _, skill := range p.Skills {
		have[normalize(skill)] = true
	}
	for _, skill := range j.RequiredSkills {
		if have[normalize(skill)] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

func explainSkills(p *profile.Profile, j *catalog.Job, score int) string {
	if len(j.RequiredSkills) == 0 {
		return "This role lists no required skills, so nothing blocks you here."
	}

	matched, missing := splitSkills(p, j)
	switch {
	case score >= 80:
		return fmt.Sprintf("Excellent skills match: you bring %d of %d required skills (%s).",
			len(matched), len(j.RequiredSkills), strings.Join(matched, ", "))
	case score >= 50:
		return fmt.Sprintf("Solid partial match: you cover %d of %d required skills, but the role also asks for %s.",
			len(matched), len(j.RequiredSkills), strings.Join(missing, ", "))
	default:
		return fmt.Sprintf("Significant skills gap: the role requires %s, which your profile does not list yet.",
			strings.Join(missing, ", "))
	}
}

func explainExperience(p *profile.Profile, j *catalog.Job, score int) string {
	switch {
	case score >= 75:
		return fmt.Sprintf("Your %s-level background lines up well with this %s-level role.",
			p.ExperienceLevel, j.ExperienceLevel)
	case score >= 50:
		return fmt.Sprintf("There is a seniority gap: the role targets %s level while your profile reads as %s.",
			j.ExperienceLevel, p.ExperienceLevel)
	default:
		return fmt.Sprintf("The seniority mismatch is large (%s role vs your %s profile), so expect scope differences.",
			j.ExperienceLevel, p.ExperienceLevel)
	}
}

func explainLocation(p *profile.Profile, j *catalog.Job, score int) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("The %s setup in %s fits your work-mode preferences.", j.WorkMode, j.Location)
	case score >= 50:
		return fmt.Sprintf("Workable but not ideal: the role is %s in %s, which only partly matches your preferences.",
			j.WorkMode, j.Location)
	default:
		return fmt.Sprintf("Location is a hurdle: %s in %s matches neither your preferred places nor your work modes.",
			j.WorkMode, j.Location)
	}
}

func explainSalary(p *profile.Profile, j *catalog.Job, score int) string {
	jobRange := fmt.Sprintf("%s-%s", formatMoney(j.SalaryMin), formatMoney(j.SalaryMax))
	profileRange := fmt.Sprintf("%s-%s", formatMoney(p.SalaryMin), formatMoney(p.SalaryMax))
	switch {
	case score >= 60:
		return fmt.Sprintf("The advertised %s overlaps your expected %s.", jobRange, profileRange)
	case score >= 50:
		return fmt.Sprintf("The range %s sits outside your expected %s; worth a conversation before applying.",
			jobRange, profileRange)
	default:
		return fmt.Sprintf("Compensation is likely a blocker: %s falls well short of your minimum of %s.",
			jobRange, formatMoney(p.SalaryMin))
	}
}

func explainCulture(p *profile.Profile, j *catalog.Job, score int) string {
	var shared []string
	for _, jobValue := range j.CulturalValues {
		if matchesAnyValue(jobValue, p.CulturalValues) {
			shared = append(shared, jobValue)
		}
	}

	typeMatch := false
	for _, companyType := range p.CompanyTypePreferences {
		if normalize(companyType) == normalize(j.CompanyType) {
			typeMatch = true
			break
		}
	}

	switch {
	case score >= 70:
		return fmt.Sprintf("Strong cultural alignment with %s: you share %s.",
			j.Company, strings.Join(shared, ", "))
	case score >= 50:
		if len(shared) > 0 {
			return fmt.Sprintf("Some cultural common ground (%s), though the company profile differs from your preferences.",
				strings.Join(shared, ", "))
		}
		if typeMatch {
			return fmt.Sprintf("A %s like %s matches your preferred company types, but little is known about shared values.",
				j.CompanyType, j.Company)
		}
		return fmt.Sprintf("Cultural fit is uncertain: %s does not advertise its values and a %s is not among your preferred company types.",
			j.Company, j.CompanyType)
	default:
		return fmt.Sprintf("Cultural fit looks thin: %s advertises %s, which does not intersect your stated values.",
			j.Company, strings.Join(j.CulturalValues, ", "))
	}
}

func explainSummary(j *catalog.Job, overall int) string {
	switch {
	case overall >= 75:
		return fmt.Sprintf("Strong match (%d/100). %s at %s ticks nearly every box; apply with confidence.",
			overall, j.Title, j.Company)
	case overall >= 60:
		return fmt.Sprintf("Good match (%d/100). %s at %s is worth applying to, with a few gaps to address.",
			overall, j.Title, j.Company)
	case overall >= 40:
		return fmt.Sprintf("Moderate match (%d/100). %s at %s could work, but expect pushback on the weaker dimensions.",
			overall, j.Title, j.Company)
	default:
		return fmt.Sprintf("Weak match (%d/100). %s at %s diverges from your profile on most dimensions.",
			overall, j.Title, j.Company)
	}
}
