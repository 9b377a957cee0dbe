package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"careermatch/internal/catalog"
)

// Delta is a partial set of profile fields contributed by one questionnaire
// answer. Slices are unioned into the profile with duplicates dropped;
// scalar fields overwrite only when set.
type Delta struct {
	ExperienceLevel string
	Years           int
	YearsSet        bool
	WorkModes       []string
	CompanyTypes    []string
	Values          []string
}

type Option struct {
	ID    string
	Label string
	Delta Delta
}

type Question struct {
	ID      string
	Prompt  string
	Options []Option
}

// Questionnaire is the branching rule table behind the profile wizard. Each
// answer maps to a fixed profile delta, so the whole flow stays a pure
// answer-key -> delta lookup.
func Questionnaire() []Question {
	return []Question{
		{
			ID:     "experience",
			Prompt: "How far along is your career?",
			Options: []Option{
				{ID: "starting", Label: "Just getting started (0-2 years)", Delta: Delta{ExperienceLevel: catalog.ExperienceEntry, Years: 1, YearsSet: true}},
				{ID: "building", Label: "Building momentum (3-5 years)", Delta: Delta{ExperienceLevel: catalog.ExperienceMid, Years: 4, YearsSet: true}},
				{ID: "experienced", Label: "Experienced (6-9 years)", Delta: Delta{ExperienceLevel: catalog.ExperienceSenior, Years: 8, YearsSet: true}},
				{ID: "leading", Label: "Leading teams (10-14 years)", Delta: Delta{ExperienceLevel: catalog.ExperienceLead, Years: 12, YearsSet: true}},
				{ID: "executive", Label: "Executive (15+ years)", Delta: Delta{ExperienceLevel: catalog.ExperienceExecutive, Years: 16, YearsSet: true}},
			},
		},
		{
			ID:     "work-style",
			Prompt: "Where do you do your best work?",
			Options: []Option{
				{ID: "home", Label: "At home, on my own schedule", Delta: Delta{WorkModes: []string{catalog.WorkModeRemote}}},
				{ID: "mix", Label: "A mix of home and office", Delta: Delta{WorkModes: []string{catalog.WorkModeHybrid, catalog.WorkModeRemote}}},
				{ID: "office", Label: "In an office with the team", Delta: Delta{WorkModes: []string{catalog.WorkModeOnsite, catalog.WorkModeHybrid}}},
				{ID: "any", Label: "No strong preference", Delta: Delta{WorkModes: catalog.WorkModes()}},
			},
		},
		{
			ID:     "company-stage",
			Prompt: "What kind of company excites you?",
			Options: []Option{
				{ID: "scrappy", Label: "Small and scrappy, lots of ownership", Delta: Delta{CompanyTypes: []string{catalog.CompanyTypeStartup, catalog.CompanyTypeScaleup}, Values: []string{"autonomy", "innovation"}}},
				{ID: "established", Label: "Established, with process and stability", Delta: Delta{CompanyTypes: []string{catalog.CompanyTypeEnterprise}, Values: []string{"stability", "work-life balance"}}},
				{ID: "client", Label: "Varied client work", Delta: Delta{CompanyTypes: []string{catalog.CompanyTypeAgency}, Values: []string{"creativity", "variety"}}},
				{ID: "mission", Label: "Mission comes first", Delta: Delta{CompanyTypes: []string{catalog.CompanyTypeNonprofit}, Values: []string{"impact", "transparency"}}},
			},
		},
		{
			ID:     "culture",
			Prompt: "What matters most in a team culture?",
			Options: []Option{
				{ID: "fast", Label: "Moving fast and shipping", Delta: Delta{Values: []string{"innovation", "ownership"}}},
				{ID: "balance", Label: "Sustainable pace and openness", Delta: Delta{Values: []string{"work-life balance", "transparency"}}},
				{ID: "growth", Label: "Learning and mentorship", Delta: Delta{Values: []string{"mentorship", "collaboration"}}},
				{ID: "craft", Label: "Doing things properly", Delta: Delta{Values: []string{"craftsmanship", "customer focus"}}},
			},
		},
	}
}

// Apply merges the delta for the given question/option pair into the
// profile. It is the pure core of the wizard; the interactive flow is just
// promptui around it.
func Apply(p *Profile, questionID, optionID string) error {
	for _, q := range Questionnaire() {
		if q.ID != questionID {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID != optionID {
				continue
			}
			merge(p, opt.Delta)
			return nil
		}
		return fmt.Errorf("unknown option %q for question %q", optionID, questionID)
	}
	return fmt.Errorf("unknown question %q", questionID)
}

func merge(p *Profile, d Delta) {
	if d.ExperienceLevel != "" {
		p.ExperienceLevel = d.ExperienceLevel
	}
	if d.YearsSet {
		p.YearsOfExperience = d.Years
	}
	p.WorkModePreferences = MergeStrings(p.WorkModePreferences, d.WorkModes)
	p.CompanyTypePreferences = MergeStrings(p.CompanyTypePreferences, d.CompanyTypes)
	p.CulturalValues = MergeStrings(p.CulturalValues, d.Values)
}

// RunWizard walks the user through profile creation and returns the
// resulting profile. It does not save anything.
func RunWizard() (*Profile, error) {
	namePrompt := promptui.Prompt{
		Label: "Your name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("name is required")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, err
	}

	p := New(strings.TrimSpace(name))

	for _, q := range Questionnaire() {
		labels := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			labels = append(labels, opt.Label)
		}

		sel := promptui.Select{Label: q.Prompt, Items: labels}
		idx, _, err := sel.Run()
		if err != nil {
			return nil, err
		}

		if err := Apply(p, q.ID, q.Options[idx].ID); err != nil {
			return nil, err
		}
	}

	skills, err := promptList("Skills (comma separated, e.g. React, Go, SQL)")
	if err != nil {
		return nil, err
	}
	p.Skills = MergeStrings(p.Skills, skills)

	locations, err := promptList("Preferred locations (comma separated, may include 'remote')")
	if err != nil {
		return nil, err
	}
	p.LocationPreferences = MergeStrings(p.LocationPreferences, locations)

	p.SalaryMin, err = promptInt("Minimum yearly salary", 0)
	if err != nil {
		return nil, err
	}
	p.SalaryMax, err = promptInt("Maximum yearly salary", p.SalaryMin)
	if err != nil {
		return nil, err
	}

	p.Touch()
	return p, nil
}

func promptList(label string) ([]string, error) {
	prompt := promptui.Prompt{Label: label}
	raw, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items, nil
}

func promptInt(label string, minimum int) (int, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("enter a whole number")
			}
			if n < minimum {
				return fmt.Errorf("must be at least %d", minimum)
			}
			return nil
		},
	}
	raw, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}
