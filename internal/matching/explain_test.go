package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careermatch/internal/catalog"
	"careermatch/internal/profile"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$140,000", formatMoney(140000))
	assert.Equal(t, "$95,500", formatMoney(95500))
	assert.Equal(t, "$0", formatMoney(0))
}

func TestExplainFrontendScenario(t *testing.T) {
	t.Parallel()

	jobs, err := catalog.Load("")
	require.NoError(t, err)
	job := jobs.FindByID("job-1")
	require.NotNil(t, job)

	p := testProfile()
	score := Score(p, job)
	explanation := Explain(p, job, score)

	assert.Contains(t, explanation.Skills, "Excellent skills match")
	assert.Contains(t, explanation.Skills, "3 of 3")
	assert.Contains(t, explanation.Experience, "lines up well")
	assert.Contains(t, explanation.Location, "fits your work-mode preferences")
	assert.Contains(t, explanation.Salary, "$140,000")
	assert.Contains(t, explanation.Salary, "overlaps")
	assert.Contains(t, explanation.Culture, "Strong cultural alignment")
	assert.Contains(t, explanation.Summary, "Strong match (98/100)")
	assert.Contains(t, explanation.Summary, "TechFlow Inc")
}

func TestExplainSkillsTiers(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{Skills: []string{"Go"}}

	noRequired := &catalog.Job{}
	assert.Contains(t, explainSkills(p, noRequired, 100), "no required skills")

	partial := &catalog.Job{RequiredSkills: []string{"Go", "Docker", "Kubernetes"}}
	got := explainSkills(p, partial, Score(p, partial).SkillsFit)
	assert.Contains(t, got, "Significant skills gap")
	assert.Contains(t, got, "Docker")
	assert.Contains(t, got, "Kubernetes")

	half := &catalog.Job{RequiredSkills: []string{"Go", "Docker"}}
	got = explainSkills(p, half, Score(p, half).SkillsFit)
	assert.Contains(t, got, "Solid partial match")
	assert.Contains(t, got, "Docker")
}

func TestExplainSalaryTiers(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{SalaryMin: 150000, SalaryMax: 180000}

	low := &catalog.Job{SalaryMin: 60000, SalaryMax: 80000}
	got := explainSalary(p, low, Score(p, low).SalaryFit)
	assert.Contains(t, got, "blocker")
	assert.Contains(t, got, "$150,000")

	above := &catalog.Job{SalaryMin: 200000, SalaryMax: 250000}
	got = explainSalary(p, above, Score(p, above).SalaryFit)
	assert.Contains(t, got, "worth a conversation")
}

func TestExplainCultureTiers(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{
		CulturalValues:         []string{"innovation"},
		CompanyTypePreferences: []string{catalog.CompanyTypeStartup},
	}

	silentMatch := &catalog.Job{Company: "Acme", CompanyType: catalog.CompanyTypeStartup}
	got := explainCulture(p, silentMatch, Score(p, silentMatch).CultureFit)
	assert.Contains(t, got, "matches your preferred company types")

	silentMismatch := &catalog.Job{Company: "Acme", CompanyType: catalog.CompanyTypeEnterprise}
	got = explainCulture(p, silentMismatch, Score(p, silentMismatch).CultureFit)
	assert.Contains(t, got, "does not advertise its values")

	misaligned := &catalog.Job{
		Company:        "Acme",
		CompanyType:    catalog.CompanyTypeEnterprise,
		CulturalValues: []string{"process", "hierarchy", "stability"},
	}
	got = explainCulture(p, misaligned, Score(p, misaligned).CultureFit)
	assert.Contains(t, got, "Cultural fit looks thin")
}

func TestExplainSummaryBands(t *testing.T) {
	t.Parallel()

	job := &catalog.Job{Title: "Engineer", Company: "Acme"}

	tests := []struct {
		overall int
		expect  string
	}{
		{overall: 98, expect: "Strong match"},
		{overall: 75, expect: "Strong match"},
		{overall: 74, expect: "Good match"},
		{overall: 60, expect: "Good match"},
		{overall: 59, expect: "Moderate match"},
		{overall: 40, expect: "Moderate match"},
		{overall: 39, expect: "Weak match"},
		{overall: 0, expect: "Weak match"},
	}

	for _, tt := range tests {
		assert.Contains(t, explainSummary(job, tt.overall), tt.expect)
	}
}
