package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careermatch/internal/catalog"
)

func TestApplyExperienceAnswer(t *testing.T) {
	t.Parallel()

	p := New("Alex")
	require.NoError(t, Apply(p, "experience", "experienced"))

	assert.Equal(t, catalog.ExperienceSenior, p.ExperienceLevel)
	assert.Equal(t, 8, p.YearsOfExperience)
}

func TestApplyWorkStyleAnswer(t *testing.T) {
	t.Parallel()

	p := New("Alex")
	require.NoError(t, Apply(p, "work-style", "mix"))

	assert.Equal(t, []string{catalog.WorkModeHybrid, catalog.WorkModeRemote}, p.WorkModePreferences)
}

func TestApplyMergesWithoutDuplicates(t *testing.T) {
	t.Parallel()

	p := New("Alex")
	require.NoError(t, Apply(p, "company-stage", "scrappy"))
	require.NoError(t, Apply(p, "company-stage", "scrappy"))
	require.NoError(t, Apply(p, "culture", "fast"))

	assert.Equal(t, []string{catalog.CompanyTypeStartup, catalog.CompanyTypeScaleup}, p.CompanyTypePreferences)
	assert.Equal(t, []string{"autonomy", "innovation", "ownership"}, p.CulturalValues)
}

func TestApplyDoesNotOverwriteScalarsWhenUnset(t *testing.T) {
	t.Parallel()

	p := New("Alex")
	p.ExperienceLevel = catalog.ExperienceLead
	p.YearsOfExperience = 12

	require.NoError(t, Apply(p, "culture", "balance"))

	assert.Equal(t, catalog.ExperienceLead, p.ExperienceLevel)
	assert.Equal(t, 12, p.YearsOfExperience)
}

func TestApplyUnknownIDs(t *testing.T) {
	t.Parallel()

	p := New("Alex")

	err := Apply(p, "favorite-color", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown question "favorite-color"`)

	err = Apply(p, "experience", "immortal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown option "immortal"`)
}

func TestQuestionnaireAnswersProduceValidProfiles(t *testing.T) {
	t.Parallel()

	for _, q := range Questionnaire() {
		for _, opt := range q.Options {
			p := New("Alex")
			require.NoError(t, Apply(p, q.ID, opt.ID))
			require.NoError(t, p.Validate(), "question %s option %s", q.ID, opt.ID)
		}
	}
}
