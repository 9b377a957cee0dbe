package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careermatch/internal/catalog"
	"careermatch/internal/profile"
)

func TestRankOrdersByOverallScore(t *testing.T) {
	t.Parallel()

	day := 24 * time.Hour
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	jobs := &catalog.Jobs{Items: []*catalog.Job{
		{ID: "job-a", PostedAt: base},
		{ID: "job-b", PostedAt: base.Add(day)},
		{ID: "job-c", PostedAt: base.Add(2 * day)},
	}}
	precomputed := map[string]MatchScore{
		"job-a": {Overall: 55},
		"job-b": {Overall: 91},
		"job-c": {Overall: 55},
	}

	ranked := Rank(&profile.Profile{}, jobs, precomputed)

	require.Len(t, ranked, 3)
	assert.Equal(t, "job-b", ranked[0].Job.ID)
	// Equal scores order by newer posting.
	assert.Equal(t, "job-c", ranked[1].Job.ID)
	assert.Equal(t, "job-a", ranked[2].Job.ID)
}

func TestRankBreaksFullTiesByID(t *testing.T) {
	t.Parallel()

	posted := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	jobs := &catalog.Jobs{Items: []*catalog.Job{
		{ID: "job-b", PostedAt: posted},
		{ID: "job-a", PostedAt: posted},
	}}
	precomputed := map[string]MatchScore{
		"job-a": {Overall: 70},
		"job-b": {Overall: 70},
	}

	ranked := Rank(&profile.Profile{}, jobs, precomputed)

	require.Len(t, ranked, 2)
	assert.Equal(t, "job-a", ranked[0].Job.ID)
	assert.Equal(t, "job-b", ranked[1].Job.ID)
}

func TestRankScoresJobsMissingFromPrecomputed(t *testing.T) {
	t.Parallel()

	p := testProfile()
	jobs := &catalog.Jobs{Items: []*catalog.Job{
		{ID: "job-x", RequiredSkills: []string{"React"}},
	}}

	ranked := Rank(p, jobs, nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, Score(p, jobs.Items[0]), ranked[0].Score)
	assert.Equal(t, 100, ranked[0].Score.SkillsFit)
}
