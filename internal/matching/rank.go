package matching

import (
	"sort"

	"careermatch/internal/catalog"
	"careermatch/internal/profile"
)

// Ranked pairs a job with its computed score.
type Ranked struct {
	Job   *catalog.Job `json:"job"`
	Score MatchScore   `json:"score"`
}

// Rank scores every job against the profile and sorts the result by overall
// score, best first. Precomputed scores may be supplied to avoid rescoring;
// any job missing from the map is scored here. Ties order by newer posting,
// then by ID, keeping the ranking deterministic.
func Rank(p *profile.Profile, jobs *catalog.Jobs, precomputed map[string]MatchScore) []Ranked {
	ranked := make([]Ranked, 0, jobs.Len())
	for _, job := range jobs.Items {
		score, ok := precomputed[job.ID]
		if !ok {
			score = Score(p, job)
		}
		ranked = append(ranked, Ranked{Job: job, Score: score})
	}

	sort.SliceStable(ranked, func(i, k int) bool {
		if ranked[i].Score.Overall != ranked[k].Score.Overall {
			return ranked[i].Score.Overall > ranked[k].Score.Overall
		}
		if !ranked[i].Job.PostedAt.Equal(ranked[k].Job.PostedAt) {
			return ranked[i].Job.PostedAt.After(ranked[k].Job.PostedAt)
		}
		return ranked[i].Job.ID < ranked[k].Job.ID
	})

	return ranked
}
