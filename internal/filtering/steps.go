package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"careermatch/internal/catalog"
	"careermatch/internal/matching"
)

const includeTrackedMsg = "include-tracked flag is set"

type trackedHistoryFilter struct {
	include bool
}

// NewTrackedHistory creates a filter that removes jobs already present on
// the application board.
func NewTrackedHistory() Filter {
	return &trackedHistoryFilter{}
}

func (f *trackedHistoryFilter) Name() string { return "tracked_history" }

func (f *trackedHistoryFilter) Disable(string) {}

func (f *trackedHistoryFilter) IsEnabled() bool { return true }

func (f *trackedHistoryFilter) Validate(cfg *Config) error {
	f.include = cfg != nil && cfg.IncludeTracked
	return nil
}

func (f *trackedHistoryFilter) Apply(_ context.Context, deps Deps, jobs *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := jobs.Len()
	if f.include {
		if deps.Logger != nil {
			deps.Logger.Info("keeping already tracked jobs", zap.String("reason", includeTrackedMsg))
		}
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	if deps.Tracker == nil {
		return jobs, Step{}, fmt.Errorf("tracker store is required")
	}
	if deps.Profile == nil {
		return jobs, Step{}, fmt.Errorf("profile is required")
	}

	tracked, err := deps.Tracker.List(deps.Profile.ID)
	if err != nil {
		return jobs, Step{}, fmt.Errorf("list tracked jobs: %w", err)
	}

	ids := make([]string, 0, len(tracked))
	for _, analysis := range tracked {
		ids = append(ids, analysis.JobID)
	}

	excluded := jobs.Exclude(catalog.JobIDField, ids)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding jobs already on the board",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *trackedHistoryFilter) Status() Status {
	details := map[string]string{
		"exclude_tracked": strconv.FormatBool(!f.include),
	}
	reason := ""
	if f.include {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: true, Reason: reason, Details: details}
}

type companiesFilter struct {
	companies []string
}

// NewCompanies creates a filter that removes jobs from companies excluded in the config.
func NewCompanies() Filter {
	return &companiesFilter{}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Disable(string) {}

func (f *companiesFilter) IsEnabled() bool { return true }

func (f *companiesFilter) Validate(cfg *Config) error {
	f.companies = nil
	if cfg != nil {
		f.companies = append(f.companies, cfg.Companies...)
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, deps Deps, jobs *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := jobs.Len()
	if len(f.companies) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	excluded := jobs.Exclude(catalog.JobCompanyField, f.companies)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding jobs by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type minFitFilter struct {
	minScore int
	scores   map[string]matching.MatchScore
}

// NewMinFit creates the scoring step. It evaluates every remaining job with
// the matching engine and drops those below the configured minimum overall
// score. The computed scores are exposed for ranking, so callers never
// score the same job twice.
func NewMinFit() Filter {
	return &minFitFilter{}
}

func (f *minFitFilter) Name() string { return "min_fit" }

func (f *minFitFilter) Disable(string) {}

func (f *minFitFilter) IsEnabled() bool { return true }

func (f *minFitFilter) Validate(cfg *Config) error {
	f.minScore = 0
	if cfg != nil {
		if cfg.MinimumFitScore < 0 || cfg.MinimumFitScore > 100 {
			return fmt.Errorf("minimum fit score must be within [0,100], got %d", cfg.MinimumFitScore)
		}
		f.minScore = cfg.MinimumFitScore
	}
	return nil
}

func (f *minFitFilter) Apply(_ context.Context, deps Deps, jobs *catalog.Jobs) (*catalog.Jobs, Step, error) {
	if deps.Profile == nil {
		return jobs, Step{}, fmt.Errorf("profile is required for scoring")
	}

	initial := jobs.Len()
	kept := make([]*catalog.Job, 0, initial)
	f.scores = make(map[string]matching.MatchScore, initial)

	for _, job := range jobs.Items {
		score := matching.Score(deps.Profile, job)
		if score.Overall < f.minScore {
			if deps.Logger != nil {
				deps.Logger.Debug("job dropped by minimum fit score",
					zap.String("job_id", job.ID),
					zap.Int("score", score.Overall),
					zap.Int("threshold", f.minScore),
				)
			}
			continue
		}

		f.scores[job.ID] = score
		kept = append(kept, job)
	}

	jobs.Items = kept

	return jobs, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *minFitFilter) Scores() map[string]matching.MatchScore {
	if f.scores == nil {
		return map[string]matching.MatchScore{}
	}
	return f.scores
}

func (f *minFitFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"minimum_fit_score": strconv.Itoa(f.minScore)},
	}
}
