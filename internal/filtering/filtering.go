package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"careermatch/internal/catalog"
	"careermatch/internal/matching"
	"careermatch/internal/profile"
	"careermatch/internal/tracker"
)

// Filter represents a single filtering step applied to jobs.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, jobs *catalog.Jobs) (*catalog.Jobs, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Tracker tracker.Store
	Logger  *zap.Logger
	Profile *profile.Profile
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	// Companies to drop regardless of score.
	Companies []string
	// MinimumFitScore drops jobs whose overall match is below it.
	MinimumFitScore int
	// IncludeTracked keeps jobs that are already on the board.
	IncludeTracked bool
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially, returning the surviving
// jobs and the match scores computed along the way.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, jobs *catalog.Jobs) (*catalog.Jobs, map[string]matching.MatchScore, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	scores := make(map[string]matching.MatchScore)
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, jobs)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		jobs = next

		if collector, ok := step.(interface {
			Scores() map[string]matching.MatchScore
		}); ok {
			for id, score := range collector.Scores() {
				scores[id] = score
			}
		}
	}

	return jobs, scores, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
