package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"careermatch/internal/catalog"
	"careermatch/internal/filtering"
	"careermatch/internal/matching"
	"careermatch/internal/profile"
	"careermatch/internal/progress"
	"careermatch/internal/tracker"
)

const (
	PromptShowBreakdown   = "Show match breakdown"
	PromptTrackJob        = "Track a job"
	PromptReportByCompany = "Report by company"
	PromptResultsToFile   = "Dump results to file"
	PromptExit            = "Exit"
	PromptBack            = "back"
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowBreakdown, PromptTrackJob, PromptReportByCompany, PromptResultsToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the job catalog against your profile and show ranked matches",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("query", "q", "", "only consider jobs matching this search text")
	matchCmd.Flags().IntP("top", "n", 0, "show only the best n matches. Default is all.")
	matchCmd.Flags().Int("min-score", 0, "drop jobs with an overall score below this value")
	matchCmd.Flags().BoolP("include-tracked", "f", false, "do not exclude jobs that are already on the board")
	matchCmd.Flags().BoolP("no-prompt", "y", false, "print the ranked matches and exit without the action prompt")

	viper.BindPFlag("search.text", matchCmd.Flags().Lookup("query"))
	viper.BindPFlag("search.top", matchCmd.Flags().Lookup("top"))
	viper.BindPFlag("match.minimum-fit-score", matchCmd.Flags().Lookup("min-score"))
}

// runMatch is the main command for the cli.
func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting "+app, zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	prof := loadProfileOrExit(logger, config)

	cat, err := catalog.Load(config.CatalogFile)
	if err != nil {
		logger.Fatal("loading the job catalog", zap.Error(err))
	}

	logger.Info("loaded the job catalog", zap.Int("count", cat.Len()))

	query := viper.GetString("search.text")
	jobs := cat.Search(query)

	logger.Info("searching the catalog",
		zap.String("query", query),
		zap.Int("count", jobs.Len()),
	)

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs matched the search"))
		return
	}

	trackerStore := tracker.NewFileStore(config.DataDir)

	filterCfg := &filtering.Config{
		MinimumFitScore: viper.GetInt("match.minimum-fit-score"),
		IncludeTracked:  cmd.Flag("include-tracked").Value.String() == "true",
	}
	if config.Match.Exclude != nil {
		filterCfg.Companies = config.Match.Exclude.Companies
	}

	deps := filtering.Deps{
		Tracker: trackerStore,
		Logger:  logger,
		Profile: prof,
	}

	steps := []filtering.Filter{
		filtering.NewTrackedHistory(),
		filtering.NewCompanies(),
		filtering.NewMinFit(),
	}

	left, scores, err := filtering.Run(ctx, filterCfg, deps, steps, jobs)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if left.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	ranked := matching.Rank(prof, left, scores)
	if top := viper.GetInt("search.top"); top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	printRanked(ranked)

	if cmd.Flag("no-prompt").Value.String() == "true" {
		return
	}

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(action, logger, prof, config, left, ranked, trackerStore); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleMatchAction(action string, logger *zap.Logger, prof *profile.Profile, config *Config, jobs *catalog.Jobs, ranked []matching.Ranked, store tracker.Store) error {
	switch action {
	case PromptShowBreakdown:
		return showBreakdown(prof, ranked)
	case PromptTrackJob:
		return trackFromRanked(logger, prof, config, ranked, store)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(jobs.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", jobs.Len()))
		return nil
	case PromptResultsToFile:
		filename, err := dumpRanked(ranked)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func selectRanked(label string, ranked []matching.Ranked) (*matching.Ranked, error) {
	items := make([]string, 0, len(ranked)+1)
	for _, r := range ranked {
		items = append(items, fmt.Sprintf("%s %s / %s / %d of 100",
			r.Job.ID, r.Job.Title, r.Job.Company, r.Score.Overall,
		))
	}

	jobPrompt := promptui.Select{
		Label: label,
		Items: append(items, PromptBack),
	}

	_, selected, err := jobPrompt.Run()
	if err != nil {
		return nil, err
	}
	if selected == PromptBack {
		return nil, nil
	}

	jobID := strings.Split(selected, " ")[0]
	for idx := range ranked {
		if ranked[idx].Job.ID == jobID {
			return &ranked[idx], nil
		}
	}
	return nil, fmt.Errorf("there is no such job id %s", jobID)
}

func showBreakdown(prof *profile.Profile, ranked []matching.Ranked) error {
	selected, err := selectRanked("Choose a job and press ENTER", ranked)
	if err != nil || selected == nil {
		return err
	}

	printBreakdown(prof, selected)
	return nil
}

func trackFromRanked(logger *zap.Logger, prof *profile.Profile, config *Config, ranked []matching.Ranked, store tracker.Store) error {
	selected, err := selectRanked("Choose a job to track and press ENTER", ranked)
	if err != nil || selected == nil {
		return err
	}

	analysis := tracker.NewAnalysis(prof.ID, selected.Job, selected.Score, matching.Explain(prof, selected.Job, selected.Score))
	if err := store.Save(analysis); err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}

	logger.Info("job tracked",
		zap.String("job_id", selected.Job.ID),
		zap.String("status", string(analysis.Status)),
	)

	awardTrackingProgress(logger, config, prof, store)
	return nil
}

// awardTrackingProgress grants tracking-related XP. Progress is cosmetic,
// so failures only warn.
func awardTrackingProgress(logger *zap.Logger, config *Config, prof *profile.Profile, store tracker.Store) {
	progressStore := progress.NewFileStore(config.DataDir)
	prog, err := progressStore.Load()
	if err != nil {
		logger.Warn("loading progress", zap.Error(err))
		return
	}

	earned := prog.Award(progress.EventFirstTrack)

	if tracked, err := store.List(prof.ID); err == nil && len(tracked) >= 3 {
		earned += prog.Award(progress.EventPipelineStarted)
	}

	if earned == 0 {
		return
	}

	if err := progressStore.Save(prog); err != nil {
		logger.Warn("saving progress", zap.Error(err))
		return
	}

	logger.Info("progress updated",
		zap.Int("earned_xp", earned),
		zap.Int("total_xp", prog.XP),
		zap.Strings("badges", prog.Badges),
	)
}

func loadProfileOrExit(logger *zap.Logger, config *Config) *profile.Profile {
	store := profile.NewFileStore(config.DataDir)

	prof, err := store.Load()
	if errors.Is(err, profile.ErrNoProfile) {
		logger.Fatal("no profile found",
			zap.String("hint", "run '"+app+" profile init' to create one"),
		)
	}
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	if err := prof.Validate(); err != nil {
		logger.Fatal("the stored profile is invalid",
			zap.Error(err),
			zap.String("hint", "run '"+app+" profile init' to rebuild it"),
		)
	}

	return prof
}

func printRanked(ranked []matching.Ranked) {
	fmt.Printf("\n%-4s %-8s %-32s %-22s %7s %6s %4s %4s %4s %4s\n",
		"#", "ID", "TITLE", "COMPANY", "OVERALL", "SKILL", "EXP", "LOC", "SAL", "CUL")
	for idx, r := range ranked {
		s := r.Score
		fmt.Printf("%-4d %-8s %-32s %-22s %7d %6d %4d %4d %4d %4d\n",
			idx+1, r.Job.ID, truncate(r.Job.Title, 32), truncate(r.Job.Company, 22),
			s.Overall, s.SkillsFit, s.ExperienceFit, s.LocationFit, s.SalaryFit, s.CultureFit)
	}
	fmt.Println()
}

func printBreakdown(prof *profile.Profile, r *matching.Ranked) {
	explanation := matching.Explain(prof, r.Job, r.Score)

	fmt.Printf("\n%s at %s (%s)\n\n", r.Job.Title, r.Job.Company, r.Job.ID)
	fmt.Printf("  Skills     %3d  %s\n", r.Score.SkillsFit, explanation.Skills)
	fmt.Printf("  Experience %3d  %s\n", r.Score.ExperienceFit, explanation.Experience)
	fmt.Printf("  Location   %3d  %s\n", r.Score.LocationFit, explanation.Location)
	fmt.Printf("  Salary     %3d  %s\n", r.Score.SalaryFit, explanation.Salary)
	fmt.Printf("  Culture    %3d  %s\n", r.Score.CultureFit, explanation.Culture)
	fmt.Printf("\n  %s\n\n", explanation.Summary)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func dumpRanked(ranked []matching.Ranked) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ranked); err != nil {
		return "", err
	}
	return file.Name(), nil
}
