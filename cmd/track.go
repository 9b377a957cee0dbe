package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"careermatch/internal/catalog"
	"careermatch/internal/matching"
	"careermatch/internal/tracker"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Manage the application board",
}

var trackAddCmd = &cobra.Command{
	Use:   "add <job-id>",
	Short: "Save a job to the board with a fresh match analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runTrackAdd(args[0])
	},
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked jobs, optionally grouped as a kanban board",
	Run: func(cmd *cobra.Command, _ []string) {
		runTrackList(cmd.Flag("board").Value.String() == "true")
	},
}

var trackMoveCmd = &cobra.Command{
	Use:   "move <job-id> <status>",
	Short: "Move a tracked job to another status",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		runTrackMove(args[0], args[1])
	},
}

var trackNoteCmd = &cobra.Command{
	Use:   "note <job-id> <text>...",
	Short: "Append a note to a tracked job",
	Args:  cobra.MinimumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		runTrackNote(args[0], strings.Join(args[1:], " "))
	},
}

var trackRmCmd = &cobra.Command{
	Use:   "rm <job-id>",
	Short: "Remove a job from the board",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runTrackRm(args[0])
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackAddCmd, trackListCmd, trackMoveCmd, trackNoteCmd, trackRmCmd)

	trackListCmd.Flags().BoolP("board", "b", false, "group by status like a kanban board")
}

func runTrackAdd(jobID string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	prof := loadProfileOrExit(logger, config)

	cat, err := catalog.Load(config.CatalogFile)
	if err != nil {
		logger.Fatal("loading the job catalog", zap.Error(err))
	}

	job := cat.FindByID(jobID)
	if job == nil {
		logger.Fatal("job not found in the catalog", zap.String("job_id", jobID))
	}

	store := tracker.NewFileStore(config.DataDir)

	// Saving again replaces the prior snapshot for this job.
	score := matching.Score(prof, job)
	analysis := tracker.NewAnalysis(prof.ID, job, score, matching.Explain(prof, job, score))
	if err := store.Save(analysis); err != nil {
		logger.Fatal("saving analysis", zap.Error(err))
	}

	logger.Info("job tracked",
		zap.String("job_id", job.ID),
		zap.String("title", job.Title),
		zap.Int("overall_score", score.Overall),
		zap.String("status", string(analysis.Status)),
	)

	awardTrackingProgress(logger, config, prof, store)
}

func runTrackList(asBoard bool) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	prof := loadProfileOrExit(logger, config)

	store := tracker.NewFileStore(config.DataDir)
	analyses, err := store.List(prof.ID)
	if err != nil {
		logger.Fatal("listing tracked jobs", zap.Error(err))
	}

	if len(analyses) == 0 {
		logger.Info("the board is empty",
			zap.String("hint", "run '"+app+" track add <job-id>' or use the match prompt"),
		)
		return
	}

	if asBoard {
		printBoard(analyses)
		return
	}

	sort.Slice(analyses, func(i, k int) bool {
		return analyses[i].UpdatedAt.After(analyses[k].UpdatedAt)
	})

	fmt.Printf("\n%-8s %-32s %-22s %-13s %7s  %s\n", "ID", "TITLE", "COMPANY", "STATUS", "OVERALL", "UPDATED")
	for _, a := range analyses {
		fmt.Printf("%-8s %-32s %-22s %-13s %7d  %s\n",
			a.JobID, truncate(a.Job.Title, 32), truncate(a.Job.Company, 22),
			a.Status, a.Score.Overall, a.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

func printBoard(analyses []*tracker.JobAnalysis) {
	board := tracker.Board(analyses)

	fmt.Println()
	for _, status := range tracker.Statuses() {
		column := board[status]
		fmt.Printf("%s (%d)\n", strings.ToUpper(string(status)), len(column))
		for _, a := range column {
			fmt.Printf("  %-8s %s at %s (%d of 100)\n", a.JobID, a.Job.Title, a.Job.Company, a.Score.Overall)
			if a.Notes != "" {
				fmt.Printf("           note: %s\n", strings.ReplaceAll(a.Notes, "\n", "; "))
			}
		}
		fmt.Println()
	}
}

func runTrackMove(jobID, rawStatus string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	status, err := tracker.ParseStatus(rawStatus)
	if err != nil {
		logger.Fatal("invalid status", zap.Error(err))
	}

	prof := loadProfileOrExit(logger, config)
	store := tracker.NewFileStore(config.DataDir)

	analysis := getAnalysisOrExit(logger, store, prof.ID, jobID)

	previous := analysis.Status
	analysis.SetStatus(status)
	if err := store.Save(analysis); err != nil {
		logger.Fatal("saving analysis", zap.Error(err))
	}

	logger.Info("status updated",
		zap.String("job_id", jobID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
}

func runTrackNote(jobID, note string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	prof := loadProfileOrExit(logger, config)
	store := tracker.NewFileStore(config.DataDir)

	analysis := getAnalysisOrExit(logger, store, prof.ID, jobID)

	analysis.AddNote(note)
	if err := store.Save(analysis); err != nil {
		logger.Fatal("saving analysis", zap.Error(err))
	}

	logger.Info("note added", zap.String("job_id", jobID))
}

func runTrackRm(jobID string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	prof := loadProfileOrExit(logger, config)
	store := tracker.NewFileStore(config.DataDir)

	if err := store.Delete(prof.ID, jobID); err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			logger.Fatal("job is not on the board", zap.String("job_id", jobID))
		}
		logger.Fatal("removing analysis", zap.Error(err))
	}

	logger.Info("job removed from the board", zap.String("job_id", jobID))
}

func getAnalysisOrExit(logger *zap.Logger, store tracker.Store, profileID, jobID string) *tracker.JobAnalysis {
	analysis, err := store.Get(profileID, jobID)
	if errors.Is(err, tracker.ErrNotFound) {
		logger.Fatal("job is not on the board",
			zap.String("job_id", jobID),
			zap.String("hint", "run '"+app+" track add "+jobID+"' first"),
		)
	}
	if err != nil {
		logger.Fatal("loading analysis", zap.Error(err))
	}
	return analysis
}
