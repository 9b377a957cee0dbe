package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"careermatch/internal/profile"
	"careermatch/internal/progress"
	"careermatch/internal/tracker"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create, inspect and manage your profile",
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Build a profile through the interactive wizard",
	Run: func(cmd *cobra.Command, _ []string) {
		runProfileInit(cmd)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile",
	Run: func(_ *cobra.Command, _ []string) {
		runProfileShow()
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <cv-file>",
	Short: "Extract skills from a plain-text CV file into the profile",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runProfileImport(args[0])
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the profile, the board and all progress",
	Run: func(cmd *cobra.Command, _ []string) {
		runProfileClear(cmd)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileInitCmd, profileShowCmd, profileImportCmd, profileClearCmd)

	profileInitCmd.Flags().Bool("force", false, "replace an existing profile without asking")
	profileClearCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

func runProfileInit(cmd *cobra.Command) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := profile.NewFileStore(config.DataDir)

	if _, err := store.Load(); err == nil && cmd.Flag("force").Value.String() != "true" {
		confirm := promptui.Prompt{
			Label:     "A profile already exists. Replace it",
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			logger.Info("exiting", zap.String("reason", "kept the existing profile"))
			return
		}
	}

	prof, err := profile.RunWizard()
	if err != nil {
		logger.Fatal("wizard failed", zap.Error(err))
	}

	if err := store.Save(prof); err != nil {
		logger.Fatal("saving the profile", zap.Error(err))
	}

	logger.Info("profile created",
		zap.String("profile_id", prof.ID),
		zap.String("name", prof.Name),
		zap.Int("skills", len(prof.Skills)),
	)

	awardProfileProgress(logger, config, progress.EventProfileCreated, progress.EventWizardComplete)
}

func runProfileShow() {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	prof := loadProfileOrExit(logger, config)

	pretty, _ := json.MarshalIndent(prof, "", "  ")
	fmt.Println(string(pretty))

	progressStore := progress.NewFileStore(config.DataDir)
	if prog, err := progressStore.Load(); err == nil && prog.XP > 0 {
		fmt.Printf("\nXP: %d  Badges: %v\n", prog.XP, prog.Badges)
	}
}

func runProfileImport(cvPath string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := profile.NewFileStore(config.DataDir)
	prof := loadProfileOrExit(logger, config)

	added, err := profile.ImportCV(prof, cvPath)
	if err != nil {
		logger.Fatal("importing the cv", zap.Error(err))
	}

	if len(added) == 0 {
		logger.Info("no new skills found in the cv", zap.String("file", cvPath))
		return
	}

	if err := store.Save(prof); err != nil {
		logger.Fatal("saving the profile", zap.Error(err))
	}

	logger.Info("skills imported from cv",
		zap.String("file", cvPath),
		zap.Strings("added_skills", added),
	)

	awardProfileProgress(logger, config, progress.EventCVImported)
}

func runProfileClear(cmd *cobra.Command) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if cmd.Flag("yes").Value.String() != "true" {
		confirm := promptui.Prompt{
			Label:     "Delete the profile, tracked jobs and progress",
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			logger.Info("exiting", zap.String("reason", "clear not confirmed"))
			return
		}
	}

	if err := errors.Join(
		profile.NewFileStore(config.DataDir).Clear(),
		tracker.NewFileStore(config.DataDir).Clear(),
		progress.NewFileStore(config.DataDir).Clear(),
	); err != nil {
		logger.Fatal("clearing data", zap.Error(err))
	}

	logger.Info("all local data cleared", zap.String("data_dir", config.DataDir))
}

// awardProfileProgress grants profile-building XP. Progress is cosmetic, so
// failures only warn.
func awardProfileProgress(logger *zap.Logger, config *Config, events ...string) {
	store := progress.NewFileStore(config.DataDir)

	prog, err := store.Load()
	if err != nil {
		logger.Warn("loading progress", zap.Error(err))
		return
	}

	earned := 0
	for _, event := range events {
		earned += prog.Award(event)
	}
	if earned == 0 {
		return
	}

	if err := store.Save(prog); err != nil {
		logger.Warn("saving progress", zap.Error(err))
		return
	}

	logger.Info("progress updated",
		zap.Int("earned_xp", earned),
		zap.Int("total_xp", prog.XP),
		zap.Strings("badges", prog.Badges),
	)
}
