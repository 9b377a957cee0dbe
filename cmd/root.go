package cmd

import (
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"careermatch/internal/logger"
)

const (
	app = "careermatch"
)

type Config struct {
	DataDir     string        `mapstructure:"data-dir"`
	CatalogFile string        `mapstructure:"catalog-file"`
	Search      *SearchConfig `mapstructure:"search"`
	Match       *MatchConfig  `mapstructure:"match"`
}

type SearchConfig struct {
	Text string `mapstructure:"text"`
	Top  int    `mapstructure:"top"`
}

type MatchConfig struct {
	MinimumFitScore int `mapstructure:"minimum-fit-score"`
	Exclude         *struct {
		Companies []string
	}
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "careermatch is a local job-matching cli: build a profile, score the catalog against it and track your applications",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("data-dir", "CAREERMATCH_DATA_DIR"); err != nil {
		log.Fatalf("binding CAREERMATCH_DATA_DIR environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is careermatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional. Everything has a default, but a present
	// and broken file is a hard error.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Match == nil {
		config.Match = &MatchConfig{}
	}
	if config.DataDir == "" {
		config.DataDir = defaultDataDir()
	}

	return config, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + app
	}
	return filepath.Join(home, "."+app)
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}
