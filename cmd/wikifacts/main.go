// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wikifacts CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/wikifacts/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in the root PersistentPreRunE and shared by the
// subcommands. Until then it is a no-op.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "wikifacts",
	Short: "Answer simple factual questions from Wikipedia infoboxes",
	Long: `wikifacts answers simple natural-language factual questions (a person's
birth date, a planet's polar radius, a country's population) by matching the
query against a pattern table, fetching the topic's Wikipedia page, and
extracting the requested field from its summary infobox.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log, err := buildLogger(verbose)
		if err != nil {
			return err
		}
		logger = log
		return nil
	},
}

// buildLogger constructs the zap logger: errors only by default,
// debug output with --verbose. Diagnostics go to stderr so answer
// lines on stdout stay clean.
func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wikifacts.yaml or ~/.config/wikifacts/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	// A .env file can pre-seed the WIKIFACTS_* environment.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wikifacts")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wikifacts"))
		}
	}

	viper.SetEnvPrefix("WIKIFACTS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, the config file, and environment overrides.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()

	viper.SetDefault("wiki.timeout", cfg.Wiki.Timeout)
	viper.SetDefault("wiki.user_agent", cfg.Wiki.UserAgent)
	viper.SetDefault("wiki.max_retries", cfg.Wiki.MaxRetries)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)

	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
