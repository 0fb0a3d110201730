package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/killallgit/vad-annotator/pkg/config"
)

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vad-annotator",
		Short: "VAD Annotator rating service and client",
		Long: `VAD Annotator - valence, arousal and dominance annotation of audio clips

The rating service lists clips, serves their audio, tracks each annotator's
progress and stores submitted ratings. The annotate client walks an
annotator through the clip queue in the terminal.

Features:
  • Clip listing and audio streaming with range request support
  • Per-annotator progress that resumes at the first unrated clip
  • Rating storage in SQLite with CSV export and import
  • Terminal annotation client with local playback through ffplay`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	// Add persistent flags for logging and configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
	rootCmd.PersistentFlags().String("config", config.DefaultConfigFile, "config file")

	rootCmd.AddCommand(
		newServeCmd(),
		newAnnotateCmd(),
		newMigrateCmd(),
		newExportCmd(),
		newImportCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// setupLogging configures the standard logrus logger from the persistent flags
func setupLogging(cmd *cobra.Command) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())
	if jsonLogs {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// loadConfig loads the configuration when a command needs it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigFile
	}

	if err := config.InitFile(path); err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
