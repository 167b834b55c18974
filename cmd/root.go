package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Tiliavir/wellness-logger/internal/config"
	"github.com/Tiliavir/wellness-logger/internal/journal"
	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/storage"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

var (
	configPath string

	cfg    *config.Config
	logger *log.LoggerServiceImpl
	repo   storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "wlog",
	Short: "A personal wellness event logger",
	Long: `wlog records exercise sessions, SVT episodes and medication doses,
filters and summarises them, and exports them for a clinician.
Data lives in ~/.wlog/ unless configured otherwise.`,
	SilenceErrors:      true,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = teardown(rootCmd, nil)
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is ~/.wlog/config.yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disables colored command output")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	// A failed command skips the post-run hook and may leave these open.
	if err := teardown(cmd, args); err != nil {
		return err
	}

	var err error
	if cfg, err = config.Load(viper.GetViper(), configPath); err != nil {
		return err
	}
	if cfg.Log.NoColor {
		color.NoColor = true
	}
	logger = log.NewLoggerService("wlog", cfg.Log, os.Stderr)
	logger.Debug("config loaded, storage backend %s at %s", cfg.Storage.Backend, cfg.Storage.Path)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	var err error
	if repo != nil {
		err = repo.Close()
		repo = nil
	}
	if logger != nil {
		logger.Close()
		logger = nil
	}
	return err
}

// openJournal opens the configured repository on first use.
func openJournal(cmd *cobra.Command) (*journal.Journal, error) {
	if repo == nil {
		var err error
		if repo, err = storage.Open(cmd.Context(), cfg.Storage, logger); err != nil {
			return nil, err
		}
	}
	return journal.New(repo, logger,
		journal.WithClock(nowFunc),
		journal.WithPresets(journal.PresetsFrom(cfg.Presets)),
	), nil
}
