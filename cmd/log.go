package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/wellness-logger/internal/journal"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

var (
	logAt       string
	logDuration string
	logDosage   string
	logComment  string
)

var logCmd = &cobra.Command{
	Use:   "log <exercise|svt|medication>",
	Short: "Quick-log an event now",
	Long: `Records an event with the current time. SVT episodes get a preset
duration and medications a preset dosage, both configurable under presets.`,
	Example: `  wlog log exercise
  wlog log svt --duration "3 minutes" --comment "after coffee"
  wlog log med --at "2024-03-15 07:30"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"exercise", "svt", "medication"},
	RunE:      runLog,
}

func init() {
	logCmd.Flags().StringVar(&logAt, "at", "", "When it happened (YYYY-MM-DD HH:MM, HH:MM or RFC 3339)")
	logCmd.Flags().StringVar(&logDuration, "duration", "", "Episode duration (SVT only)")
	logCmd.Flags().StringVar(&logDosage, "dosage", "", "Dosage taken (medication only)")
	logCmd.Flags().StringVar(&logComment, "comment", "", "Optional comment")
}

func runLog(cmd *cobra.Command, args []string) error {
	category, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}

	j, err := openJournal(cmd)
	if err != nil {
		return err
	}

	var opts journal.LogOptions
	if cmd.Flags().Changed("at") {
		at, err := parseWhen(logAt, j.Now())
		if err != nil {
			return err
		}
		opts.At = &at
	}
	if cmd.Flags().Changed("duration") {
		opts.Duration = &logDuration
	}
	if cmd.Flags().Changed("dosage") {
		opts.Dosage = &logDosage
	}
	if cmd.Flags().Changed("comment") {
		opts.Comments = &logComment
	}

	entry, err := j.QuickLog(cmd.Context(), category, opts)
	if err != nil {
		return err
	}

	loc := j.Now().Location()
	success(cmd.OutOrStdout(), "%s logged at %s", entry.Type, entry.Timestamp.In(loc).Format(listTimeLayout))
	printEntry(cmd.OutOrStdout(), entry, loc)
	return nil
}
