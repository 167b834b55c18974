package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wellness-logger/internal/model"
)

var (
	editDate     string
	editTime     string
	editDuration string
	editDosage   string
	editComment  string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an entry's time or details",
	Long: `Changes the date, time or details of an existing entry. Only the flags
given are changed; pass an empty value (--comment "") to clear a field.
Duration applies to SVT episodes and dosage to medications.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editTime, "time", "", "New time of day (HH:MM)")
	editCmd.Flags().StringVar(&editDuration, "duration", "", "New duration (SVT only)")
	editCmd.Flags().StringVar(&editDosage, "dosage", "", "New dosage (medication only)")
	editCmd.Flags().StringVar(&editComment, "comment", "", "New comment")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	loc := j.Now().Location()

	entry, found, err := j.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !found {
		notice(out, "No entry with id %s; nothing changed.", id)
		return nil
	}

	var patch model.Patch
	flags := cmd.Flags()
	if flags.Changed("date") || flags.Changed("time") {
		ts, err := combine(entry.Timestamp.In(loc), editDate, editTime)
		if err != nil {
			return err
		}
		patch.Timestamp = &ts
	}
	if flags.Changed("duration") {
		patch.Duration = &editDuration
	}
	if flags.Changed("dosage") {
		patch.Dosage = &editDosage
	}
	if flags.Changed("comment") {
		patch.Comments = &editComment
	}
	if patch.Empty() {
		return fmt.Errorf("nothing to change: pass at least one of --date, --time, --duration, --dosage, --comment")
	}

	ok, err := j.Edit(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	if !ok {
		notice(out, "No entry with id %s; nothing changed.", id)
		return nil
	}

	updated, _, err := j.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	success(out, "Entry updated successfully!")
	printEntry(out, updated, loc)
	return nil
}
