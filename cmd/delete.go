package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	ok, err := j.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		notice(cmd.OutOrStdout(), "No entry with id %s; nothing deleted.", args[0])
		return nil
	}
	success(cmd.OutOrStdout(), "Entry deleted.")
	return nil
}
