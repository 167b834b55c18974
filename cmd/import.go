package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the log with a JSON backup",
	Long: `Replaces every stored entry with the entries of a JSON file, either a
bare array or a backup written by "wlog export --format json". Use - to read
from stdin. Nothing is changed if any entry is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	n, err := j.Import(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("error importing data: %w", err)
	}
	success(cmd.OutOrStdout(), "Successfully imported %d entries!", n)
	return nil
}
