package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wellness-logger/internal/filter"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

var (
	listFilters filterFlags
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Example: `  wlog list --range last7
  wlog list --type svt --search dizzy
  wlog list --from 2024-01-01 --to 2024-01-31 --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listFilters.register(listCmd.Flags())
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print matching entries as a JSON array")
}

func runList(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	now := j.Now()

	spec, err := listFilters.spec(now.Location())
	if err != nil {
		return err
	}

	entries, err := j.Entries(cmd.Context())
	if err != nil {
		return err
	}
	filtered := newestFirst(filter.Apply(entries, spec, now))

	out := cmd.OutOrStdout()
	if listJSON {
		data, err := json.MarshalIndent(filtered, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(filtered) == 0 {
		fmt.Fprintln(out, filter.EmptyMessage(spec.Active()))
	} else {
		printEntries(out, filtered, now.Location())
	}

	status := filter.Status(len(filtered), len(entries), spec.Active())
	if status.Kind != filter.Hidden {
		fmt.Fprintln(out)
		notice(out, "%s", status.Message)
		if status.ShowFilteredExport {
			fmt.Fprintln(out, "Export just these with: wlog export --format csv and the same filter flags")
		}
	}
	return nil
}

// newestFirst sorts filtered in place, most recent first.
func newestFirst(entries []model.Entry) []model.Entry {
	sort.SliceStable(entries, func(i, k int) bool {
		return entries[i].Timestamp.After(entries[k].Timestamp)
	})
	return entries
}
