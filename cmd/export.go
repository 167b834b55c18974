package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wellness-logger/internal/export"
	"github.com/Tiliavir/wellness-logger/internal/filter"
)

var (
	exportFormat  string
	exportOutput  string
	exportFilters filterFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as a CSV table or a JSON backup",
	Long: `Writes a CSV table (oldest first, for sharing with a clinician) or a
JSON backup of the whole log that "wlog import" can restore.

Filter flags narrow a CSV export. With --output pointing at a directory the
file is named after the exported date range or the active filter.`,
	Example: `  wlog export > log.csv
  wlog export --type svt --range last30 --output ~/Documents
  wlog export --format json --output backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File or directory to write to (default stdout)")
	exportFilters.register(exportCmd.Flags())
}

func runExport(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	now := j.Now()

	spec, err := exportFilters.spec(now.Location())
	if err != nil {
		return err
	}

	var (
		data []byte
		name string
	)
	switch exportFormat {
	case "json":
		if spec.Active() {
			return errors.New("filters only apply to csv exports; the json backup always holds every entry")
		}
		env, err := j.Export(cmd.Context())
		if err != nil {
			return err
		}
		if data, err = export.MarshalEnvelope(env); err != nil {
			return err
		}
		data = append(data, '\n')
		name = export.EnvelopeFileName(now)
	case "csv":
		entries, err := j.Entries(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return errors.New("no data to export; log some entries first")
		}
		if spec.Active() {
			entries = filter.Apply(entries, spec, now)
			if len(entries) == 0 {
				return errors.New("no filtered data to export; adjust your filters")
			}
			name = export.FilteredTableFileName(spec, now)
		} else if name, err = export.TableFileName(entries); err != nil {
			return err
		}
		data = []byte(export.Table(entries, now.Location()))
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
	}

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := exportOutput
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, name)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	logger.Info("wrote %d bytes to %s", len(data), path)
	success(cmd.ErrOrStderr(), "Exported to %s", path)
	return nil
}
