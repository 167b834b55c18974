package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# wlog configuration - ~/.wlog/config.yaml
#
# All settings are optional; the built-in defaults shown below work out of
# the box. Any key can be overridden from the environment with the WLOG_
# prefix, e.g. WLOG_STORAGE_BACKEND=sqlite or WLOG_LOG_LEVEL=debug.

storage:
  # Where entries are kept.
  #   json   - a single human-readable entries.json file (default)
  #   diskv  - a key-value store holding the whole log under one key
  #   sqlite - a wellness.db SQLite database, one row per entry
  backend: json

  # Data directory used by every backend. ~ is expanded.
  path: ~/.wlog/data

log:
  # debug, info, warn or error. Logs go to stderr, never to command output.
  level: warn
  time_format: "2006-01-02 15:04:05"
  # Optional log file, rotated by size. Leave empty to log to stderr only.
  file: ""
  no_color: false
  # Emit one JSON object per line instead of text.
  json: false
  rotation:
    max_size: 16     # megabytes
    max_backups: 3
    max_age: 30      # days
    compress: false

presets:
  # Details pre-filled by "wlog log svt" and "wlog log medication".
  # Can be overridden per entry with --duration / --dosage.
  svt_duration: 1 minute
  medication_dosage: 1/2 tablet
`

// WriteTemplate creates the config directory and writes the annotated
// default config template.
func WriteTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Generate renders cfg as plain YAML, without annotations.
func Generate(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}
