package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# proptrack configuration

[storage]
# Path to the local database file. Defaults to proptrack.db next to this
# file when left empty.
# path = "/home/trader/.config/proptrack/proptrack.db"

[sync]
# Remote sync is optional. Point endpoint at a proptrack-proxy instance
# and set the matching bearer token to enable it.
# endpoint = "https://sync.example.com"
# token = "change-me"
# Seconds to wait after a mutation before pushing
debounce_seconds = 2
# Request timeout in seconds
timeout_seconds = 15

[logging]
# Log level: debug, info, warn, error
level = "info"
# Also log to the terminal
console = false
# Log to a rotating file under the config directory
file = true

[ui]
# Enable colored output
color_enabled = true
# Date format for display
date_format = "2006-01-02"
`

// writeTemplate creates a commented config template so a first run leaves
// something editable behind. An existing file is never overwritten.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
