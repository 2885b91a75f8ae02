package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Pricewatch Configuration

[server]
# HTTP listen port for /health and /trigger-alerts
port = 8080
# Shared secret expected in the x-trigger-token request header
trigger_token = ""

[watch]
# Comma-separated symbols evaluated by default
watchlist = "AAPL,MSFT,TSLA"
# Per-symbol thresholds, e.g. "AAPL:below=170,above=200;TSLA:below=180"
rules = ""
# Absolute percent-change alert threshold
pct_threshold = 10.0
# Per-condition notification cooldown in minutes
cooldown_minutes = 30
# Scheduled run interval in minutes; 0 disables the scheduler
interval_minutes = 0

[notify]
# Webhook URL alert messages are posted to
webhook_url = ""

[alpaca]
# Market data API credentials; ALPACA_API_KEY / ALPACA_API_SECRET override
api_key = ""
api_secret = ""

[database]
# SQLite state file path; empty uses the default location
path = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Also write logs to a rotating file
file = false
path = ""
`

// WriteTemplate writes a commented config.toml skeleton into configDir. It
// refuses to overwrite an existing config file.
func WriteTemplate(configDir string) (string, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	// 0600: the file holds the trigger token and API credentials.
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return "", fmt.Errorf("writing config template: %w", err)
	}

	return path, nil
}
