// Package config reads the runtime settings from the environment and holds
// the retry profiles for the external collaborators.
package config

import (
	"os"

	"github.com/rs/zerolog/log"
)

// App is the environment-driven configuration for one export run. Sheets
// settings are only required when exporting to Google Sheets.
type App struct {
	SpreadsheetID   string
	CredentialsFile string
	ShopMarker      string
	NotifyEnabled   bool
	NotifyURL       string
	NotifyTopic     string
}

// FromEnv reads the app configuration. Nothing is validated here; callers
// require what their export target needs.
func FromEnv() App {
	return App{
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: GetEnvWithDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		ShopMarker:      os.Getenv("SHOP_MARKER"),
		NotifyEnabled:   GetEnvWithDefault("NTFY_ENABLED", "false") == "true",
		NotifyURL:       GetEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
		NotifyTopic:     GetEnvWithDefault("NTFY_TOPIC", "order-sheets"),
	}
}

// GetRequiredEnv fetches a required environment variable or exits if not set.
func GetRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Msgf("%s environment variable is required", key)
	}
	return value
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
