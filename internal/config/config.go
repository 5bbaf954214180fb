// Package config loads the amadeus configuration: a JSON config file under
// ~/.amadeus plus an optional YAML persona file for identity/behavior tuning.
package config

import (
	"os"
	"path/filepath"
)

// Config is the full runtime configuration.
type Config struct {
	Keys    Keys          `json:"keys"`
	Agent   AgentSettings `json:"agent"`
	Alerts  Thresholds    `json:"alerts"`
	Gateway Gateway       `json:"gateway"`
}

// Keys holds external API credentials. The Gemini key is required at startup;
// the rest degrade the matching tools to a friendly "not configured" message.
type Keys struct {
	GeminiAPIKey  string `json:"gemini_api_key"`
	WeatherAPIKey string `json:"weather_api_key"`
	NewsAPIKey    string `json:"news_api_key"`
}

// AgentSettings tunes the dispatcher.
type AgentSettings struct {
	Model            string  `json:"model"`
	MaxTokens        int     `json:"maxTokens"`
	Temperature      float64 `json:"temperature"`
	MemoryWindow     int     `json:"memoryWindow"`     // messages of history fed to the LLM
	SpokenLimit      int     `json:"spokenLimit"`      // max characters of a spoken reply
	ConfirmTTL       int     `json:"confirmTTL"`       // seconds a pending confirmation stays valid
	ToolTimeout      int     `json:"toolTimeout"`      // seconds, default per-tool execution bound
	DefaultLocation  string  `json:"defaultLocation"`  // weather fallback
	Timezone         string  `json:"timezone"`         // IANA name for time parsing
	DailyBriefCron   string  `json:"dailyBriefCron"`   // cron expression, empty disables
	ReminderInterval int     `json:"reminderInterval"` // seconds between due-reminder scans
}

// Thresholds are the alert levels for check_system_alerts, in percent.
type Thresholds struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
	Disk   float64 `json:"disk"`
}

type Gateway struct {
	Port int `json:"port"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Agent: AgentSettings{
			Model:            "gemini-2.0-flash",
			MaxTokens:        2048,
			Temperature:      0.7,
			MemoryWindow:     20,
			SpokenLimit:      800,
			ConfirmTTL:       60,
			ToolTimeout:      10,
			DefaultLocation:  "India",
			Timezone:         "Asia/Kolkata",
			DailyBriefCron:   "0 8 * * *",
			ReminderInterval: 30,
		},
		Alerts: Thresholds{CPU: 90, Memory: 90, Disk: 95},
		Gateway: Gateway{
			Port: 18790,
		},
	}
}

// ConfigPath returns the default configuration file path: ~/.amadeus/config.json.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// DataDir returns the amadeus data directory: ~/.amadeus.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".amadeus"
	}
	return filepath.Join(home, ".amadeus")
}
