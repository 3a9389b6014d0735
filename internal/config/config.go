// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"time"
)

type (
	// Config holds all configuration settings.
	Config struct {
		BlockedWebsites  []string       `mapstructure:"blocked_websites"`
		WebsiteWhitelist []string       `mapstructure:"website_whitelist"`
		BlockedApps      []string       `mapstructure:"blocked_apps"`
		FocusMusic       Music          `mapstructure:"focus_music"`
		DailyTimeLimit   DailyLimit     `mapstructure:"daily_time_limit"`
		Schedule         ScheduleConfig `mapstructure:"schedule"`
		Settings         SettingsConfig `mapstructure:"settings"`
		Display          DisplayConfig  `mapstructure:"display"`
		LockedMode       bool           `mapstructure:"locked_mode"`
	}

	// Music holds the focus music settings.
	Music struct {
		Mode      MusicMode `mapstructure:"type"`
		LocalPath string    `mapstructure:"local_path"`
		URL       string    `mapstructure:"url"`
		Loop      bool      `mapstructure:"loop"`
	}

	// DailyLimit caps the number of session minutes in a day.
	DailyLimit struct {
		Enabled bool `mapstructure:"enabled"`
		Minutes uint `mapstructure:"minutes"`
	}

	// ScheduleConfig holds the daily start and end time of a session.
	ScheduleConfig struct {
		Start string `mapstructure:"start_time"`
		End   string `mapstructure:"end_time"`
	}

	// SettingsConfig holds system-related settings.
	SettingsConfig struct {
		HostsFile     string        `mapstructure:"hosts_file"`
		RedirectIP    string        `mapstructure:"redirect_ip"`
		Editor        string        `mapstructure:"editor"`
		CheckInterval time.Duration `mapstructure:"check_interval"`
		Notifications bool          `mapstructure:"notifications"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error

	// MusicMode selects how focus music is played.
	MusicMode string
)

const Version = "v0.3.0"

const (
	MusicNoisli MusicMode = "noisli"
	MusicLocal  MusicMode = "local"
	MusicOff    MusicMode = "off"
)

const DefaultNoisliURL = "https://www.noisli.com/"

// HasSchedule reports whether both ends of the daily schedule are set.
func (c *Config) HasSchedule() bool {
	return c.Schedule.Start != "" && c.Schedule.End != ""
}

// New creates a new Config and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
