package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/detox/internal/osutil"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyBlockedWebsites  = "blocked_websites"
	keyWebsiteWhitelist = "website_whitelist"
	keyBlockedApps      = "blocked_apps"
	keyMusicType        = "focus_music.type"
	keyMusicLocalPath   = "focus_music.local_path"
	keyMusicURL         = "focus_music.url"
	keyMusicLoop        = "focus_music.loop"
	keyLockedMode       = "locked_mode"
	keyLimitEnabled     = "daily_time_limit.enabled"
	keyLimitMinutes     = "daily_time_limit.minutes"
	keyScheduleStart    = "schedule.start_time"
	keyScheduleEnd      = "schedule.end_time"
	keyHostsFile        = "settings.hosts_file"
	keyRedirectIP       = "settings.redirect_ip"
	keyEditor           = "settings.editor"
	keyCheckInterval    = "settings.check_interval"
	keyNotifications    = "settings.notifications"
	keyDarkTheme        = "display.dark_theme"
	keyTwentyFourHour   = "display.24hr_clock"
)

const (
	defaultLimitMinutes  = 60
	defaultCheckInterval = 10 * time.Second
	defaultRedirectIP    = "127.0.0.1"
)

// WithViperConfig returns an Option that loads configuration from the file
// at configPath. A missing file is created with the default values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := newViper(configPath)

		setDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfigAs(configPath); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	return v
}

// setDefaults configures Viper with the default settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keyBlockedWebsites, []string{
		"facebook.com",
		"instagram.com",
		"reddit.com",
		"twitter.com",
		"youtube.com",
	})
	v.SetDefault(keyWebsiteWhitelist, []string{})
	v.SetDefault(keyBlockedApps, []string{})
	v.SetDefault(keyMusicType, string(MusicNoisli))
	v.SetDefault(keyMusicLocalPath, "")
	v.SetDefault(keyMusicURL, DefaultNoisliURL)
	v.SetDefault(keyMusicLoop, true)
	v.SetDefault(keyLockedMode, false)
	v.SetDefault(keyLimitEnabled, false)
	v.SetDefault(keyLimitMinutes, defaultLimitMinutes)
	v.SetDefault(keyScheduleStart, "")
	v.SetDefault(keyScheduleEnd, "")
	v.SetDefault(keyHostsFile, osutil.HostsFile())
	v.SetDefault(keyRedirectIP, defaultRedirectIP)
	v.SetDefault(keyEditor, "")
	v.SetDefault(keyCheckInterval, defaultCheckInterval.String())
	v.SetDefault(keyNotifications, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, true)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}

// writeViperConfig saves every setting in c to configPath.
func writeViperConfig(configPath string, c *Config) error {
	v := newViper(configPath)

	v.Set(keyBlockedWebsites, nonNil(c.BlockedWebsites))
	v.Set(keyWebsiteWhitelist, nonNil(c.WebsiteWhitelist))
	v.Set(keyBlockedApps, nonNil(c.BlockedApps))
	v.Set(keyMusicType, string(c.FocusMusic.Mode))
	v.Set(keyMusicLocalPath, c.FocusMusic.LocalPath)
	v.Set(keyMusicURL, c.FocusMusic.URL)
	v.Set(keyMusicLoop, c.FocusMusic.Loop)
	v.Set(keyLockedMode, c.LockedMode)
	v.Set(keyLimitEnabled, c.DailyTimeLimit.Enabled)
	v.Set(keyLimitMinutes, c.DailyTimeLimit.Minutes)
	v.Set(keyScheduleStart, c.Schedule.Start)
	v.Set(keyScheduleEnd, c.Schedule.End)
	v.Set(keyHostsFile, c.Settings.HostsFile)
	v.Set(keyRedirectIP, c.Settings.RedirectIP)
	v.Set(keyEditor, c.Settings.Editor)
	v.Set(keyCheckInterval, c.Settings.CheckInterval.String())
	v.Set(keyNotifications, c.Settings.Notifications)
	v.Set(keyDarkTheme, c.Display.DarkTheme)
	v.Set(keyTwentyFourHour, c.Display.TwentyFourHour)

	if err := v.WriteConfigAs(configPath); err != nil {
		return errWriteConfig.Wrap(err)
	}

	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
