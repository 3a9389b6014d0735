package config

import (
	"net"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ayoisaiah/detox/internal/timeutil"
)

var (
	// Daily limit constraints in minutes.
	minLimitMinutes uint = 1
	maxLimitMinutes uint = 24 * 60

	// Tick granularity constraints.
	minCheckInterval = 1 * time.Second
	maxCheckInterval = 1 * time.Minute

	validMusicExts = []string{".mp3", ".ogg", ".flac", ".wav"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateLimit(); err != nil {
		return err
	}

	if _, _, err := c.ParseSchedule(); err != nil {
		return err
	}

	if err := c.validateMusic(); err != nil {
		return err
	}

	return c.validateSettings()
}

func (c *Config) validateLimit() error {
	if !c.DailyTimeLimit.Enabled {
		return nil
	}

	if c.DailyTimeLimit.Minutes < minLimitMinutes ||
		c.DailyTimeLimit.Minutes > maxLimitMinutes {
		return errInvalidLimit.Fmt(minLimitMinutes, maxLimitMinutes)
	}

	return nil
}

// ParseSchedule returns the parsed schedule times. Both are nil when no
// schedule is configured.
func (c *Config) ParseSchedule() (start, end *timeutil.TimeOfDay, err error) {
	if c.Schedule.Start == "" && c.Schedule.End == "" {
		return nil, nil, nil
	}

	if c.Schedule.Start == "" || c.Schedule.End == "" {
		return nil, nil, errIncompleteSchedule
	}

	s, err := timeutil.ParseTimeOfDay(c.Schedule.Start)
	if err != nil {
		return nil, nil, errInvalidScheduleTime.Fmt("start", c.Schedule.Start)
	}

	e, err := timeutil.ParseTimeOfDay(c.Schedule.End)
	if err != nil {
		return nil, nil, errInvalidScheduleTime.Fmt("end", c.Schedule.End)
	}

	if s == e {
		return nil, nil, errSameScheduleTimes
	}

	return &s, &e, nil
}

func (c *Config) validateMusic() error {
	switch c.FocusMusic.Mode {
	case MusicNoisli, MusicOff:
		return nil
	case MusicLocal:
	default:
		return errUnknownMusicType.Fmt(c.FocusMusic.Mode)
	}

	if strings.TrimSpace(c.FocusMusic.LocalPath) == "" {
		return errMissingMusicPath
	}

	ext := strings.ToLower(filepath.Ext(c.FocusMusic.LocalPath))
	if !slices.Contains(validMusicExts, ext) {
		return errInvalidSoundFormat.Fmt(c.FocusMusic.LocalPath)
	}

	return nil
}

func (c *Config) validateSettings() error {
	if c.Settings.CheckInterval < minCheckInterval ||
		c.Settings.CheckInterval > maxCheckInterval {
		return errInvalidInterval.Fmt(minCheckInterval, maxCheckInterval)
	}

	if net.ParseIP(c.Settings.RedirectIP) == nil {
		return errInvalidRedirectIP.Fmt(c.Settings.RedirectIP)
	}

	return nil
}
