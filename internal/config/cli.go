package config

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	HostsFile     string
	Music         string
	CheckInterval time.Duration
	DisableNotify bool
}

// CLIOptionsFrom reads the global flags from ctx.
func CLIOptionsFrom(ctx *cli.Context) CLIOptions {
	return CLIOptions{
		HostsFile:     ctx.String("hosts-file"),
		Music:         ctx.String("music"),
		CheckInterval: ctx.Duration("interval"),
		DisableNotify: ctx.Bool("disable-notification"),
	}
}

// WithCLIConfig returns an Option that applies command-line overrides.
func WithCLIConfig(opts CLIOptions) Option {
	return func(c *Config) error {
		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.HostsFile != "" {
		c.Settings.HostsFile = opts.HostsFile
	}

	if opts.CheckInterval > 0 {
		c.Settings.CheckInterval = opts.CheckInterval
	}

	if opts.DisableNotify {
		c.Settings.Notifications = false
	}

	if opts.Music != "" {
		mode := MusicMode(opts.Music)

		switch mode {
		case MusicNoisli, MusicLocal, MusicOff:
			c.FocusMusic.Mode = mode
		default:
			return fmt.Errorf("applying CLI music: %w", errUnknownMusicType.Fmt(opts.Music))
		}
	}

	return nil
}
