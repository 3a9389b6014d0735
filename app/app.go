// Package app defines the detox command-line application
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/detox/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the detox app instance.
func Get() *cli.App {
	detoxApp := &cli.App{
		Name: "detox",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Detox blocks distracting websites and apps during focus sessions. Sessions
		can be started by hand, on a daily schedule, and are ended automatically
		once the daily time limit is used up.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a detox session without the interactive menu",
				Action: startAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running detox instance and the blocklists",
				Flags:  []cli.Flag{jsonFlag},
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "lock",
				Usage:  "Enable locked mode. Sessions can then only be ended by the schedule or the daily limit",
				Flags:  []cli.Flag{yesFlag},
				Action: lockAction,
			},
			{
				Name:      "schedule",
				Usage:     "Set the daily start and end time of a detox session",
				ArgsUsage: "<start> <end>",
				Flags:     []cli.Flag{clearFlag},
				Action:    scheduleAction,
			},
			{
				Name:  "history",
				Usage: "List completed detox sessions. Defaults to the last 7 days",
				Flags: []cli.Flag{
					sinceFlag,
					untilFlag,
					jsonFlag,
					deleteFlag,
				},
				Action: historyAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			hostsFileFlag,
			intervalFlag,
			musicFlag,
			disableNotificationFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return detoxApp
}
