package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	hostsFileFlag = &cli.StringFlag{
		Name:  "hosts-file",
		Usage: "Path to the hosts file used for website blocking (default: the system hosts file)",
	}

	intervalFlag = &cli.DurationFlag{
		Name:    "interval",
		Aliases: []string{"i"},
		Usage:   "How often the daily limit and schedule are checked (e.g. 10s)",
	}

	musicFlag = &cli.StringFlag{
		Name:    "music",
		Aliases: []string{"m"},
		Usage:   "Focus music to play during a session. Possible values: noisli, local, off",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notifications for scheduled sessions and the daily limit",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	clearFlag = &cli.BoolFlag{
		Name:  "clear",
		Usage: "Remove the daily schedule",
	}

	sinceFlag = &cli.StringFlag{
		Name:    "since",
		Aliases: []string{"s"},
		Usage:   "Only show sessions started after this date (e.g. '2026-03-01', 'yesterday', '3 days ago'). Defaults to 7 days ago",
	}

	untilFlag = &cli.StringFlag{
		Name:    "until",
		Aliases: []string{"u"},
		Usage:   "Only show sessions started before this date (defaults to the current time)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	deleteFlag = &cli.BoolFlag{
		Name:  "delete",
		Usage: "Delete the matching sessions",
	}
)
