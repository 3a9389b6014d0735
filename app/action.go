package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/osutil"
	"github.com/ayoisaiah/detox/internal/pathutil"
	"github.com/ayoisaiah/detox/internal/timeutil"
	"github.com/ayoisaiah/detox/internal/ui"
	"github.com/ayoisaiah/detox/report"
	"github.com/ayoisaiah/detox/session"
	"github.com/ayoisaiah/detox/shell"
	"github.com/ayoisaiah/detox/store"
)

const (
	envNoColor      = "NO_COLOR"
	envDetoxNoColor = "DETOX_NO_COLOR"
)

var errScheduleArgs = errors.New(
	"please provide a start and end time (e.g. detox schedule 09:00 17:00) or use --clear",
)

// defaultAction opens the interactive menu.
func defaultAction(ctx *cli.Context) error {
	inst, err := newInstance(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := inst.run(ctx.Context)
	defer stop()

	return shell.Run(runCtx, inst.runner, inst.editor)
}

// startAction starts a session straight away and keeps enforcing the
// schedule and daily limit until interrupted.
func startAction(ctx *cli.Context) error {
	inst, err := newInstance(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := inst.run(ctx.Context)
	defer stop()

	res, err := inst.runner.Start(runCtx)
	if err != nil {
		return err
	}

	report.Result(res)

	pterm.Info.Println("Press Ctrl-C to end the session and exit")

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	for {
		select {
		case ev := <-inst.runner.Events():
			report.Event(ev)
		case <-c:
			err := inst.runner.Exit(runCtx)
			if errors.Is(err, session.ErrExitLocked) {
				report.Error(err)
				continue
			}

			if err != nil {
				return err
			}

			pterm.Success.Println("Detox session ended. Websites have been unblocked.")

			return nil
		case <-runCtx.Done():
			return runCtx.Err()
		}
	}
}

// statusAction prints the status of the running instance.
func statusAction(ctx *cli.Context) error {
	cfg, err := configStore(ctx).Load()
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	running, err := store.IsRunning(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	var s *models.Status

	if running {
		s, err = store.ReadStatus(pathutil.StatusFilePath())
		if err != nil {
			return err
		}
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(struct {
			Status  *models.Status `json:"status"`
			Running bool           `json:"running"`
		}{s, running})
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	report.Status(os.Stdout, s, cfg)

	return nil
}

// editConfigAction opens the config file in the user's editor and checks the
// result.
func editConfigAction(ctx *cli.Context) error {
	cfgStore := configStore(ctx)

	var editor string

	// a broken config can still be edited
	if cfg, err := cfgStore.Load(); err == nil {
		editor = cfg.Settings.Editor
	}

	cmd, err := osutil.EditorCommand(osutil.Editor(editor), cfgStore.Path())
	if err != nil {
		return err
	}

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	err = cmd.Run()
	if err != nil {
		return err
	}

	_, err = cfgStore.Load()
	if err != nil {
		return fmt.Errorf("the configuration file has errors: %w", err)
	}

	pterm.Success.Println("Configuration saved")

	return nil
}

// lockAction enables locked mode. A running instance picks it up on its next
// check.
func lockAction(ctx *cli.Context) error {
	if !ctx.Bool("yes") {
		ok, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show("Enable locked mode? Sessions can then only be ended by the schedule or the daily limit")
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}
	}

	err := configStore(ctx).Update(func(c *config.Config) error {
		c.LockedMode = true
		return nil
	})
	if err != nil {
		return err
	}

	pterm.Warning.Println(
		"Locked mode enabled. It can only be turned off in the config file.",
	)

	return nil
}

// scheduleAction sets or clears the daily schedule.
func scheduleAction(ctx *cli.Context) error {
	cfgStore := configStore(ctx)

	if ctx.Bool("clear") {
		err := cfgStore.Update(func(c *config.Config) error {
			c.Schedule = config.ScheduleConfig{}
			return nil
		})
		if err != nil {
			return err
		}

		pterm.Success.Println("Daily schedule removed")

		return nil
	}

	if ctx.NArg() != 2 {
		return errScheduleArgs
	}

	start, err := timeutil.ParseTimeOfDay(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	end, err := timeutil.ParseTimeOfDay(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	err = cfgStore.Update(func(c *config.Config) error {
		c.Schedule = config.ScheduleConfig{
			Start: start.String(),
			End:   end.String(),
		}

		return nil
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Daily schedule set: %s to %s", start, end)

	return nil
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/detox/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if DETOX_NO_COLOR is set
	if _, exists := os.LookupEnv(envDetoxNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting detox")

	return nil
}
