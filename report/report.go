// Package report prints session outcomes and status to the terminal
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/timeutil"
	"github.com/ayoisaiah/detox/internal/ui"
	"github.com/ayoisaiah/detox/session"
)

func Error(err error) {
	pterm.Error.Println(err)
}

// Result prints the outcome of a session transition.
func Result(res *session.Result) {
	if res == nil {
		return
	}

	if res.Phase == session.Active {
		pterm.Success.Printfln(
			"Detox session started. %d hosts entries added.",
			res.SitesBlocked,
		)

		if len(res.AppsKilled) > 0 {
			pterm.Info.Printfln(
				"Closed apps: %s",
				ui.JoinSorted(res.AppsKilled, ""),
			)
		}
	} else {
		pterm.Success.Printfln(
			"Detox session ended after %s.",
			timeutil.FormatMinutes(int(res.Minutes)),
		)
	}

	for _, w := range res.Warnings {
		pterm.Warning.Println(w)
	}

	for _, err := range res.Errors {
		pterm.Error.Println(err)
	}
}

// Event prints an event published by the session runner.
func Event(ev session.Event) {
	switch ev.Kind {
	case session.EventStarted, session.EventEnded:
		if ev.Message != "" {
			pterm.Info.Println(ev.Message)
		}

		Result(ev.Result)
	case session.EventPlaybackFailed:
		pterm.Warning.Printfln("%s: %v", ev.Message, ev.Err)
	case session.EventError:
		if ev.Err != nil {
			pterm.Error.Println(ev.Err)
		}
	case session.EventScheduleSet, session.EventScheduleCleared:
	}
}

// Status writes the state of a running instance followed by the
// configured blocklists.
func Status(w io.Writer, s *models.Status, cfg *config.Config) {
	timeFormat := "03:04 PM"
	if cfg.Display.TwentyFourHour {
		timeFormat = "15:04"
	}

	var b strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&b, "%-16s%s\n", label, value)
	}

	if s == nil {
		row("Status", ui.Yellow("not running"))
	} else {
		phase := ui.Yellow("idle")
		if s.Active() {
			phase = ui.Green("active")
		}

		row("Status", phase)

		if s.Active() {
			row("Started", ui.Highlight(s.StartedAt.Format(timeFormat)))
			row("Elapsed", timeutil.FormatMinutes(int(s.ElapsedMinutes)))
		}

		row("Today", timeutil.FormatMinutes(int(s.TotalMinutes())))

		if remaining, ok := s.RemainingMinutes(); ok {
			row("Remaining", timeutil.FormatMinutes(int(remaining)))
		}
	}

	schedule := "not set"
	if cfg.HasSchedule() {
		schedule = cfg.Schedule.Start + " to " + cfg.Schedule.End
	}

	row("Schedule", schedule)

	locked := "off"
	if cfg.LockedMode {
		locked = ui.Red("on")
	}

	row("Locked mode", locked)

	limit := "off"
	if cfg.DailyTimeLimit.Enabled {
		limit = timeutil.FormatMinutes(int(cfg.DailyTimeLimit.Minutes))
	}

	row("Daily limit", limit)
	row("Blocked sites", ui.JoinSorted(cfg.BlockedWebsites, "none"))
	row("Whitelist", ui.JoinSorted(cfg.WebsiteWhitelist, "none"))
	row("Blocked apps", ui.JoinSorted(cfg.BlockedApps, "none"))
	row("Focus music", string(cfg.FocusMusic.Mode))

	fmt.Fprint(w, b.String())
}

// Sessions prints the session history as a table.
func Sessions(w io.Writer, sessions []*models.Session) {
	if len(sessions) == 0 {
		pterm.Info.Println("No sessions found for the specified time range")
		return
	}

	tableBody := make([][]string, 0, len(sessions)+1)
	tableBody = append(tableBody, []string{
		"#", "START DATE", "END DATE", "DURATION", "STARTED BY", "APPS CLOSED",
	})

	var total uint

	for i, sess := range sessions {
		total += sess.Minutes

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			sess.StartTime.Format("Jan 02, 2006 03:04 PM"),
			sess.EndTime.Format("Jan 02, 2006 03:04 PM"),
			timeutil.FormatMinutes(int(sess.Minutes)),
			sess.Authority,
			ui.JoinSorted(sess.AppsKilled, "-"),
		})
	}

	ui.PrintTable(tableBody, w)

	fmt.Fprintf(w, "Total: %s\n", ui.Green(timeutil.FormatMinutes(int(total))))
}
