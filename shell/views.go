package shell

import (
	"fmt"
	"strings"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/timeutil"
	"github.com/ayoisaiah/detox/internal/ui"
)

func (m *Model) row(label, value string) string {
	return m.styles.Label.Render(label) + value + "\n"
}

func (m *Model) statusView() string {
	var s strings.Builder

	s.WriteString(m.styles.Title.Render("detox"))
	s.WriteString("  ")

	if m.status.Active() {
		s.WriteString(m.styles.Active.Render("ACTIVE"))
	} else {
		s.WriteString(m.styles.Idle.Render("IDLE"))
	}

	s.WriteString("\n\n")

	timeFormat := "03:04 PM"
	if m.twentyFour {
		timeFormat = "15:04"
	}

	if m.status.Active() {
		s.WriteString(m.row("Started", m.status.StartedAt.Format(timeFormat)))
		s.WriteString(m.row(
			"Elapsed",
			timeutil.FormatMinutes(int(m.status.ElapsedMinutes)),
		))
	}

	s.WriteString(m.row(
		"Today",
		timeutil.FormatMinutes(int(m.status.TotalMinutes())),
	))

	if remaining, ok := m.status.RemainingMinutes(); ok {
		s.WriteString(m.row(
			"Remaining",
			fmt.Sprintf(
				"%s of %s",
				timeutil.FormatMinutes(int(remaining)),
				timeutil.FormatMinutes(int(m.status.LimitMinutes)),
			),
		))
	}

	schedule := "not set"
	if m.status.ScheduleStart != "" {
		schedule = m.status.ScheduleStart + " to " + m.status.ScheduleEnd
	}

	s.WriteString(m.row("Schedule", schedule))

	locked := "off"
	if m.status.LockedMode {
		locked = m.styles.Warning.Render("on")
	}

	s.WriteString(m.row("Locked mode", locked))

	return s.String()
}

func (m *Model) detailsView() string {
	cfg := m.cmds.Config()

	var s strings.Builder

	s.WriteString("\n")
	s.WriteString(m.row("Blocked sites", ui.JoinSorted(cfg.BlockedWebsites, "none")))
	s.WriteString(m.row("Whitelist", ui.JoinSorted(cfg.WebsiteWhitelist, "none")))
	s.WriteString(m.row("Blocked apps", ui.JoinSorted(cfg.BlockedApps, "none")))
	s.WriteString(m.row("Focus music", musicDescription(cfg.FocusMusic)))

	return s.String()
}

func musicDescription(music config.Music) string {
	switch music.Mode {
	case config.MusicNoisli:
		if music.URL != "" {
			return "noisli (" + music.URL + ")"
		}

		return "noisli"
	case config.MusicLocal:
		desc := "local (" + music.LocalPath + ")"
		if music.Loop {
			desc += ", looped"
		}

		return desc
	case config.MusicOff:
	}

	return "off"
}

func (m *Model) logView() string {
	if len(m.log) == 0 {
		return ""
	}

	var s strings.Builder

	s.WriteString("\n")

	for _, e := range m.log {
		switch e.level {
		case levelSuccess:
			s.WriteString(m.styles.Success.Render(e.text))
		case levelWarning:
			s.WriteString(m.styles.Warning.Render(e.text))
		case levelError:
			s.WriteString(m.styles.Error.Render(e.text))
		case levelInfo:
			s.WriteString(m.styles.Hint.Render(e.text))
		}

		s.WriteString("\n")
	}

	return s.String()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(m.statusView())

	if m.showDetails {
		s.WriteString(m.detailsView())
	}

	s.WriteString(m.logView())

	if m.form != nil {
		s.WriteString("\n" + m.form.View())
	} else {
		s.WriteString("\n" + m.help.View(m.keys))
	}

	return m.styles.Base.Render(s.String())
}
