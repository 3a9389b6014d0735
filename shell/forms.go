package shell

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/detox/internal/timeutil"
)

func validTimeOfDay(s string) error {
	_, err := timeutil.ParseTimeOfDay(s)
	return err
}

func (m *Model) openForm(kind formKind) tea.Cmd {
	m.formKind = kind

	switch kind {
	case lockForm:
		m.confirmLock = false
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Enable locked mode?").
					Description("Sessions cannot be ended or exited until the daily limit or schedule ends them. This cannot be undone from detox.").
					Affirmative("Enable").
					Negative("Cancel").
					Value(&m.confirmLock),
			),
		)
	case scheduleForm:
		m.scheduleStart = m.status.ScheduleStart
		m.scheduleEnd = m.status.ScheduleEnd
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Start time").
					Description("e.g. 09:00 or 9am").
					Value(&m.scheduleStart).
					Validate(validTimeOfDay),
				huh.NewInput().
					Title("End time").
					Description("e.g. 17:30 or 5:30pm").
					Value(&m.scheduleEnd).
					Validate(validTimeOfDay),
			),
		)
	case noForm:
		return nil
	}

	m.form.WithShowHelp(true)

	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = noForm
}
