package shell

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/detox/internal/timeutil"
	"github.com/ayoisaiah/detox/session"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.status = m.cmds.Snapshot()

		return m, refresh()

	case eventMsg:
		m.handleEvent(session.Event(msg))
		m.status = m.cmds.Snapshot()

		return m, m.waitForEvent()

	case resultMsg:
		if msg.err != nil {
			m.addError(msg.err)
		} else {
			m.reportResult(msg.res)
		}

		m.status = m.cmds.Snapshot()

		return m, nil

	case doneMsg:
		m.handleDone(msg)
		m.status = m.cmds.Snapshot()

		return m, nil

	case exitMsg:
		if msg.err != nil {
			m.addError(msg.err)
			return m, nil
		}

		m.quitting = true

		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.start):
		return m, m.run("start", m.cmds.Start)

	case key.Matches(msg, m.keys.end):
		return m, m.run("end", m.cmds.End)

	case key.Matches(msg, m.keys.details):
		m.showDetails = !m.showDetails

	case key.Matches(msg, m.keys.edit):
		return m, m.editConfig()

	case key.Matches(msg, m.keys.lock):
		if m.status.LockedMode {
			m.addLog(levelInfo, "Locked mode is already enabled")
			return m, nil
		}

		return m, m.openForm(lockForm)

	case key.Matches(msg, m.keys.schedule):
		return m, m.openForm(scheduleForm)

	case key.Matches(msg, m.keys.clear):
		return m, m.do("clear-schedule", m.cmds.ClearSchedule)

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.quit):
		return m, m.exit()
	}

	return m, nil
}

func (m *Model) editConfig() tea.Cmd {
	cmd, err := m.editor()
	if err != nil {
		m.addError(err)
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return doneMsg{err: err, action: "edit-config"}
	})
}

func (m *Model) handleDone(msg doneMsg) {
	if msg.err != nil {
		m.addError(msg.err)
		return
	}

	switch msg.action {
	case "lock":
		m.addLog(
			levelWarning,
			"Locked mode enabled. It can only be turned off in the config file.",
		)
	case "schedule":
		m.addLog(
			levelSuccess,
			"Daily schedule set: %s to %s",
			m.scheduleStart,
			m.scheduleEnd,
		)
	case "clear-schedule":
		m.addLog(levelSuccess, "Daily schedule removed")
	case "edit-config":
		m.addLog(levelInfo, "Configuration saved. Changes apply on the next check.")
	}
}

func (m *Model) handleEvent(ev session.Event) {
	switch ev.Kind {
	case session.EventStarted, session.EventEnded:
		if ev.Message != "" {
			m.addLog(levelInfo, "%s", ev.Message)
		}

		m.reportResult(ev.Result)
	case session.EventPlaybackFailed:
		m.addLog(levelWarning, "%s: %v", ev.Message, ev.Err)
	case session.EventError:
		if ev.Err != nil {
			m.addError(ev.Err)
		}

		if ev.Message != "" {
			m.addLog(levelWarning, "%s", ev.Message)
		}
	case session.EventScheduleSet, session.EventScheduleCleared:
	}
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		kind := m.formKind
		m.closeForm()

		return m, m.submitForm(kind)
	case huh.StateAborted:
		m.closeForm()

		return m, nil
	case huh.StateNormal:
	}

	return m, cmd
}

func (m *Model) submitForm(kind formKind) tea.Cmd {
	switch kind {
	case lockForm:
		if !m.confirmLock {
			return nil
		}

		return m.do("lock", m.cmds.Lock)
	case scheduleForm:
		start, err := timeutil.ParseTimeOfDay(m.scheduleStart)
		if err != nil {
			m.addError(err)
			return nil
		}

		end, err := timeutil.ParseTimeOfDay(m.scheduleEnd)
		if err != nil {
			m.addError(err)
			return nil
		}

		if start == end {
			m.addError(errSameTimes)
			return nil
		}

		m.scheduleStart, m.scheduleEnd = start.String(), end.String()

		return m.do("schedule", func(ctx context.Context) error {
			return m.cmds.SetSchedule(ctx, start, end)
		})
	case noForm:
	}

	return nil
}

var errSameTimes = errors.New("schedule start and end times must differ")
