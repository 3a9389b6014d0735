package shell

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/timeutil"
	"github.com/ayoisaiah/detox/session"
)

type fakeCommands struct {
	exitErr error
	endErr  error
	events  chan session.Event
	cfg     *config.Config
	status  models.Status
	start   *timeutil.TimeOfDay
	end     *timeutil.TimeOfDay
	starts  int
	locks   int
	cleared int
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{
		events: make(chan session.Event, 1),
		cfg: &config.Config{
			BlockedWebsites: []string{"site10.com", "site2.com"},
			FocusMusic:      config.Music{Mode: config.MusicOff},
		},
		status: models.Status{Phase: "idle"},
	}
}

func (f *fakeCommands) Start(context.Context) (*session.Result, error) {
	f.starts++
	f.status.Phase = "active"

	return &session.Result{
		Phase:        session.Active,
		SitesBlocked: 4,
		AppsKilled:   []string{"steam"},
		Warnings:     []string{"Locked mode enabled. You cannot exit until the session ends."},
	}, nil
}

func (f *fakeCommands) End(context.Context) (*session.Result, error) {
	if f.endErr != nil {
		return nil, f.endErr
	}

	f.status.Phase = "idle"

	return &session.Result{Phase: session.Idle, Minutes: 65}, nil
}

func (f *fakeCommands) Lock(context.Context) error {
	f.locks++
	f.status.LockedMode = true

	return nil
}

func (f *fakeCommands) SetSchedule(_ context.Context, start, end timeutil.TimeOfDay) error {
	f.start, f.end = &start, &end
	return nil
}

func (f *fakeCommands) ClearSchedule(context.Context) error {
	f.cleared++
	return nil
}

func (f *fakeCommands) Exit(context.Context) error {
	return f.exitErr
}

func (f *fakeCommands) Snapshot() models.Status {
	return f.status
}

func (f *fakeCommands) Config() *config.Config {
	return f.cfg
}

func (f *fakeCommands) Events() <-chan session.Event {
	return f.events
}

func newTestModel(f *fakeCommands) *Model {
	return New(context.Background(), f, func() (*exec.Cmd, error) {
		return exec.Command("true"), nil
	})
}

func press(t *testing.T, m *Model, k string) tea.Msg {
	t.Helper()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	if cmd == nil {
		return nil
	}

	msg := cmd()
	m.Update(msg)

	return msg
}

func logText(m *Model) []string {
	out := make([]string, len(m.log))
	for i, e := range m.log {
		out[i] = e.text
	}

	return out
}

func TestStartAndEnd(t *testing.T) {
	f := newFakeCommands()
	m := newTestModel(f)

	press(t, m, "s")

	assert.Equal(t, 1, f.starts)
	assert.True(t, m.status.Active())
	assert.Contains(t, logText(m), "Detox session started. 4 hosts entries added.")
	assert.Contains(t, logText(m), "Closed apps: steam")
	assert.Contains(t, m.View(), "ACTIVE")

	press(t, m, "e")

	assert.Contains(t, logText(m), "Detox session ended after 1h 05m.")
	assert.Contains(t, m.View(), "IDLE")
}

func TestEndErrorIsShown(t *testing.T) {
	f := newFakeCommands()
	f.endErr = session.ErrLocked

	m := newTestModel(f)

	press(t, m, "e")

	require.NotEmpty(t, m.log)
	assert.Equal(t, levelError, m.log[len(m.log)-1].level)
	assert.Contains(t, m.View(), session.ErrLocked.Error())
}

func TestExit(t *testing.T) {
	f := newFakeCommands()
	f.exitErr = session.ErrExitLocked

	m := newTestModel(f)

	msg := press(t, m, "q")
	assert.Equal(t, exitMsg{err: session.ErrExitLocked}, msg)
	assert.False(t, m.quitting)

	f.exitErr = nil

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	_, cmd = m.Update(cmd())
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDetailsListsSortedSites(t *testing.T) {
	f := newFakeCommands()
	m := newTestModel(f)

	press(t, m, "i")

	assert.Contains(t, m.View(), "site2.com, site10.com")
}

func TestLockAlreadyEnabled(t *testing.T) {
	f := newFakeCommands()
	f.status.LockedMode = true

	m := newTestModel(f)

	press(t, m, "l")

	assert.Nil(t, m.form)
	assert.Contains(t, logText(m), "Locked mode is already enabled")
}

func TestLockFormSubmit(t *testing.T) {
	f := newFakeCommands()
	m := newTestModel(f)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	require.NotNil(t, m.form)

	m.confirmLock = true

	msg := m.submitForm(lockForm)()
	m.Update(msg)

	assert.Equal(t, 1, f.locks)
	assert.True(t, m.status.LockedMode)
}

func TestScheduleFormSubmit(t *testing.T) {
	f := newFakeCommands()
	m := newTestModel(f)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	require.NotNil(t, m.form)

	m.scheduleStart, m.scheduleEnd = "9am", "17:30"

	msg := m.submitForm(scheduleForm)()
	m.Update(msg)

	require.NotNil(t, f.start)
	assert.Equal(t, timeutil.TimeOfDay{Hour: 9}, *f.start)
	assert.Equal(t, timeutil.TimeOfDay{Hour: 17, Minute: 30}, *f.end)
	assert.Contains(t, logText(m), "Daily schedule set: 09:00 to 17:30")
}

func TestScheduleFormRejectsSameTimes(t *testing.T) {
	f := newFakeCommands()
	m := newTestModel(f)

	m.scheduleStart, m.scheduleEnd = "09:00", "9am"

	assert.Nil(t, m.submitForm(scheduleForm))
	assert.Nil(t, f.start)
	assert.Contains(t, logText(m), errSameTimes.Error())
}

func TestEventsAreLogged(t *testing.T) {
	f := newFakeCommands()
	m := newTestModel(f)

	m.Update(eventMsg(session.Event{
		Kind:    session.EventEnded,
		Message: "Daily time limit reached. The detox session has ended.",
		Result:  &session.Result{Phase: session.Idle, Minutes: 60},
	}))

	m.Update(eventMsg(session.Event{
		Kind:    session.EventPlaybackFailed,
		Message: "Focus music could not be played",
		Err:     errors.New("no speaker"),
	}))

	assert.Equal(t, []string{
		"Daily time limit reached. The detox session has ended.",
		"Detox session ended after 1h 00m.",
		"Focus music could not be played: no speaker",
	}, logText(m))
}

func TestLogIsBounded(t *testing.T) {
	m := newTestModel(newFakeCommands())

	for range maxLogEntries + 3 {
		m.addLog(levelInfo, "message")
	}

	assert.Len(t, m.log, maxLogEntries)
}

func TestEditorError(t *testing.T) {
	f := newFakeCommands()
	m := New(context.Background(), f, func() (*exec.Cmd, error) {
		return nil, errors.New("no editor")
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Nil(t, cmd)
	assert.Contains(t, logText(m), "no editor")
}
