// Package shell is the interactive text menu for detox
package shell

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/timeutil"
	"github.com/ayoisaiah/detox/internal/ui"
	"github.com/ayoisaiah/detox/session"
)

const maxLogEntries = 6

type (
	// Commands is the session API the shell drives. It is satisfied by
	// *session.Runner.
	Commands interface {
		Start(ctx context.Context) (*session.Result, error)
		End(ctx context.Context) (*session.Result, error)
		Lock(ctx context.Context) error
		SetSchedule(ctx context.Context, start, end timeutil.TimeOfDay) error
		ClearSchedule(ctx context.Context) error
		Exit(ctx context.Context) error
		Snapshot() models.Status
		Config() *config.Config
		Events() <-chan session.Event
	}

	// EditorFunc returns the command that opens the configuration file.
	EditorFunc func() (*exec.Cmd, error)

	formKind int

	level int

	entry struct {
		text  string
		level level
	}

	resultMsg struct {
		res    *session.Result
		err    error
		action string
	}

	doneMsg struct {
		err    error
		action string
	}

	exitMsg struct {
		err error
	}

	eventMsg session.Event

	refreshMsg time.Time
)

const (
	noForm formKind = iota
	lockForm
	scheduleForm
)

const (
	levelInfo level = iota
	levelSuccess
	levelWarning
	levelError
)

// Model is the bubbletea model of the shell.
type Model struct {
	ctx           context.Context
	cmds          Commands
	editor        EditorFunc
	form          *huh.Form
	status        models.Status
	scheduleStart string
	scheduleEnd   string
	log           []entry
	help          help.Model
	styles        ui.Styles
	keys          keyMap
	formKind      formKind
	confirmLock   bool
	showDetails   bool
	twentyFour    bool
	quitting      bool
}

// New creates the shell model. Blocking commands are executed with ctx.
func New(ctx context.Context, cmds Commands, editor EditorFunc) *Model {
	cfg := cmds.Config()

	return &Model{
		ctx:        ctx,
		cmds:       cmds,
		editor:     editor,
		help:       help.New(),
		keys:       defaultKeymap,
		styles:     ui.NewStyles(cfg.Display.DarkTheme),
		twentyFour: cfg.Display.TwentyFourHour,
		status:     cmds.Snapshot(),
	}
}

// Run starts the shell and blocks until the user exits.
func Run(ctx context.Context, cmds Commands, editor EditorFunc) error {
	_, err := tea.NewProgram(New(ctx, cmds, editor)).Run()

	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), refresh())
}

func refresh() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.cmds.Events()

	return func() tea.Msg {
		select {
		case ev := <-events:
			return eventMsg(ev)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) run(
	action string,
	fn func(context.Context) (*session.Result, error),
) tea.Cmd {
	return func() tea.Msg {
		res, err := fn(m.ctx)
		return resultMsg{res: res, err: err, action: action}
	}
}

func (m *Model) do(action string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: fn(m.ctx), action: action}
	}
}

func (m *Model) exit() tea.Cmd {
	return func() tea.Msg {
		return exitMsg{err: m.cmds.Exit(m.ctx)}
	}
}

func (m *Model) addLog(l level, format string, a ...any) {
	m.log = append(m.log, entry{text: fmt.Sprintf(format, a...), level: l})

	if len(m.log) > maxLogEntries {
		m.log = m.log[len(m.log)-maxLogEntries:]
	}
}

func (m *Model) addError(err error) {
	m.addLog(levelError, "%v", err)
}

func (m *Model) reportResult(res *session.Result) {
	if res == nil {
		return
	}

	if res.Phase == session.Active {
		m.addLog(
			levelSuccess,
			"Detox session started. %d hosts entries added.",
			res.SitesBlocked,
		)

		if len(res.AppsKilled) > 0 {
			m.addLog(
				levelInfo,
				"Closed apps: %s",
				ui.JoinSorted(res.AppsKilled, ""),
			)
		}
	} else {
		m.addLog(
			levelSuccess,
			"Detox session ended after %s.",
			timeutil.FormatMinutes(int(res.Minutes)),
		)
	}

	for _, w := range res.Warnings {
		m.addLog(levelWarning, "%s", w)
	}

	for _, err := range res.Errors {
		m.addError(err)
	}
}
