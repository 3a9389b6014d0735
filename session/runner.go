package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/timeutil"
)

const defaultInterval = 10 * time.Second

type (
	// Runner owns the Machine for the lifetime of the program. User commands
	// and periodic checks are executed one at a time on the Run goroutine.
	Runner struct {
		machine  *Machine
		trigger  *Trigger
		status   StatusSink
		log      *slog.Logger
		cmds     chan command
		schedule config.ScheduleConfig
		interval time.Duration
		lastErr  string
	}

	// StatusSink receives the machine state after every check and command.
	StatusSink func(s *models.Status) error

	// RunnerOption configures a Runner.
	RunnerOption func(*Runner)

	command struct {
		run   func(ctx context.Context) (*Result, error)
		reply chan reply
	}

	reply struct {
		res *Result
		err error
	}
)

// WithInterval fixes the check interval instead of reading it from the
// configuration.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.interval = d
	}
}

// WithStatusSink publishes the state after each check.
func WithStatusSink(sink StatusSink) RunnerOption {
	return func(r *Runner) {
		r.status = sink
	}
}

// NewRunner creates a Runner for m.
func NewRunner(m *Machine, opts ...RunnerOption) *Runner {
	r := &Runner{
		machine: m,
		log:     m.log,
		cmds:    make(chan command),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.trigger = NewTrigger(r.checkInterval(m.Config()))

	return r
}

// Machine returns the state machine driven by r.
func (r *Runner) Machine() *Machine {
	return r.machine
}

// Snapshot returns the current state for display.
func (r *Runner) Snapshot() models.Status {
	return r.machine.Snapshot()
}

// Config returns the last good configuration.
func (r *Runner) Config() *config.Config {
	return r.machine.Config()
}

// Events delivers scheduled starts, limit ends and failures.
func (r *Runner) Events() <-chan Event {
	return r.machine.Events()
}

func (r *Runner) checkInterval(cfg *config.Config) time.Duration {
	if r.interval > 0 {
		return r.interval
	}

	if cfg != nil && cfg.Settings.CheckInterval > 0 {
		return cfg.Settings.CheckInterval
	}

	return defaultInterval
}

// Run processes commands and periodic checks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.Tick(ctx)

	interval := r.checkInterval(r.machine.Config())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-r.cmds:
			res, err := cmd.run(ctx)
			cmd.reply <- reply{res, err}

			r.writeStatus()
		case <-ticker.C:
			r.Tick(ctx)

			if d := r.checkInterval(r.machine.Config()); d != interval {
				interval = d
				ticker.Reset(d)
				r.trigger.SetGranularity(d)
			}
		}
	}
}

// Tick runs one evaluation cycle: the configuration is reloaded, schedule
// boundaries are applied and then the daily limit is enforced. Run calls
// it on every tick; it must not be called concurrently with Run.
func (r *Runner) Tick(ctx context.Context) {
	m := r.machine

	cfg, err := m.Reload()
	if err != nil {
		r.reportConfigError(err)

		cfg = m.Config()
	} else {
		r.lastErr = ""
	}

	r.syncSchedule(cfg)

	startDue, endDue := r.trigger.Check(m.now())

	if endDue && m.Phase() == Active {
		res, err := m.EndSession(ctx, Schedule)
		r.announce(res, err, "Scheduled detox session has ended")
	}

	if startDue && m.Phase() == Idle {
		res, err := m.StartSession(ctx, Schedule)
		r.announce(res, err, "Scheduled detox session has started")
	}

	if _, err := m.TickLimitCheck(ctx); err != nil {
		r.log.Error("daily limit check failed", slog.Any("error", err))
	}

	r.writeStatus()
}

func (r *Runner) reportConfigError(err error) {
	r.log.Error("unable to load configuration", slog.Any("error", err))

	if err.Error() == r.lastErr {
		return
	}

	r.lastErr = err.Error()

	r.machine.announce(Event{
		Kind:    EventError,
		Err:     err,
		Message: "Configuration could not be loaded. Using the last good settings.",
	})
}

// syncSchedule arms or disarms the trigger when the persisted schedule
// changes.
func (r *Runner) syncSchedule(cfg *config.Config) {
	if cfg.Schedule == r.schedule {
		return
	}

	r.schedule = cfg.Schedule

	start, end, err := cfg.ParseSchedule()
	if err != nil {
		r.log.Error("invalid schedule", slog.Any("error", err))
		return
	}

	if start == nil {
		r.trigger.Clear()
		r.log.Info("schedule cleared")

		r.machine.announce(Event{Kind: EventScheduleCleared})

		return
	}

	r.trigger.Set(*start, *end)

	r.log.Info(
		"schedule armed",
		slog.String("start", start.String()),
		slog.String("end", end.String()),
	)

	r.machine.announce(Event{Kind: EventScheduleSet})
}

func (r *Runner) announce(res *Result, err error, msg string) {
	if err != nil {
		r.log.Error("scheduled transition failed", slog.Any("error", err))

		r.machine.announce(Event{Kind: EventError, Err: err})

		return
	}

	kind := EventStarted
	if res.Phase == Idle {
		kind = EventEnded
	}

	r.machine.announce(Event{Kind: kind, Result: res, Message: msg})
}

func (r *Runner) writeStatus() {
	if r.status == nil {
		return
	}

	s := r.machine.Snapshot()

	if err := r.status(&s); err != nil {
		r.log.Warn("unable to write status", slog.Any("error", err))
	}
}

func (r *Runner) do(
	ctx context.Context,
	fn func(ctx context.Context) (*Result, error),
) (*Result, error) {
	cmd := command{run: fn, reply: make(chan reply, 1)}

	select {
	case r.cmds <- cmd:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case rep := <-cmd.reply:
		return rep.res, rep.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Start begins a manual session.
func (r *Runner) Start(ctx context.Context) (*Result, error) {
	return r.do(ctx, func(ctx context.Context) (*Result, error) {
		return r.machine.StartSession(ctx, Manual)
	})
}

// End ends the active session manually.
func (r *Runner) End(ctx context.Context) (*Result, error) {
	return r.do(ctx, func(ctx context.Context) (*Result, error) {
		return r.machine.EndSession(ctx, Manual)
	})
}

// Lock enables locked mode.
func (r *Runner) Lock(ctx context.Context) error {
	_, err := r.do(ctx, func(context.Context) (*Result, error) {
		return nil, r.machine.EnableLockedMode()
	})

	return err
}

// SetSchedule persists and arms a daily schedule.
func (r *Runner) SetSchedule(
	ctx context.Context,
	start, end timeutil.TimeOfDay,
) error {
	_, err := r.do(ctx, func(context.Context) (*Result, error) {
		if err := r.machine.SetSchedule(start, end); err != nil {
			return nil, err
		}

		r.syncSchedule(r.machine.Config())

		return nil, nil
	})

	return err
}

// ClearSchedule removes the daily schedule.
func (r *Runner) ClearSchedule(ctx context.Context) error {
	_, err := r.do(ctx, func(context.Context) (*Result, error) {
		if err := r.machine.ClearSchedule(); err != nil {
			return nil, err
		}

		r.syncSchedule(r.machine.Config())

		return nil, nil
	})

	return err
}

// Exit asks whether the program may quit. An active session that is not
// locked is ended first so that blocked websites are restored.
func (r *Runner) Exit(ctx context.Context) error {
	_, err := r.do(ctx, func(ctx context.Context) (*Result, error) {
		return r.machine.Exit(ctx)
	})

	return err
}
