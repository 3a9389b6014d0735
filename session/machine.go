// Package session implements the detox session state machine, the daily
// schedule trigger and the runner that serializes every transition.
package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/timeutil"
)

const lockedWarning = "Locked mode enabled. You cannot exit until the session ends."

type (
	// ConfigStore provides the persisted configuration.
	ConfigStore interface {
		Load() (*config.Config, error)
		Update(fn func(*config.Config) error) error
	}

	// Gateway enforces website and app blocking.
	Gateway interface {
		Block(sites, whitelist []string) (int, error)
		Unblock(sites []string) error
		BlockApps(ctx context.Context, names []string) []string
	}

	// Player plays focus music.
	Player interface {
		Play(ctx context.Context, music config.Music) error
		Stop() error
	}

	// Recorder saves completed sessions to the history.
	Recorder interface {
		SaveSession(sess *models.Session) error
	}

	// Notifier sends desktop notifications.
	Notifier interface {
		Notify(title, msg string)
	}

	reconfigurer interface {
		Reconfigure(hostsPath, redirectIP string)
	}

	// Option configures a Machine.
	Option func(*Machine)
)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		m.log = l
	}
}

// WithRecorder saves each completed session with r.
func WithRecorder(r Recorder) Option {
	return func(m *Machine) {
		m.recorder = r
	}
}

// WithNotifier sends notifications for events through n.
func WithNotifier(n Notifier) Option {
	return func(m *Machine) {
		m.notifier = n
	}
}

// Machine is the session state machine. A single transition lock ensures
// that at most one start or end is in flight.
type Machine struct {
	now      func() time.Time
	store    ConfigStore
	gateway  Gateway
	player   Player
	recorder Recorder
	notifier Notifier
	log      *slog.Logger
	events   chan Event

	// guarded by transition
	started      *Result
	stopPlayback context.CancelFunc
	playDone     chan struct{}
	blocked      []string

	// guarded by mu
	cfg   *config.Config
	state State

	transition sync.Mutex
	mu         sync.RWMutex
}

// New creates an idle Machine.
func New(
	store ConfigStore,
	gateway Gateway,
	player Player,
	opts ...Option,
) *Machine {
	m := &Machine{
		store:   store,
		gateway: gateway,
		player:  player,
		now:     time.Now,
		log:     slog.Default(),
		events:  make(chan Event, 16),
		cfg:     &config.Config{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Events delivers events that were not caused by a direct command.
// Events are dropped when nobody is reading.
func (m *Machine) Events() <-chan Event {
	return m.events
}

// State returns a copy of the current session state.
func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.State().Phase
}

// Config returns the last configuration that loaded successfully.
func (m *Machine) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cfg
}

// Reload reads the configuration from the store. The last good
// configuration is kept when loading fails.
func (m *Machine) Reload() (*config.Config, error) {
	cfg, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, config.ErrConfig) {
			err = config.ErrConfig.Wrap(err)
		}

		return nil, err
	}

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()

	return cfg, nil
}

// reloadOrLast is used by checks that must keep working when the config
// file is temporarily broken.
func (m *Machine) reloadOrLast() *config.Config {
	cfg, err := m.Reload()
	if err != nil {
		m.log.Warn(
			"using last good configuration",
			slog.Any("error", err),
		)

		return m.Config()
	}

	return cfg
}

// StartSession blocks the configured websites and apps, starts focus music
// and moves the machine to Active. Collaborator failures are collected in
// the result without aborting the start.
func (m *Machine) StartSession(
	ctx context.Context,
	auth Authority,
) (*Result, error) {
	m.transition.Lock()
	defer m.transition.Unlock()

	if m.Phase() == Active {
		return nil, ErrSessionActive
	}

	cfg, err := m.Reload()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Authority: auth,
		Phase:     Active,
	}

	if r, ok := m.gateway.(reconfigurer); ok {
		r.Reconfigure(cfg.Settings.HostsFile, cfg.Settings.RedirectIP)
	}

	res.SitesBlocked, err = m.gateway.Block(
		cfg.BlockedWebsites,
		cfg.WebsiteWhitelist,
	)
	if err != nil {
		m.log.Error("website blocking failed", slog.Any("error", err))

		res.Errors = append(res.Errors, err)
	}

	res.AppsKilled = m.gateway.BlockApps(ctx, cfg.BlockedApps)

	m.startPlayback(cfg.FocusMusic)

	if cfg.LockedMode {
		res.Warnings = append(res.Warnings, lockedWarning)
	}

	m.blocked = slices.Clone(cfg.BlockedWebsites)
	m.started = res

	m.mu.Lock()
	m.state.Phase = Active
	m.state.StartedAt = m.now()
	m.mu.Unlock()

	m.log.Info(
		"session started",
		slog.String("authority", auth.String()),
		slog.Int("sites_blocked", res.SitesBlocked),
		slog.Any("apps_killed", res.AppsKilled),
	)

	return res, nil
}

// EndSession unblocks websites, stops focus music and moves the machine to
// Idle. Locked mode only prevents manual ends.
func (m *Machine) EndSession(
	ctx context.Context,
	auth Authority,
) (*Result, error) {
	m.transition.Lock()
	defer m.transition.Unlock()

	return m.end(ctx, auth)
}

func (m *Machine) end(_ context.Context, auth Authority) (*Result, error) {
	if m.Phase() != Active {
		return nil, ErrNoActiveSession
	}

	var cfg *config.Config

	if auth == Manual {
		var err error

		cfg, err = m.Reload()
		if err != nil {
			return nil, err
		}
	} else {
		cfg = m.reloadOrLast()
	}

	if auth == Manual && cfg.LockedMode {
		return nil, ErrLocked
	}

	return m.finish(auth), nil
}

func (m *Machine) finish(auth Authority) *Result {
	res := &Result{
		Authority: auth,
		Phase:     Idle,
	}

	if err := m.gateway.Unblock(m.blocked); err != nil {
		m.log.Error("website unblocking failed", slog.Any("error", err))

		res.Errors = append(res.Errors, err)
	}

	m.endPlayback()

	now := m.now()

	m.mu.Lock()
	startedAt := m.state.StartedAt
	res.Minutes = ElapsedMinutes(startedAt, now)
	m.state.AccumulatedMinutes += res.Minutes
	m.state.Phase = Idle
	m.state.StartedAt = time.Time{}
	m.mu.Unlock()

	m.record(startedAt, now, res)

	m.blocked = nil
	m.started = nil

	m.log.Info(
		"session ended",
		slog.String("authority", auth.String()),
		slog.Uint64("minutes", uint64(res.Minutes)),
	)

	return res
}

func (m *Machine) record(startedAt, endedAt time.Time, res *Result) {
	if m.recorder == nil || m.started == nil {
		return
	}

	sess := &models.Session{
		StartTime:    startedAt,
		EndTime:      endedAt,
		Authority:    m.started.Authority.String(),
		AppsKilled:   m.started.AppsKilled,
		SitesBlocked: m.started.SitesBlocked,
		Minutes:      res.Minutes,
	}

	if err := m.recorder.SaveSession(sess); err != nil {
		m.log.Error("unable to save session", slog.Any("error", err))
	}
}

// TickLimitCheck ends the active session once the minutes accumulated today
// reach the daily limit. It reports whether the session was ended.
func (m *Machine) TickLimitCheck(ctx context.Context) (bool, error) {
	m.transition.Lock()
	defer m.transition.Unlock()

	st := m.State()
	if st.Phase != Active {
		return false, nil
	}

	cfg := m.reloadOrLast()
	if !cfg.DailyTimeLimit.Enabled {
		return false, nil
	}

	total := st.AccumulatedMinutes + ElapsedMinutes(st.StartedAt, m.now())
	if total < cfg.DailyTimeLimit.Minutes {
		return false, nil
	}

	res, err := m.end(ctx, Limit)
	if err != nil {
		return false, err
	}

	res.LimitReached = true

	m.announce(Event{
		Kind:    EventEnded,
		Result:  res,
		Message: "Daily time limit reached. The detox session has ended.",
	})

	return true, nil
}

// RequestExit reports whether the user may quit. Quitting is refused while
// a session is active in locked mode.
func (m *Machine) RequestExit() error {
	m.transition.Lock()
	defer m.transition.Unlock()

	if m.Phase() != Active {
		return nil
	}

	if m.reloadOrLast().LockedMode {
		return ErrExitLocked
	}

	return nil
}

// Exit ends an active session on behalf of a user who is quitting. It
// fails with ErrExitLocked in locked mode. A broken config file does not
// prevent the exit: the last good configuration decides.
func (m *Machine) Exit(_ context.Context) (*Result, error) {
	m.transition.Lock()
	defer m.transition.Unlock()

	if m.Phase() != Active {
		return nil, nil
	}

	if m.reloadOrLast().LockedMode {
		return nil, ErrExitLocked
	}

	return m.finish(Manual), nil
}

// EnableLockedMode persists locked mode. There is no way to turn it off
// from within the program.
func (m *Machine) EnableLockedMode() error {
	m.transition.Lock()
	defer m.transition.Unlock()

	err := m.store.Update(func(c *config.Config) error {
		c.LockedMode = true
		return nil
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	cfg := *m.cfg
	cfg.LockedMode = true
	m.cfg = &cfg
	m.mu.Unlock()

	m.log.Info("locked mode enabled")

	return nil
}

// SetSchedule persists a daily start and end time.
func (m *Machine) SetSchedule(start, end timeutil.TimeOfDay) error {
	return m.updateSchedule(config.ScheduleConfig{
		Start: start.String(),
		End:   end.String(),
	})
}

// ClearSchedule removes the persisted schedule.
func (m *Machine) ClearSchedule() error {
	return m.updateSchedule(config.ScheduleConfig{})
}

func (m *Machine) updateSchedule(s config.ScheduleConfig) error {
	m.transition.Lock()
	defer m.transition.Unlock()

	err := m.store.Update(func(c *config.Config) error {
		c.Schedule = s
		return nil
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	cfg := *m.cfg
	cfg.Schedule = s
	m.cfg = &cfg
	m.mu.Unlock()

	return nil
}

// Snapshot summarises the machine state for display.
func (m *Machine) Snapshot() models.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()

	s := models.Status{
		Phase:              m.state.Phase.String(),
		StartedAt:          m.state.StartedAt,
		UpdatedAt:          now,
		AccumulatedMinutes: m.state.AccumulatedMinutes,
		ElapsedMinutes:     ElapsedMinutes(m.state.StartedAt, now),
		LimitEnabled:       m.cfg.DailyTimeLimit.Enabled,
		LimitMinutes:       m.cfg.DailyTimeLimit.Minutes,
		LockedMode:         m.cfg.LockedMode,
	}

	if m.cfg.HasSchedule() {
		s.ScheduleStart = m.cfg.Schedule.Start
		s.ScheduleEnd = m.cfg.Schedule.End
	}

	return s
}

func (m *Machine) startPlayback(music config.Music) {
	if music.Mode == config.MusicOff || music.Mode == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	m.stopPlayback = cancel
	m.playDone = done

	go func() {
		defer close(done)

		err := m.player.Play(ctx, music)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}

		m.log.Warn("focus music unavailable", slog.Any("error", err))

		m.announce(Event{
			Kind:    EventPlaybackFailed,
			Err:     err,
			Message: "Focus music could not be played",
		})
	}()
}

// endPlayback cancels pending playback and waits for it to settle so that
// Stop also catches audio that was still starting.
func (m *Machine) endPlayback() {
	if m.stopPlayback == nil {
		return
	}

	m.stopPlayback()
	<-m.playDone

	if err := m.player.Stop(); err != nil {
		m.log.Warn("unable to stop focus music", slog.Any("error", err))
	}

	m.stopPlayback = nil
	m.playDone = nil
}

// announce publishes ev and sends a desktop notification for it.
func (m *Machine) announce(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = m.now()
	}

	if m.notifier != nil && ev.Message != "" {
		m.notifier.Notify("Detox", ev.Message)
	}

	select {
	case m.events <- ev:
	default:
		m.log.Debug("event dropped", slog.String("message", ev.Message))
	}
}
