package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/timeutil"
)

type statusLog struct {
	last *models.Status
	mu   sync.Mutex
	n    int
}

func (s *statusLog) write(st *models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++
	s.last = st

	return nil
}

func (s *statusLog) get() (*models.Status, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last, s.n
}

func startRunner(t *testing.T, r *Runner) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = r.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return ctx
}

func TestRunnerScheduledSession(t *testing.T) {
	f := newFixture()
	f.store.set(func(c *config.Config) {
		c.Schedule = config.ScheduleConfig{Start: "09:00", End: "17:00"}
	})

	f.clock.Set(day(2, 8, 59, 50))

	status := &statusLog{}
	r := NewRunner(
		f.machine,
		WithInterval(10*time.Second),
		WithStatusSink(status.write),
	)
	ctx := context.Background()

	r.Tick(ctx)
	assert.Equal(t, Idle, f.machine.Phase())

	f.clock.Advance(10 * time.Second)
	r.Tick(ctx)
	assert.Equal(t, Active, f.machine.Phase())

	last, _ := status.get()
	require.NotNil(t, last)
	assert.True(t, last.Active())
	assert.Equal(t, "09:00", last.ScheduleStart)

	// a manual end inside the window is not undone by the schedule
	_, err := f.machine.EndSession(ctx, Manual)
	require.NoError(t, err)

	f.clock.Advance(10 * time.Second)
	r.Tick(ctx)
	assert.Equal(t, Idle, f.machine.Phase())

	_, err = f.machine.StartSession(ctx, Manual)
	require.NoError(t, err)

	f.clock.Set(day(2, 17, 0, 0))
	r.Tick(ctx)
	assert.Equal(t, Idle, f.machine.Phase())

	require.Len(t, f.recorder.sessions, 2)
	assert.Equal(t, "schedule", f.recorder.sessions[0].Authority)
	assert.Equal(t, "manual", f.recorder.sessions[1].Authority)
}

func TestRunnerScheduleEndsLockedSession(t *testing.T) {
	f := newFixture()
	f.store.set(func(c *config.Config) {
		c.LockedMode = true
		c.Schedule = config.ScheduleConfig{Start: "09:00", End: "10:00"}
	})

	f.clock.Set(day(2, 9, 0, 0))

	r := NewRunner(f.machine, WithInterval(10*time.Second))
	ctx := context.Background()

	r.Tick(ctx)
	require.Equal(t, Active, f.machine.Phase())

	f.clock.Set(day(2, 10, 0, 0))
	r.Tick(ctx)
	assert.Equal(t, Idle, f.machine.Phase())
}

func TestRunnerLimitEndsSession(t *testing.T) {
	f := newFixture()
	f.store.set(func(c *config.Config) {
		c.DailyTimeLimit = config.DailyLimit{Enabled: true, Minutes: 5}
	})

	r := NewRunner(f.machine, WithInterval(10*time.Second))
	ctx := context.Background()

	_, err := f.machine.StartSession(ctx, Manual)
	require.NoError(t, err)

	f.clock.Advance(5 * time.Minute)
	r.Tick(ctx)

	assert.Equal(t, Idle, f.machine.Phase())
	assert.Equal(t, uint(5), f.machine.State().AccumulatedMinutes)
}

func TestRunnerReportsConfigErrorOnce(t *testing.T) {
	f := newFixture()
	r := NewRunner(f.machine, WithInterval(10*time.Second))
	ctx := context.Background()

	f.store.fail(errBroken)

	r.Tick(ctx)
	r.Tick(ctx)

	var errs int

	for len(f.machine.Events()) > 0 {
		if ev := <-f.machine.Events(); ev.Kind == EventError {
			errs++
		}
	}

	assert.Equal(t, 1, errs)
}

func TestRunnerCommands(t *testing.T) {
	f := newFixture()
	status := &statusLog{}
	r := NewRunner(f.machine, WithInterval(time.Hour), WithStatusSink(status.write))
	ctx := startRunner(t, r)

	res, err := r.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, Active, res.Phase)

	_, err = r.Start(ctx)
	require.ErrorIs(t, err, ErrSessionActive)

	require.NoError(t, r.SetSchedule(
		ctx,
		timeutil.TimeOfDay{Hour: 9},
		timeutil.TimeOfDay{Hour: 17},
	))

	_, _, ok := r.trigger.Window()
	assert.True(t, ok)

	require.NoError(t, r.Lock(ctx))

	_, err = r.End(ctx)
	require.ErrorIs(t, err, ErrLocked)

	require.ErrorIs(t, r.Exit(ctx), ErrExitLocked)
	assert.Equal(t, Active, f.machine.Phase())

	last, n := status.get()
	assert.Positive(t, n)
	assert.True(t, last.LockedMode)
}

func TestRunnerExitEndsUnlockedSession(t *testing.T) {
	f := newFixture()
	r := NewRunner(f.machine, WithInterval(time.Hour))
	ctx := startRunner(t, r)

	_, err := r.Start(ctx)
	require.NoError(t, err)

	require.NoError(t, r.Exit(ctx))
	assert.Equal(t, Idle, f.machine.Phase())
	assert.Len(t, f.gateway.unblocked, 1)

	require.NoError(t, r.Exit(ctx))
}

func TestRunnerExitWithBrokenConfig(t *testing.T) {
	f := newFixture()
	r := NewRunner(f.machine, WithInterval(time.Hour))
	ctx := startRunner(t, r)

	_, err := r.Start(ctx)
	require.NoError(t, err)

	f.store.fail(errBroken)

	_, err = r.End(ctx)
	require.ErrorIs(t, err, config.ErrConfig)

	require.NoError(t, r.Exit(ctx))
	assert.Equal(t, Idle, f.machine.Phase())
	assert.Len(t, f.gateway.unblocked, 1)
	require.Len(t, f.recorder.sessions, 1)
	assert.Equal(t, "manual", f.recorder.sessions[0].Authority)
}

func TestRunnerExitWithBrokenConfigLocked(t *testing.T) {
	f := newFixture()
	r := NewRunner(f.machine, WithInterval(time.Hour))
	ctx := startRunner(t, r)

	_, err := r.Start(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Lock(ctx))

	f.store.fail(errBroken)

	require.ErrorIs(t, r.Exit(ctx), ErrExitLocked)
	assert.Equal(t, Active, f.machine.Phase())
}

func TestRunnerReplacedScheduleFiresSameDay(t *testing.T) {
	f := newFixture()
	f.store.set(func(c *config.Config) {
		c.Schedule = config.ScheduleConfig{Start: "09:00", End: "10:00"}
	})

	f.clock.Set(day(2, 9, 0, 0))

	r := NewRunner(f.machine, WithInterval(10*time.Second))
	ctx := context.Background()

	r.Tick(ctx)
	require.Equal(t, Active, f.machine.Phase())

	f.clock.Set(day(2, 10, 0, 0))
	r.Tick(ctx)
	require.Equal(t, Idle, f.machine.Phase())

	f.clock.Set(day(2, 10, 30, 0))

	ctx = startRunner(t, r)

	require.NoError(t, r.SetSchedule(
		ctx,
		timeutil.TimeOfDay{Hour: 11},
		timeutil.TimeOfDay{Hour: 12},
	))

	f.clock.Set(day(2, 11, 0, 0))
	_, err := r.do(ctx, func(ctx context.Context) (*Result, error) {
		r.Tick(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, Active, f.machine.Phase())

	f.clock.Set(day(2, 12, 0, 0))
	_, err = r.do(ctx, func(ctx context.Context) (*Result, error) {
		r.Tick(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, Idle, f.machine.Phase())

	require.Len(t, f.recorder.sessions, 2)
}

func TestRunnerClearSchedule(t *testing.T) {
	f := newFixture()
	r := NewRunner(f.machine, WithInterval(time.Hour))
	ctx := startRunner(t, r)

	require.NoError(t, r.SetSchedule(
		ctx,
		timeutil.TimeOfDay{Hour: 9},
		timeutil.TimeOfDay{Hour: 17},
	))
	require.NoError(t, r.ClearSchedule(ctx))

	_, _, ok := r.trigger.Window()
	assert.False(t, ok)
}

func TestRunnerCommandCancelled(t *testing.T) {
	f := newFixture()
	r := NewRunner(f.machine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Start(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Idle, f.machine.Phase())
}
