package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
)

var errBroken = errors.New("broken")

type fakeStore struct {
	cfg     config.Config
	loadErr error
	mu      sync.Mutex
	loads   int
}

func (s *fakeStore) Load() (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++

	if s.loadErr != nil {
		return nil, config.ErrConfig.Wrap(s.loadErr)
	}

	c := s.cfg

	return &c, nil
}

func (s *fakeStore) Update(fn func(*config.Config) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cfg
	if err := fn(&c); err != nil {
		return err
	}

	s.cfg = c

	return nil
}

func (s *fakeStore) set(fn func(*config.Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.cfg)
}

func (s *fakeStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadErr = err
}

type fakeGateway struct {
	blockErr   error
	unblockErr error
	blocked    []string
	unblocked  [][]string
	killed     []string
	mu         sync.Mutex
	blocks     int
}

func (g *fakeGateway) Block(sites, _ []string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.blocks++
	g.blocked = sites

	if g.blockErr != nil {
		return 0, g.blockErr
	}

	return len(sites) * 2, nil
}

func (g *fakeGateway) Unblock(sites []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.unblocked = append(g.unblocked, sites)

	return g.unblockErr
}

func (g *fakeGateway) BlockApps(_ context.Context, names []string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.killed = append(g.killed, names...)

	return names
}

type fakePlayer struct {
	playErr error
	played  []config.Music
	mu      sync.Mutex
	stops   int
}

func (p *fakePlayer) Play(_ context.Context, music config.Music) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played = append(p.played, music)

	return p.playErr
}

func (p *fakePlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stops++

	return nil
}

type fakeRecorder struct {
	sessions []*models.Session
}

func (r *fakeRecorder) SaveSession(sess *models.Session) error {
	r.sessions = append(r.sessions, sess)
	return nil
}

type fakeNotifier struct {
	messages []string
	mu       sync.Mutex
}

func (n *fakeNotifier) Notify(_, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, msg)
}

type fakeClock struct {
	t  time.Time
	mu sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = t
}

type fixture struct {
	store    *fakeStore
	gateway  *fakeGateway
	player   *fakePlayer
	recorder *fakeRecorder
	notifier *fakeNotifier
	clock    *fakeClock
	machine  *Machine
}

func newFixture() *fixture {
	f := &fixture{
		store: &fakeStore{
			cfg: config.Config{
				BlockedWebsites: []string{"facebook.com", "reddit.com"},
				BlockedApps:     []string{"steam"},
				FocusMusic:      config.Music{Mode: config.MusicOff},
			},
		},
		gateway:  &fakeGateway{},
		player:   &fakePlayer{},
		recorder: &fakeRecorder{},
		notifier: &fakeNotifier{},
		clock: &fakeClock{
			t: time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC),
		},
	}

	f.machine = New(
		f.store,
		f.gateway,
		f.player,
		WithClock(f.clock.Now),
		WithRecorder(f.recorder),
		WithNotifier(f.notifier),
	)

	return f
}
