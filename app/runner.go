package app

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/detox/blocker"
	"github.com/ayoisaiah/detox/internal/config"
	"github.com/ayoisaiah/detox/internal/models"
	"github.com/ayoisaiah/detox/internal/notify"
	"github.com/ayoisaiah/detox/internal/osutil"
	"github.com/ayoisaiah/detox/internal/pathutil"
	"github.com/ayoisaiah/detox/player"
	"github.com/ayoisaiah/detox/session"
	"github.com/ayoisaiah/detox/shell"
	"github.com/ayoisaiah/detox/store"
)

var _ shell.Commands = (*session.Runner)(nil)

// configStore returns the configuration store with the command-line
// overrides applied on every load.
func configStore(ctx *cli.Context) *config.Store {
	return config.NewStore(
		pathutil.ConfigFilePath(),
		config.WithCLIConfig(config.CLIOptionsFrom(ctx)),
	)
}

// instance is a running detox process: it holds the database lock and owns
// the session runner.
type instance struct {
	runner *session.Runner
	db     *store.Client
}

// newInstance wires the session machine to its collaborators. It fails with
// store.ErrDetoxRunning if another instance is active.
func newInstance(ctx *cli.Context) (*instance, error) {
	cfgStore := configStore(ctx)

	err := config.Prompt(cfgStore)
	if err != nil {
		return nil, err
	}

	cfg, err := cfgStore.Load()
	if err != nil {
		return nil, err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return nil, err
	}

	log := slog.Default()

	gateway := blocker.NewGateway(
		cfg.Settings.HostsFile,
		cfg.Settings.RedirectIP,
		log,
	)

	var m *session.Machine

	notifier := notify.NewDesktop(pathutil.Dir(), func() bool {
		return m.Config().Settings.Notifications
	})

	m = session.New(
		cfgStore,
		gateway,
		player.New(log),
		session.WithLogger(log),
		session.WithRecorder(db),
		session.WithNotifier(notifier),
	)

	_, err = m.Reload()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	runner := session.NewRunner(
		m,
		session.WithStatusSink(func(s *models.Status) error {
			return store.WriteStatus(pathutil.StatusFilePath(), s)
		}),
	)

	return &instance{
		runner: runner,
		db:     db,
	}, nil
}

// run starts the runner in the background. The returned function stops it
// and releases the instance.
func (i *instance) run(ctx context.Context) (context.Context, func()) {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		err := i.runner.Run(runCtx)
		if err != nil && runCtx.Err() == nil {
			slog.Error("session runner stopped", slog.Any("error", err))
		}
	}()

	return runCtx, func() {
		cancel()
		<-done

		_ = store.RemoveStatus(pathutil.StatusFilePath())
		_ = i.db.Close()
	}
}

func (i *instance) editor() (*exec.Cmd, error) {
	return osutil.EditorCommand(
		osutil.Editor(i.runner.Config().Settings.Editor),
		pathutil.ConfigFilePath(),
	)
}
