package blocker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProcess struct {
	name    string
	killErr error
	killed  bool
}

func (p *fakeProcess) NameWithContext(_ context.Context) (string, error) {
	return p.name, nil
}

func (p *fakeProcess) KillWithContext(_ context.Context) error {
	if p.killErr != nil {
		return p.killErr
	}

	p.killed = true

	return nil
}

func TestBlockApps(t *testing.T) {
	steam := &fakeProcess{name: "Steam.exe"}
	editor := &fakeProcess{name: "code"}
	discord := &fakeProcess{name: "discord", killErr: errors.New("access denied")}

	apps := &Apps{
		List: func(_ context.Context) ([]Process, error) {
			return []Process{steam, editor, discord}, nil
		},
	}

	killed := apps.BlockApps(context.Background(), []string{"steam.exe", "discord"})

	assert.Equal(t, []string{"Steam.exe"}, killed)
	assert.True(t, steam.killed)
	assert.False(t, editor.killed)
	assert.False(t, discord.killed)
}

func TestBlockAppsListError(t *testing.T) {
	apps := &Apps{
		List: func(_ context.Context) ([]Process, error) {
			return nil, errors.New("boom")
		},
	}

	assert.Empty(t, apps.BlockApps(context.Background(), []string{"steam"}))
}

func TestBlockAppsNoNames(t *testing.T) {
	called := false

	apps := &Apps{
		List: func(_ context.Context) ([]Process, error) {
			called = true
			return nil, nil
		},
	}

	assert.Nil(t, apps.BlockApps(context.Background(), nil))
	assert.False(t, called)
}
