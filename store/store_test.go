package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/detox/internal/models"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "detox.db")

	c, err := NewClient(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, dbPath
}

func TestSaveAndGetSessions(t *testing.T) {
	c, _ := newTestClient(t)

	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

	sessions := []*models.Session{
		{
			StartTime:    base,
			EndTime:      base.Add(30 * time.Minute),
			Authority:    "manual",
			Minutes:      30,
			SitesBlocked: 4,
		},
		{
			StartTime:  base.Add(2 * time.Hour),
			EndTime:    base.Add(3 * time.Hour),
			Authority:  "limit",
			Minutes:    60,
			AppsKilled: []string{"steam"},
		},
		{
			StartTime: base.Add(48 * time.Hour),
			EndTime:   base.Add(49 * time.Hour),
			Authority: "schedule",
			Minutes:   60,
		},
	}

	for _, s := range sessions {
		require.NoError(t, c.SaveSession(s))
	}

	got, err := c.GetSessions(base, base.Add(24*time.Hour))
	require.NoError(t, err)

	if diff := cmp.Diff(sessions[:2], got); diff != "" {
		t.Errorf("sessions mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, c.DeleteSessions(got[:1]))

	got, err = c.GetSessions(time.Time{}, base.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "limit", got[0].Authority)
}

func TestSingleInstance(t *testing.T) {
	_, dbPath := newTestClient(t)

	running, err := IsRunning(dbPath)
	require.NoError(t, err)
	assert.True(t, running)

	_, err = NewClient(dbPath)
	assert.ErrorIs(t, err, ErrDetoxRunning)
}

func TestIsRunningWithoutInstance(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "detox.db")

	running, err := IsRunning(dbPath)
	require.NoError(t, err)
	assert.False(t, running)
}

func TestStatusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	s, err := ReadStatus(path)
	require.NoError(t, err)
	assert.Nil(t, s)

	want := &models.Status{
		Phase:              "active",
		StartedAt:          time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC),
		AccumulatedMinutes: 12,
		ElapsedMinutes:     3,
		LimitEnabled:       true,
		LimitMinutes:       30,
		LockedMode:         true,
	}

	require.NoError(t, WriteStatus(path, want))

	got, err := ReadStatus(path)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}

	remaining, ok := got.RemainingMinutes()
	assert.True(t, ok)
	assert.Equal(t, uint(15), remaining)

	require.NoError(t, RemoveStatus(path))
	require.NoError(t, RemoveStatus(path))
}
