package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRangeDefault(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 4, 0, 0, time.Local)

	start, end, err := historyRange("", "", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, now, end)
}

func TestHistoryRangeExplicit(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 4, 0, 0, time.Local)

	start, end, err := historyRange("2026-03-01", "2026-03-05", now)
	require.NoError(t, err)

	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 5, end.Day())
}

func TestHistoryRangeInvalid(t *testing.T) {
	now := time.Now()

	_, _, err := historyRange("2026-03-05", "2026-03-01", now)
	require.ErrorIs(t, err, errInvalidDateRange)

	_, _, err = historyRange("", "", now)
	require.NoError(t, err)
}
