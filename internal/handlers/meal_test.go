package handlers

import (
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestParseTimeBoundRFC3339(t *testing.T) {
  got, err := parseTimeBound("2026-08-31T10:00:00Z", false)
  require.NoError(t, err)
  require.NotNil(t, got)
  assert.Equal(t, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), got.UTC())
}

func TestParseTimeBoundBareDateLowerBound(t *testing.T) {
  got, err := parseTimeBound("2026-08-31", false)
  require.NoError(t, err)
  require.NotNil(t, got)
  assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), got.UTC())
}

func TestParseTimeBoundBareDateUpperBoundCoversWholeDay(t *testing.T) {
  got, err := parseTimeBound("2026-08-31", true)
  require.NoError(t, err)
  require.NotNil(t, got)

  endOfDay := time.Date(2026, 8, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
  assert.Equal(t, endOfDay, got.UTC())

  // A meal noted late that evening still falls inside the bound.
  noted := time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)
  assert.False(t, noted.After(*got))
}

func TestParseTimeBoundEmptyMeansUnbounded(t *testing.T) {
  got, err := parseTimeBound("", true)
  require.NoError(t, err)
  assert.Nil(t, got)
}

func TestParseTimeBoundRejectsGarbage(t *testing.T) {
  _, err := parseTimeBound("yesterday", false)
  assert.Error(t, err)
}
