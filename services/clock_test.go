package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClockDefaultsAndRejectsBadZones(t *testing.T) {
	clock, err := NewClock("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeZone, clock.Location().String())

	_, err = NewClock("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestTodayAndYesterday(t *testing.T) {
	clock := fixedClock(t, "2025-08-15 23:59")

	today := clock.Today()
	assert.Equal(t, 2025, today.Year())
	assert.Equal(t, time.August, today.Month())
	assert.Equal(t, 15, today.Day())
	assert.Equal(t, 0, today.Hour())

	assert.Equal(t, 14, clock.Yesterday().Day())
}

func TestSameDayNormalizesToCanonicalZone(t *testing.T) {
	clock := fixedClock(t, "2025-08-15 10:00")

	// 2025-08-16 01:00 UTC is still the evening of the 15th in New York.
	utcEvening := time.Date(2025, 8, 16, 1, 0, 0, 0, time.UTC)
	nyMorning := time.Date(2025, 8, 15, 8, 0, 0, 0, clock.Location())
	assert.True(t, clock.SameDay(utcEvening, nyMorning))

	nextDay := time.Date(2025, 8, 16, 8, 0, 0, 0, clock.Location())
	assert.False(t, clock.SameDay(nyMorning, nextDay))
}

func TestMonthKeys(t *testing.T) {
	clock := fixedClock(t, "2025-08-15 10:00")

	assert.Equal(t, "2025-08", clock.CurrentMonth())
	assert.Equal(t, "2025-03", clock.MonthKey(time.Date(2025, 3, 1, 12, 0, 0, 0, clock.Location())))
}

func TestISOWeekKeyMondayStart(t *testing.T) {
	clock := fixedClock(t, "2025-08-15 10:00")
	loc := clock.Location()

	monday := time.Date(2025, 8, 18, 0, 0, 0, 0, loc)
	sunday := time.Date(2025, 8, 24, 23, 0, 0, 0, loc)
	nextMonday := time.Date(2025, 8, 25, 0, 0, 0, 0, loc)

	assert.Equal(t, clock.ISOWeekKey(monday), clock.ISOWeekKey(sunday))
	assert.NotEqual(t, clock.ISOWeekKey(monday), clock.ISOWeekKey(nextMonday))
	assert.Equal(t, "2025-W34", clock.ISOWeekKey(monday))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2025-07", "2025-08", 1},
		{"2025-05", "2025-08", 3},
		{"2024-11", "2025-01", 2},
		{"2025-08", "2025-08", 0},
		{"garbage", "2025-08", 12},
		{"2025-08", "", 12},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MonthsBetween(tc.from, tc.to), "%s → %s", tc.from, tc.to)
	}
}
