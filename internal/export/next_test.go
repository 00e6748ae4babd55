package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/model"
)

// 2026-10-14 - среда
var wednesdayNoon = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func weeklyAlert(days []model.Weekday, times ...model.AlertTime) model.Alert {
	return model.Alert{
		ID:          "a1",
		DaysOfWeek:  days,
		TimesPerDay: len(times),
		AlertTimes:  times,
		IsActive:    true,
		Pills:       []model.Pill{{ID: "p1", Name: "Aspirin", CapsulesPerServing: 1}},
	}
}

func TestNextOccurrenceSameDay(t *testing.T) {
	t.Parallel()

	a := weeklyAlert([]model.Weekday{model.Wednesday}, model.AlertTime{Hours: 8}, model.AlertTime{Hours: 20, Minutes: 30})

	next, ok, err := NextOccurrence(a, wednesdayNoon, time.UTC)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 14, 20, 30, 0, 0, time.UTC), next)
}

func TestNextOccurrenceNextWeek(t *testing.T) {
	t.Parallel()

	a := weeklyAlert([]model.Weekday{model.Wednesday}, model.AlertTime{Hours: 8})

	next, ok, err := NextOccurrence(a, wednesdayNoon, time.UTC)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 21, 8, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrencePicksEarliestDay(t *testing.T) {
	t.Parallel()

	a := weeklyAlert([]model.Weekday{model.Monday, model.Friday}, model.AlertTime{Hours: 9})

	next, ok, err := NextOccurrence(a, wednesdayNoon, time.UTC)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceRespectsLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*60*60)
	a := weeklyAlert([]model.Weekday{model.Thursday}, model.AlertTime{Hours: 1})

	// 22:30 UTC в среду = 01:30 четверга по UTC+3, слот 01:00 уже прошёл
	after := time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC)
	next, ok, err := NextOccurrence(a, after, loc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2026, 10, 22, 1, 0, 0, 0, loc)), next.String())
}

func TestNextOccurrenceInactiveOrEmpty(t *testing.T) {
	t.Parallel()

	inactive := weeklyAlert([]model.Weekday{model.Monday}, model.AlertTime{Hours: 9})
	inactive.IsActive = false

	noDays := weeklyAlert(nil, model.AlertTime{Hours: 9})
	noTimes := weeklyAlert([]model.Weekday{model.Monday})

	for _, a := range []model.Alert{inactive, noDays, noTimes} {
		_, ok, err := NextOccurrence(a, wednesdayNoon, time.UTC)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestNextOfAll(t *testing.T) {
	t.Parallel()

	later := weeklyAlert([]model.Weekday{model.Saturday}, model.AlertTime{Hours: 7})
	sooner := weeklyAlert([]model.Weekday{model.Thursday}, model.AlertTime{Hours: 7})
	sooner.ID = "a2"

	best, at, ok, err := NextOfAll([]model.Alert{later, sooner}, wednesdayNoon, time.UTC)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a2", best.ID)
	assert.Equal(t, time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC), at)
}
