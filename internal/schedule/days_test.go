package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/model"
)

func TestToggleDay(t *testing.T) {
	t.Parallel()

	a := model.Alert{DaysOfWeek: []model.Weekday{model.Monday}}

	got, err := ToggleDay(a, "friday")
	require.NoError(t, err)
	assert.Equal(t, []model.Weekday{model.Monday, model.Friday}, got.DaysOfWeek)

	got, err = ToggleDay(got, "MONDAY")
	require.NoError(t, err)
	assert.Equal(t, []model.Weekday{model.Friday}, got.DaysOfWeek)

	_, err = ToggleDay(got, "Funday")
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func TestToggleDayTwiceRestoresSet(t *testing.T) {
	t.Parallel()

	a := model.Alert{DaysOfWeek: []model.Weekday{model.Sunday, model.Wednesday}}

	for _, day := range model.Weekdays {
		once, err := ToggleDay(a, string(day))
		require.NoError(t, err)
		twice, err := ToggleDay(once, string(day))
		require.NoError(t, err)

		assert.ElementsMatch(t, a.DaysOfWeek, twice.DaysOfWeek, day)
	}
}

func TestToggleDayNormalizesMixedCaseInput(t *testing.T) {
	t.Parallel()

	a := model.Alert{DaysOfWeek: []model.Weekday{"monday", "Monday", "Tuesday"}}

	got, err := ToggleDay(a, "Monday")
	require.NoError(t, err)

	assert.Equal(t, []model.Weekday{model.Tuesday}, got.DaysOfWeek)
}

func TestToggleAllDays(t *testing.T) {
	t.Parallel()

	partial := model.Alert{DaysOfWeek: []model.Weekday{model.Saturday, model.Monday}}

	all := ToggleAllDays(partial)
	assert.Equal(t, model.Weekdays, all.DaysOfWeek)
	assert.True(t, AllDaysSelected(all))

	none := ToggleAllDays(all)
	assert.Empty(t, none.DaysOfWeek)

	again := ToggleAllDays(none)
	assert.Equal(t, model.Weekdays, again.DaysOfWeek)
}

func TestNormalizeDays(t *testing.T) {
	t.Parallel()

	got := NormalizeDays([]string{"sunday", " Monday ", "SUNDAY", "Someday", "friday"})
	assert.Equal(t, []model.Weekday{model.Sunday, model.Monday, model.Friday}, got)

	assert.Equal(t, got, NormalizeDays(got))
}

func TestSortedDays(t *testing.T) {
	t.Parallel()

	got := SortedDays([]model.Weekday{model.Saturday, model.Monday, model.Sunday})
	assert.Equal(t, []model.Weekday{model.Sunday, model.Monday, model.Saturday}, got)
}
