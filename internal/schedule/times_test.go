package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/model"
)

func alertWithTimes(times ...model.AlertTime) model.Alert {
	return model.Alert{TimesPerDay: len(times), AlertTimes: times, IsActive: true}
}

func TestSetTimesPerDay(t *testing.T) {
	t.Parallel()

	t.Run("grows with default time", func(t *testing.T) {
		a := alertWithTimes(model.AlertTime{Hours: 8, Minutes: 0})

		got, err := SetTimesPerDay(a, 3)
		require.NoError(t, err)

		assert.Equal(t, 3, got.TimesPerDay)
		assert.Equal(t, []model.AlertTime{{Hours: 8}, DefaultAlertTime, DefaultAlertTime}, got.AlertTimes)
	})

	t.Run("shrinks from the end", func(t *testing.T) {
		a := alertWithTimes(
			model.AlertTime{Hours: 8},
			model.AlertTime{Hours: 13, Minutes: 30},
			model.AlertTime{Hours: 20},
		)

		got, err := SetTimesPerDay(a, 1)
		require.NoError(t, err)

		assert.Equal(t, 1, got.TimesPerDay)
		assert.Equal(t, []model.AlertTime{{Hours: 8}}, got.AlertTimes)
	})

	t.Run("same value toggles to zero", func(t *testing.T) {
		a := alertWithTimes(model.AlertTime{Hours: 8}, model.AlertTime{Hours: 20})

		got, err := SetTimesPerDay(a, 2)
		require.NoError(t, err)

		assert.Equal(t, 0, got.TimesPerDay)
		assert.Empty(t, got.AlertTimes)
	})

	t.Run("out of range", func(t *testing.T) {
		a := alertWithTimes(model.AlertTime{Hours: 8})

		for _, n := range []int{0, -1, MaxTimesPerDay + 1} {
			got, err := SetTimesPerDay(a, n)
			assert.ErrorIs(t, err, ErrTimesPerDayRange)
			assert.Equal(t, a, got)
		}
	})

	t.Run("does not touch input", func(t *testing.T) {
		a := alertWithTimes(model.AlertTime{Hours: 8}, model.AlertTime{Hours: 9})

		_, err := SetTimesPerDay(a, 1)
		require.NoError(t, err)

		assert.Len(t, a.AlertTimes, 2)
		assert.Equal(t, 2, a.TimesPerDay)
	})
}

func TestResizeKeepsCountAndLengthInSync(t *testing.T) {
	t.Parallel()

	a := model.Alert{}
	for _, n := range []int{1, 5, 2, 4, 0, 3} {
		a = ResizeTimes(a, n)
		assert.Equal(t, n, a.TimesPerDay)
		assert.Len(t, a.AlertTimes, n)
	}
}

func TestEditTime(t *testing.T) {
	t.Parallel()

	base := alertWithTimes(model.AlertTime{Hours: 8}, model.AlertTime{Hours: 20})

	tests := []struct {
		name  string
		input string
		want  model.AlertTime
	}{
		{name: "plain", input: "09:15", want: model.AlertTime{Hours: 9, Minutes: 15}},
		{name: "single digits", input: "7:5", want: model.AlertTime{Hours: 7, Minutes: 5}},
		{name: "clamped", input: "25:75", want: model.AlertTime{Hours: 23, Minutes: 59}},
		{name: "negative", input: "-3:-1", want: model.AlertTime{Hours: 0, Minutes: 0}},
		{name: "spaces", input: " 10 : 05 ", want: model.AlertTime{Hours: 10, Minutes: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EditTime(base, 1, tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.AlertTimes[1])
			assert.Equal(t, model.AlertTime{Hours: 8}, got.AlertTimes[0])
			assert.Equal(t, 2, got.TimesPerDay)
			assert.Len(t, got.AlertTimes, 2)
		})
	}
}

func TestEditTimeRejectsBadInput(t *testing.T) {
	t.Parallel()

	base := alertWithTimes(model.AlertTime{Hours: 8})

	for _, input := range []string{"", "8", "ab:cd", "12:xx", "noon"} {
		got, err := EditTime(base, 0, input)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, input)
		assert.Equal(t, base, got)
	}

	_, err := EditTime(base, 3, "10:00")
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
}

func TestDeleteTimeByPosition(t *testing.T) {
	t.Parallel()

	same := model.AlertTime{Hours: 8}
	a := alertWithTimes(same, model.AlertTime{Hours: 12}, same)

	got, err := DeleteTime(a, 2)
	require.NoError(t, err)

	assert.Equal(t, []model.AlertTime{same, {Hours: 12}}, got.AlertTimes)
	assert.Equal(t, 2, got.TimesPerDay)

	got, err = DeleteTime(got, 0)
	require.NoError(t, err)
	got, err = DeleteTime(got, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, got.TimesPerDay)
	assert.Empty(t, got.AlertTimes)

	_, err = DeleteTime(got, 0)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	assert.Len(t, a.AlertTimes, 3)
}
