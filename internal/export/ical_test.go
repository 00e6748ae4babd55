package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/model"
)

func TestBuildCalendarOneEventPerSlot(t *testing.T) {
	t.Parallel()

	active := weeklyAlert([]model.Weekday{model.Friday, model.Monday}, model.AlertTime{Hours: 8}, model.AlertTime{Hours: 20})
	inactive := weeklyAlert([]model.Weekday{model.Monday}, model.AlertTime{Hours: 9})
	inactive.ID = "a2"
	inactive.IsActive = false

	cal := BuildCalendar([]model.Alert{active, inactive}, wednesdayNoon, time.UTC)

	events := cal.Events()
	require.Len(t, events, 2)

	uid := events[0].Props.Get(ical.PropUID)
	require.NotNil(t, uid)
	assert.Equal(t, "a1-0@pillbot", uid.Value)

	summary := events[1].Props.Get(ical.PropSummary)
	require.NotNil(t, summary)
	assert.Equal(t, "💊 Aspirin", summary.Value)

	rule := events[0].Props.Get(ical.PropRecurrenceRule)
	require.NotNil(t, rule)
	assert.Contains(t, rule.Value, "FREQ=WEEKLY")
	assert.Contains(t, rule.Value, "BYDAY=MO,FR")
}

func TestCalendarFileRoundTrip(t *testing.T) {
	t.Parallel()

	a := weeklyAlert([]model.Weekday{model.Tuesday}, model.AlertTime{Hours: 7, Minutes: 45})

	data, err := CalendarFile([]model.Alert{a}, wednesdayNoon, time.UTC)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "BEGIN:VCALENDAR"))

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)

	start, err := events[0].DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 7, start.Hour())
	assert.Equal(t, 45, start.Minute())
}

func TestCalendarFileWithoutActiveAlerts(t *testing.T) {
	t.Parallel()

	a := weeklyAlert([]model.Weekday{model.Tuesday}, model.AlertTime{Hours: 7})
	a.IsActive = false

	_, err := CalendarFile([]model.Alert{a}, wednesdayNoon, time.UTC)
	assert.ErrorIs(t, err, ErrNothingToExport)
}
