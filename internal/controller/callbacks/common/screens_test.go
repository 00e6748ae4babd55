package common

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
	"github.com/Freeeeeet/pillbot/internal/service"
)

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			out = append(out, btn.CallbackData)
		}
	}
	return out
}

func labels(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			out = append(out, btn.Text)
		}
	}
	return out
}

func TestAlertEditorScreen_NewDraft(t *testing.T) {
	t.Parallel()

	screen := AlertEditorScreen(schedule.NewDraft())

	assert.Contains(t, screen.Text, "New alert")
	assert.Contains(t, screen.Text, "Times per day: not chosen")
	assert.Contains(t, screen.Text, "Pills: none")

	data := callbacks(screen.Keyboard)
	for n := 1; n <= schedule.MaxTimesPerDay; n++ {
		assert.Contains(t, data, fmt.Sprintf("%s%d", EditorTimesPerDay, n))
	}
	for _, day := range model.Weekdays {
		assert.Contains(t, data, EditorDay+string(day))
	}
	assert.Contains(t, data, EditorSave)
	assert.Contains(t, data, EditorCancel)
	assert.Contains(t, labels(screen.Keyboard), "📅 All week")
}

func TestAlertEditorScreen_Filled(t *testing.T) {
	t.Parallel()

	draft := schedule.BeginEdit(model.Alert{
		ID:          "a1",
		DaysOfWeek:  model.Weekdays,
		TimesPerDay: 2,
		AlertTimes:  []model.AlertTime{{Hours: 8}, {Hours: 20, Minutes: 15}},
		IsActive:    false,
		Pills:       []model.Pill{{ID: "p1", Name: "Fish <oil>"}},
	}, nil)

	screen := AlertEditorScreen(draft)

	assert.Contains(t, screen.Text, "Editing alert")
	assert.Contains(t, screen.Text, "every day")
	assert.Contains(t, screen.Text, "08:00, 20:15")
	assert.NotContains(t, screen.Text, "<oil>")

	data := callbacks(screen.Keyboard)
	assert.Contains(t, data, EditorSetTime+"1")
	assert.Contains(t, data, EditorDeleteTime+"0")
	assert.Contains(t, data, EditorRemovePill+"p1")

	text := labels(screen.Keyboard)
	assert.Contains(t, text, "✅ 2×")
	assert.Contains(t, text, "🧹 Remove all")
	assert.Contains(t, text, "🔕 Inactive")
}

func TestAlertEditorScreen_ShowsFailure(t *testing.T) {
	t.Parallel()

	draft := schedule.NewDraft()
	_, err := draft.Commit(t.Context(), nil, nil)
	require.Error(t, err)

	screen := AlertEditorScreen(draft)
	assert.Contains(t, screen.Text, "Please select at least one day")
}

func TestPillPickerScreen(t *testing.T) {
	t.Parallel()

	catalog := []model.Pill{{ID: "p1", Name: "Aspirin"}, {ID: "p2", Name: "Iron"}}
	screen := PillPickerScreen(model.Alert{Pills: []model.Pill{{ID: "p2", Name: "Iron"}}}, catalog)

	assert.Equal(t, []string{"⬜ Aspirin", "☑️ Iron", "✅ Done"}, labels(screen.Keyboard))
	assert.Equal(t, []string{EditorPick + "p1", EditorPick + "p2", EditorShow}, callbacks(screen.Keyboard))

	empty := PillPickerScreen(model.Alert{}, nil)
	assert.Contains(t, empty.Text, "/addpill")
}

func TestPillListScreen_Paginates(t *testing.T) {
	t.Parallel()

	pills := make([]model.Pill, 10)
	for i := range pills {
		pills[i] = model.Pill{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Pill %d", i), TotalCapsules: 1}
	}

	screen := PillListScreen(pills, 1)
	data := callbacks(screen.Keyboard)

	assert.Contains(t, data, PillView+"p9")
	assert.NotContains(t, data, PillView+"p0")
	assert.Contains(t, data, PillsPage+"0")
	assert.Contains(t, data, PillAdd)
}

func TestAlertListScreen(t *testing.T) {
	t.Parallel()

	alerts := []model.Alert{
		{ID: "a1", DaysOfWeek: []model.Weekday{model.Monday}, AlertTimes: []model.AlertTime{{Hours: 9}}, IsActive: true},
		{ID: "a2", IsActive: false},
	}

	screen := AlertListScreen(alerts, 0)

	assert.Contains(t, screen.Text, "2 alerts, 1 active.")
	assert.Equal(t, "🔔 09:00 · Mon", labels(screen.Keyboard)[0])
	assert.Contains(t, callbacks(screen.Keyboard), AlertView+"a2")
}

func TestAlertViewScreen_NextReminder(t *testing.T) {
	t.Parallel()

	a := model.Alert{ID: "a1", IsActive: true}
	next := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	withNext := AlertViewScreen(a, next, true)
	assert.Contains(t, withNext.Text, "Next: Fri 16 Oct 08:00")
	assert.Contains(t, labels(withNext.Keyboard), "🔕 Pause")

	a.IsActive = false
	without := AlertViewScreen(a, next, false)
	assert.NotContains(t, without.Text, "Next:")
	assert.Contains(t, labels(without.Keyboard), "🔔 Activate")
}

func TestProfileScreenEscapesUserData(t *testing.T) {
	t.Parallel()

	screen := ProfileScreen(&model.User{Username: "tom & jerry", FirstName: "Ann"})

	assert.Contains(t, screen.Text, "tom &amp; jerry")
	assert.Contains(t, screen.Text, "Last name: -")
	assert.Contains(t, callbacks(screen.Keyboard), EditProfile+ProfilePhone)
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", schedule.ErrNoPills, "⚠️ Please select at least one pill"},
		{"service validation", &service.ValidationError{Field: "name", Message: "Name is required"}, "⚠️ Name is required"},
		{"time format", fmt.Errorf("edit: %w", schedule.ErrInvalidTimeFormat), "⚠️ Invalid time format. Use HH:MM, for example 08:30"},
		{"in flight", service.ErrOperationInFlight, "⏳ Saving is already in progress, please wait"},
		{"api", fmt.Errorf("create pill: %w", &api.Error{Op: "create pill", StatusCode: 400, Message: "Name taken"}), "❌ Name taken"},
		{"unauthenticated", service.ErrUnauthenticated, "🔒 Please log in with /login"},
		{"unknown", errors.New("boom"), "❌ Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	id, err := ParseArg(PillView+"abc", PillView)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = ParseArg(PillView, PillView)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	parts, err := ParseArgs(PillSetServing+"abc:2", PillSetServing, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "2"}, parts)

	_, err = ParseArgs(PillSetServing+"abc", PillSetServing, 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	n, err := ParseIntArg(EditorTimesPerDay+"3", EditorTimesPerDay)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseIntArg(EditorTimesPerDay+"x", EditorTimesPerDay)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestServingKeyboard(t *testing.T) {
	t.Parallel()

	kb := ServingKeyboard(PillCreateServing, 1)
	assert.Equal(t, []string{"0", "✅ 1", "2", "3"}, labels(kb))
	assert.True(t, strings.HasPrefix(callbacks(kb)[3], PillCreateServing))
}
