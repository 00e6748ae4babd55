package export

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

var ruleWeekdays = map[model.Weekday]rrule.Weekday{
	model.Sunday:    rrule.SU,
	model.Monday:    rrule.MO,
	model.Tuesday:   rrule.TU,
	model.Wednesday: rrule.WE,
	model.Thursday:  rrule.TH,
	model.Friday:    rrule.FR,
	model.Saturday:  rrule.SA,
}

// SlotOption еженедельное правило для одного слота alert, начиная с дня from
func SlotOption(a model.Alert, slot model.AlertTime, from time.Time, loc *time.Location) (rrule.ROption, bool) {
	days := schedule.SortedDays(a.DaysOfWeek)
	if len(days) == 0 || !schedule.ValidTime(slot) {
		return rrule.ROption{}, false
	}

	byDay := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		byDay = append(byDay, ruleWeekdays[d])
	}

	local := from.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), slot.Hours, slot.Minutes, 0, 0, loc)

	return rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Byweekday: byDay,
	}, true
}

// NextOccurrence ближайшее срабатывание alert строго после after.
// false для неактивного alert и alert без дней или слотов.
func NextOccurrence(a model.Alert, after time.Time, loc *time.Location) (time.Time, bool, error) {
	if !a.IsActive || len(a.AlertTimes) == 0 {
		return time.Time{}, false, nil
	}

	var (
		next  time.Time
		found bool
	)
	// начинаем с предыдущего дня, чтобы не потерять слот в начале суток по loc
	from := after.In(loc).AddDate(0, 0, -1)
	for _, slot := range a.AlertTimes {
		opt, ok := SlotOption(a, slot, from, loc)
		if !ok {
			continue
		}

		r, err := rrule.NewRRule(opt)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("build rule for %s: %w", schedule.FormatAlertTime(slot), err)
		}

		t := r.After(after, false)
		if t.IsZero() {
			continue
		}
		if !found || t.Before(next) {
			next, found = t, true
		}
	}

	return next, found, nil
}

// NextOfAll ближайшее срабатывание среди всех alerts
func NextOfAll(alerts []model.Alert, after time.Time, loc *time.Location) (model.Alert, time.Time, bool, error) {
	var (
		best     model.Alert
		bestTime time.Time
		found    bool
	)
	for _, a := range alerts {
		t, ok, err := NextOccurrence(a, after, loc)
		if err != nil {
			return model.Alert{}, time.Time{}, false, err
		}
		if ok && (!found || t.Before(bestTime)) {
			best, bestTime, found = a, t, true
		}
	}
	return best, bestTime, found, nil
}
