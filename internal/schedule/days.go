package schedule

import (
	"fmt"

	"github.com/Freeeeeet/pillbot/internal/model"
)

// NormalizeDays приводит дни к каноническим названиям, убирает дубликаты и
// неизвестные значения. Порядок добавления сохраняется.
func NormalizeDays[S ~string](days []S) []model.Weekday {
	out := make([]model.Weekday, 0, len(days))
	seen := make(map[model.Weekday]bool, len(days))
	for _, raw := range days {
		day, ok := model.ParseWeekday(string(raw))
		if !ok || seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	return out
}

// SortedDays возвращает дни в каноническом порядке Sunday..Saturday
func SortedDays(days []model.Weekday) []model.Weekday {
	selected := make(map[model.Weekday]bool, len(days))
	for _, d := range NormalizeDays(days) {
		selected[d] = true
	}

	out := make([]model.Weekday, 0, len(selected))
	for _, d := range model.Weekdays {
		if selected[d] {
			out = append(out, d)
		}
	}
	return out
}

// ToggleDay добавляет день, если его нет, и убирает, если он уже выбран.
// Сравнение без учёта регистра.
func ToggleDay(a model.Alert, day string) (model.Alert, error) {
	wd, ok := model.ParseWeekday(day)
	if !ok {
		return a, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}

	out := a.Clone()
	current := NormalizeDays(a.DaysOfWeek)

	if containsDay(current, wd) {
		next := make([]model.Weekday, 0, len(current))
		for _, d := range current {
			if d != wd {
				next = append(next, d)
			}
		}
		out.DaysOfWeek = next
		return out, nil
	}

	out.DaysOfWeek = append(current, wd)
	return out, nil
}

// ToggleAllDays: если выбраны все 7 дней - очищает выбор, иначе выбирает все
// в каноническом порядке
func ToggleAllDays(a model.Alert) model.Alert {
	out := a.Clone()
	if AllDaysSelected(a) {
		out.DaysOfWeek = []model.Weekday{}
		return out
	}
	out.DaysOfWeek = append([]model.Weekday(nil), model.Weekdays...)
	return out
}

// AllDaysSelected проверяет, выбраны ли все дни недели
func AllDaysSelected(a model.Alert) bool {
	return len(NormalizeDays(a.DaysOfWeek)) == len(model.Weekdays)
}

func containsDay(days []model.Weekday, day model.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
