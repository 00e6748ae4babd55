package formatting

import (
	"strings"
	"time"

	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("Mon 02 Jan 15:04")
}

// FormatAlertTime форматирует слот как "HH:MM"
func FormatAlertTime(t model.AlertTime) string {
	return schedule.FormatAlertTime(t)
}

// FormatAlertTimes перечисляет слоты через запятую
func FormatAlertTimes(times []model.AlertTime) string {
	if len(times) == 0 {
		return "not set"
	}
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = FormatAlertTime(t)
	}
	return strings.Join(parts, ", ")
}

// FormatDays выводит дни в каноническом порядке
func FormatDays(days []model.Weekday) string {
	sorted := schedule.SortedDays(days)
	switch {
	case len(sorted) == 0:
		return "no days"
	case len(sorted) == len(model.Weekdays):
		return "every day"
	case isWorkweek(sorted):
		return "weekdays"
	}

	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = WeekdayShortName(d)
	}
	return strings.Join(parts, ", ")
}

func isWorkweek(days []model.Weekday) bool {
	if len(days) != 5 {
		return false
	}
	for _, d := range days {
		if d == model.Saturday || d == model.Sunday {
			return false
		}
	}
	return true
}

// WeekdayShortName возвращает трёхбуквенное название дня ("Mon")
func WeekdayShortName(d model.Weekday) string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}
