package schedule

import "github.com/Freeeeeet/pillbot/internal/model"

// Validate проверяет alert перед отправкой и возвращает первую найденную ошибку:
// дни, число приёмов, pills, слоты времени
func Validate(a model.Alert) error {
	if len(NormalizeDays(a.DaysOfWeek)) == 0 {
		return ErrNoDays
	}
	if a.TimesPerDay < 1 {
		return ErrNoTimesPerDay
	}
	if len(ValidPills(a.Pills)) == 0 {
		return ErrNoPills
	}
	if len(a.AlertTimes) != a.TimesPerDay {
		return ErrAlertTimesIncomplete
	}
	for _, t := range a.AlertTimes {
		if !ValidTime(t) {
			return ErrAlertTimesIncomplete
		}
	}
	return nil
}

// ValidateWithCatalog проверяет alert после отбрасывания ссылок на удалённые pills
func ValidateWithCatalog(a model.Alert, catalog []model.Pill) error {
	return Validate(ResolvePills(a, catalog))
}
