package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/pillbot/internal/model"
)

// MaxTimesPerDay максимальное число приёмов в сутки в выборе "сколько раз в день"
const MaxTimesPerDay = 5

// DefaultAlertTime время нового слота
var DefaultAlertTime = model.AlertTime{Hours: 12, Minutes: 0}

// SetTimesPerDay обрабатывает выбор числа приёмов в день.
// Повторный выбор уже активного значения сбрасывает его в 0 ("не выбрано").
func SetTimesPerDay(a model.Alert, n int) (model.Alert, error) {
	if n < 1 || n > MaxTimesPerDay {
		return a, ErrTimesPerDayRange
	}
	if a.TimesPerDay == n {
		n = 0
	}
	return ResizeTimes(a, n), nil
}

// ResizeTimes меняет число слотов до n, сохраняя значения существующих слотов.
// Лишние слоты отбрасываются с конца, новые получают DefaultAlertTime.
// TimesPerDay и AlertTimes меняются вместе.
func ResizeTimes(a model.Alert, n int) model.Alert {
	if n < 0 {
		n = 0
	}

	out := a.Clone()
	times := make([]model.AlertTime, n)
	kept := copy(times, a.AlertTimes)
	for i := kept; i < n; i++ {
		times[i] = DefaultAlertTime
	}

	out.AlertTimes = times
	out.TimesPerDay = n
	return out
}

// EditTime заменяет время слота index значением из строки "HH:MM".
// При нечисловом вводе возвращает ErrInvalidTimeFormat и alert без изменений.
func EditTime(a model.Alert, index int, input string) (model.Alert, error) {
	if index < 0 || index >= len(a.AlertTimes) {
		return a, ErrSlotOutOfRange
	}

	t, err := ParseClock(input)
	if err != nil {
		return a, err
	}

	out := a.Clone()
	out.AlertTimes[index] = t
	return out, nil
}

// DeleteTime удаляет слот по позиции (не по значению).
// Удаление последнего слота оставляет alert в состоянии "время не выбрано".
func DeleteTime(a model.Alert, index int) (model.Alert, error) {
	if index < 0 || index >= len(a.AlertTimes) {
		return a, ErrSlotOutOfRange
	}

	out := a.Clone()
	out.AlertTimes = append(out.AlertTimes[:index], out.AlertTimes[index+1:]...)
	out.TimesPerDay = len(out.AlertTimes)
	return out, nil
}

// ParseClock разбирает "HH:MM". Числа вне диапазона прижимаются к границам:
// "25:75" -> 23:59. Нечисловые части дают ErrInvalidTimeFormat.
func ParseClock(input string) (model.AlertTime, error) {
	hoursStr, minutesStr, ok := strings.Cut(strings.TrimSpace(input), ":")
	if !ok {
		return model.AlertTime{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(hoursStr))
	if err != nil {
		return model.AlertTime{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(minutesStr))
	if err != nil {
		return model.AlertTime{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
	}

	return model.AlertTime{
		Hours:   min(max(hours, 0), 23),
		Minutes: min(max(minutes, 0), 59),
	}, nil
}

// ValidTime проверяет диапазоны часов и минут
func ValidTime(t model.AlertTime) bool {
	return t.Hours >= 0 && t.Hours <= 23 && t.Minutes >= 0 && t.Minutes <= 59
}
