package schedule

import (
	"errors"
	"fmt"
)

// Локальные ошибки редактирования: не приводят к сетевым вызовам
// и не меняют состояние alert
var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	ErrSlotOutOfRange    = errors.New("alert time slot does not exist")
	ErrTimesPerDayRange  = fmt.Errorf("times per day must be between 1 and %d", MaxTimesPerDay)
	ErrUnknownDay        = errors.New("unknown day of week")
	ErrDraftBusy         = errors.New("alert is being saved")
	ErrDraftClosed       = errors.New("alert editing is already finished")
)

// ValidationError ошибка проверки перед отправкой. Message показывается пользователю как есть.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Ошибки Validate в порядке проверки
var (
	ErrNoDays               = &ValidationError{Field: "daysOfWeek", Message: "Please select at least one day"}
	ErrNoTimesPerDay        = &ValidationError{Field: "timesPerDay", Message: "Please select times per day"}
	ErrNoPills              = &ValidationError{Field: "pills", Message: "Please select at least one pill"}
	ErrAlertTimesIncomplete = &ValidationError{Field: "alertTimes", Message: "Please set all alert times"}
)

// IsValidationError проверяет, является ли ошибка локальной ошибкой валидации
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
