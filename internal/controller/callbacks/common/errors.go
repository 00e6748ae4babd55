package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/schedule"
	"github.com/Freeeeeet/pillbot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoDraft       = errors.New("no alert is being edited")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var (
		scheduleErr *schedule.ValidationError
		serviceErr  *service.ValidationError
		apiErr      *api.Error
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &scheduleErr):
		return "⚠️ " + scheduleErr.Message
	case errors.As(err, &serviceErr):
		return "⚠️ " + serviceErr.Message
	case errors.Is(err, schedule.ErrInvalidTimeFormat):
		return "⚠️ Invalid time format. Use HH:MM, for example 08:30"
	case errors.Is(err, schedule.ErrSlotOutOfRange):
		return "⚠️ This time slot no longer exists"
	case errors.Is(err, schedule.ErrTimesPerDayRange):
		return "⚠️ Choose between 1 and 5 times per day"
	case errors.Is(err, schedule.ErrUnknownDay):
		return "⚠️ Unknown day of week"
	case errors.Is(err, schedule.ErrDraftBusy), errors.Is(err, service.ErrOperationInFlight):
		return "⏳ Saving is already in progress, please wait"
	case errors.Is(err, schedule.ErrDraftClosed), errors.Is(err, ErrNoDraft):
		return "⚠️ This alert is no longer being edited. Use /newalert or /alerts"
	case errors.Is(err, service.ErrUnauthenticated):
		return "🔒 Please log in with /login"
	case errors.Is(err, service.ErrPillNotFound):
		return "❌ Pill not found"
	case errors.Is(err, service.ErrAlertNotFound):
		return "❌ Alert not found"
	case errors.Is(err, ErrNoMessage):
		return "❌ Message is no longer available"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid button data"
	case errors.As(err, &apiErr):
		return "❌ " + apiErr.Message
	default:
		return "❌ Something went wrong"
	}
}

// IsMessageNotModifiedError проверяет ошибку Telegram о неизменённом сообщении
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
