package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
)

// WithSession создаёт HandlerContext и загружает сессию.
// Без входа пользователь видит приглашение /login, handler не вызывается.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		if IsUnauthenticated(err) {
			hc.RedirectToLogin()
			return
		}
		h.Logger.Error("Failed to load session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithDraft как WithSession, но дополнительно требует открытый черновик alert
func WithDraft(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		if _, err := hc.Draft(); err != nil {
			hc.AnswerAlert(ErrorMessage(err))
			return
		}
		h.StateManager.Touch(hc.TelegramID)
		handler(hc)
	})
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю.
// Истёкшая сессия ведёт на экран входа.
func HandleError(hc *HandlerContext, err error, operation string) {
	if IsUnauthenticated(err) {
		hc.Handler.Logger.Info("Session required",
			zap.String("operation", operation),
			zap.Int64("telegram_id", hc.TelegramID))
		hc.RedirectToLogin()
		return
	}
	LogError(hc, err, operation)
	hc.AnswerAlert(ErrorMessage(err))
}

// LogError логирует ошибку операции
func LogError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	hc.Handler.Logger.Info(message, zap.Int64("telegram_id", hc.TelegramID))
	hc.Answer(answer)
}
