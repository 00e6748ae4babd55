package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
)

// HandleBackToMain возвращает пользователя к главному меню.
// Открытый черновик при этом отбрасывается.
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithSession(ctx, b, callback, h, func(hc *HandlerContext) {
		if draft, ok := h.StateManager.Draft(hc.TelegramID); ok {
			draft.Cancel()
		}
		hc.ClearState()
		hc.Show(MainMenuScreen(hc.Session.User))
		hc.Answer("")
	})
}

// HandleNoop подтверждает нажатие кнопки-индикатора
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, _ *callbacktypes.Handler) {
	AnswerCallback(ctx, b, callback.ID, "")
}
