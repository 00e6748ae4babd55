package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

// handleAlertTime принимает "HH:MM" для выбранного слота черновика
func (h *Handlers) handleAlertTime(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	draft, ok := h.stateManager.Draft(telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrNoDraft))
		return
	}
	value, _ := h.stateManager.GetData(telegramID, state.KeySlot)
	slot, ok := value.(int)
	if !ok {
		h.stateManager.SetState(telegramID, state.StateAlertEditor)
		h.sendScreen(ctx, b, chatID, common.AlertEditorScreen(draft))
		return
	}

	input := messageText(update)
	err := draft.Apply(func(a model.Alert) (model.Alert, error) {
		return schedule.EditTime(a, slot, input)
	})
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		// При неверном формате остаёмся на вводе времени, прежнее значение не тронуто
		if !errors.Is(err, schedule.ErrInvalidTimeFormat) {
			h.stateManager.DeleteData(telegramID, state.KeySlot)
			h.stateManager.SetState(telegramID, state.StateAlertEditor)
		}
		return
	}

	h.stateManager.DeleteData(telegramID, state.KeySlot)
	h.stateManager.SetState(telegramID, state.StateAlertEditor)
	h.sendScreen(ctx, b, chatID, common.AlertEditorScreen(draft))
}
