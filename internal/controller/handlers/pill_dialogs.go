package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/pills"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// pillDraft возвращает поля создаваемого pill
func (h *Handlers) pillDraft(telegramID int64) model.PillFields {
	value, _ := h.stateManager.GetData(telegramID, state.KeyPillDraft)
	fields, _ := value.(model.PillFields)
	return fields
}

// readPillName проверяет название pill, отправляя ошибку пользователю
func (h *Handlers) readPillName(ctx context.Context, b *bot.Bot, update *models.Update) (string, bool) {
	name := messageText(update)
	if name == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Pill name is required. Try again:")
		return "", false
	}
	if tooLong(name, PillNameMaxLength) {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ The name is too long. Maximum %d characters.\n\nTry again:", PillNameMaxLength))
		return "", false
	}
	return name, true
}

// readTotal разбирает количество капсул в упаковке
func (h *Handlers) readTotal(ctx context.Context, b *bot.Bot, update *models.Update) (int, bool) {
	total, ok := parseCount(messageText(update))
	if !ok || total < model.PillMinTotalCapsules || total > PillMaxTotalCapsules {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Enter a whole number from %d to %d:", model.PillMinTotalCapsules, PillMaxTotalCapsules))
		return 0, false
	}
	return total, true
}

func (h *Handlers) handleCreatePillName(ctx context.Context, b *bot.Bot, update *models.Update) {
	name, ok := h.readPillName(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	fields := h.pillDraft(telegramID)
	fields.Name = name
	h.stateManager.SetData(telegramID, state.KeyPillDraft, fields)
	h.stateManager.SetState(telegramID, state.StateCreatePillTotal)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Name: <b>"+escapeHTML(name)+"</b>\n\nStep 2 of 3: how many capsules are in the pack?")
}

func (h *Handlers) handleCreatePillTotal(ctx context.Context, b *bot.Bot, update *models.Update) {
	total, ok := h.readTotal(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	fields := h.pillDraft(telegramID)
	fields.TotalCapsules = total
	h.stateManager.SetData(telegramID, state.KeyPillDraft, fields)
	h.stateManager.SetState(telegramID, state.StateCreatePillServing)

	h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
		Text:     fmt.Sprintf("✅ Capsules: %d\n\nStep 3 of 3: how many capsules per serving?", total),
		Keyboard: common.ServingKeyboard(common.PillCreateServing, -1),
	})
}

// handleEditPillField сохраняет название или количество капсул
func (h *Handlers) handleEditPillField(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	pillID := h.stateManager.GetString(telegramID, state.KeyPillID)
	field := h.stateManager.GetString(telegramID, state.KeyField)

	pill, err := h.pills.Get(ctx, telegramID, pillID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.handleError(ctx, b, update, err, "get pill")
		return
	}

	fields := pill.Fields()
	switch field {
	case pills.FieldName:
		name, ok := h.readPillName(ctx, b, update)
		if !ok {
			return
		}
		fields.Name = name
	case pills.FieldTotal:
		total, ok := h.readTotal(ctx, b, update)
		if !ok {
			return
		}
		fields.TotalCapsules = total
	default:
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "⚠️ Choose what to edit in /pills first")
		return
	}

	updated, err := h.pills.Update(ctx, telegramID, pillID, fields)
	if err != nil {
		h.handleError(ctx, b, update, err, "update pill")
		return
	}
	h.stateManager.ClearState(telegramID)

	h.logger.Info("Pill updated via dialog",
		zap.Int64("telegram_id", telegramID),
		zap.String("pill_id", pillID),
		zap.String("field", field))
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.PillViewScreen(updated))
}
