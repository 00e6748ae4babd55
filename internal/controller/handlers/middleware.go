package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// requireSession проверяет что пользователь вошёл.
// Без сессии отправляет приглашение /login и возвращает false.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	session, err := h.auth.RequireSession(ctx, telegramID)
	if err != nil {
		h.handleError(ctx, b, update, err, "require session")
		return nil, false
	}

	return session, true
}

// handleError показывает ошибку; истёкшая сессия ведёт на экран входа
func (h *Handlers) handleError(ctx context.Context, b *bot.Bot, update *models.Update, err error, operation string) {
	chatID := update.Message.Chat.ID
	if common.IsUnauthenticated(err) {
		h.stateManager.ClearState(update.Message.From.ID)
		h.sendScreen(ctx, b, chatID, common.LoginPromptScreen())
		return
	}

	h.logger.Warn("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", update.Message.From.ID),
		zap.Error(err))
	h.sendError(ctx, b, chatID, common.ErrorMessage(err))
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.sendScreen(ctx, b, chatID, common.Screen{Text: text})
}

// sendScreen отправляет экран с клавиатурой
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64, screen common.Screen) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      screen.Text,
		ParseMode: models.ParseModeHTML,
	}
	if screen.Keyboard != nil {
		params.ReplyMarkup = screen.Keyboard
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
