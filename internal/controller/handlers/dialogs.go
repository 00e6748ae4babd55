package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/state"
)

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("Text message",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 I don't understand. Use /help to see the commands.")
		return
	}
	h.stateManager.Touch(telegramID)

	switch currentState {
	case state.StateRegisterFirstName:
		h.handleRegisterFirstName(ctx, b, update)
	case state.StateRegisterLastName:
		h.handleRegisterLastName(ctx, b, update)
	case state.StateRegisterUsername:
		h.handleRegisterUsername(ctx, b, update)
	case state.StateRegisterPassword:
		h.handleRegisterPassword(ctx, b, update)
	case state.StateRegisterGender:
		h.handleRegisterGender(ctx, b, update)
	case state.StateRegisterDateOfBirth:
		h.handleRegisterDateOfBirth(ctx, b, update)
	case state.StateRegisterPhone:
		h.handleRegisterPhone(ctx, b, update)
	case state.StateVerifyOTP:
		h.handleVerifyOTP(ctx, b, update)

	case state.StateLoginUsername:
		h.handleLoginUsername(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update)

	case state.StateForgotPhone:
		h.handleForgotPhone(ctx, b, update)
	case state.StateResetOTP:
		h.handleResetOTP(ctx, b, update)
	case state.StateResetPassword:
		h.handleResetPassword(ctx, b, update)

	case state.StateProfileField:
		h.handleProfileField(ctx, b, update)

	case state.StateCreatePillName:
		h.handleCreatePillName(ctx, b, update)
	case state.StateCreatePillTotal:
		h.handleCreatePillTotal(ctx, b, update)
	case state.StateCreatePillServing:
		h.sendError(ctx, b, update.Message.Chat.ID, "👆 Choose the number of capsules per serving with the buttons above.")
	case state.StateEditPillField:
		h.handleEditPillField(ctx, b, update)

	case state.StateAlertTime:
		h.handleAlertTime(ctx, b, update)
	case state.StateAlertEditor:
		h.sendError(ctx, b, update.Message.Chat.ID, "👆 Use the buttons of the alert editor, or /cancel to stop editing.")

	default:
		h.logger.Warn("Unknown dialog state",
			zap.Int64("telegram_id", telegramID),
			zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}

// deleteSecret удаляет сообщение с паролем из чата
func (h *Handlers) deleteSecret(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.ID,
	})
	if err != nil {
		h.logger.Debug("Failed to delete password message",
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.Error(err))
	}
}
