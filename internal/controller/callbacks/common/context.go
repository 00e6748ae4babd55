package common

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
	"github.com/Freeeeeet/pillbot/internal/service"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Session    *model.Session
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadSession загружает сессию; без токена или профиля возвращает service.ErrUnauthenticated
func (hc *HandlerContext) LoadSession() error {
	session, err := hc.Handler.Auth.RequireSession(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	hc.Session = session
	return nil
}

// Draft возвращает открытый черновик или ErrNoDraft
func (hc *HandlerContext) Draft() (*schedule.Draft, error) {
	draft, ok := hc.Handler.StateManager.Draft(hc.TelegramID)
	if !ok {
		return nil, ErrNoDraft
	}
	return draft, nil
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	// "message is not modified" не ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// Show редактирует сообщение экраном и логирует ошибку
func (hc *HandlerContext) Show(screen Screen) {
	if err := hc.EditMessage(screen.Text, screen.Keyboard); err != nil {
		LogError(hc, err, "edit message")
	}
}

// DeleteMessage удаляет сообщение
func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})

	return err
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    hc.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.SendMessage(hc.Ctx, params)
	return err
}

// RedirectToLogin сбрасывает диалог и заменяет экран приглашением войти
func (hc *HandlerContext) RedirectToLogin() {
	hc.ClearState()
	hc.Show(LoginPromptScreen())
	hc.Answer("Please log in")
}

// ClearState очищает состояние пользователя
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState устанавливает состояние пользователя
func (hc *HandlerContext) SetState(s state.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, s)
}

// SetData устанавливает данные в state
func (hc *HandlerContext) SetData(key string, value any) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

// GetData получает данные из state
func (hc *HandlerContext) GetData(key string) (any, bool) {
	return hc.Handler.StateManager.GetData(hc.TelegramID, key)
}

// IsUnauthenticated true, если действие требует повторного входа
func IsUnauthenticated(err error) bool {
	return errors.Is(err, service.ErrUnauthenticated)
}
