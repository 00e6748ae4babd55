package common

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseArg извлекает аргумент после префикса
// Например: ParseArg("pill_view:abc", "pill_view:") -> "abc"
func ParseArg(data, prefix string) (string, error) {
	arg, ok := strings.CutPrefix(data, prefix)
	if !ok || arg == "" {
		return "", ErrInvalidFormat
	}
	return arg, nil
}

// ParseArgs разбивает аргумент на n частей по ":"
// Например: ParseArgs("pill_set_serving:abc:2", "pill_set_serving:", 2) -> ["abc", "2"]
func ParseArgs(data, prefix string, n int) ([]string, error) {
	arg, err := ParseArg(data, prefix)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(arg, ":", n)
	if len(parts) != n {
		return nil, ErrInvalidFormat
	}
	for _, p := range parts {
		if p == "" {
			return nil, ErrInvalidFormat
		}
	}
	return parts, nil
}

// ParseIntArg извлекает числовой аргумент после префикса
func ParseIntArg(data, prefix string) (int, error) {
	arg, err := ParseArg(data, prefix)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return n, nil
}
