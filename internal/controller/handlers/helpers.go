package handlers

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/pillbot/internal/service"
)

// messageText возвращает текст сообщения без пробелов по краям
func messageText(update *models.Update) string {
	return strings.TrimSpace(update.Message.Text)
}

// parseCount разбирает неотрицательное целое число
func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// tooLong проверяет длину в символах, а не байтах
func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

// escapeHTML экранирует пользовательский текст для HTML
func escapeHTML(s string) string {
	return formatting.Escape(s)
}

// validUsername проверяет длину и отсутствие пробелов
func validUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

// matchGender сопоставляет ввод без учёта регистра с допустимым значением
func matchGender(s string) (string, bool) {
	for _, g := range service.Genders {
		if strings.EqualFold(g, s) {
			return g, true
		}
	}
	return "", false
}

// isOTP проверяет что код состоит из 6 цифр
func isOTP(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
