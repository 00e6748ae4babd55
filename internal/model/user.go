package model

import "time"

// User профиль пользователя на стороне API
type User struct {
	ID          string `json:"_id,omitempty"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// DisplayName возвращает имя для приветствий
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// Session сохранённые данные авторизации Telegram-пользователя
type Session struct {
	TelegramID int64     `json:"telegram_id"`
	Token      string    `json:"token"`
	User       *User     `json:"user"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAuthenticated требует одновременно токен и профиль пользователя
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}
