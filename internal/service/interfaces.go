package service

import (
	"context"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// SessionStore хранилище сессий (реализовано в repository.SessionRepository)
type SessionStore interface {
	Get(ctx context.Context, telegramID int64) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, telegramID int64) error
}

// AuthAPI методы авторизации API
type AuthAPI interface {
	Signup(ctx context.Context, req api.SignupRequest) (string, error)
	Login(ctx context.Context, username, password string) (*api.AuthResult, error)
	VerifyOTP(ctx context.Context, phone, otp, purpose string) (*api.AuthResult, error)
	ResendOTP(ctx context.Context, phone string) (string, error)
	ForgotPassword(ctx context.Context, phone string) (string, error)
	ResetPassword(ctx context.Context, phone, otp, newPassword string) (string, error)
	UpdateMe(ctx context.Context, token string, update api.ProfileUpdate) (*api.ProfileResult, error)
}

// PillAPI методы каталога pills
type PillAPI interface {
	ListPills(ctx context.Context, token string) ([]model.Pill, error)
	CreatePill(ctx context.Context, token string, fields model.PillFields) (model.Pill, error)
	UpdatePill(ctx context.Context, token, id string, fields model.PillFields) (model.Pill, error)
	DeletePill(ctx context.Context, token, id string) error
}

// AlertAPI методы alerts
type AlertAPI interface {
	ListAlerts(ctx context.Context, token string) ([]model.Alert, error)
	CreateAlert(ctx context.Context, token string, a model.Alert) (model.Alert, error)
	UpdateAlert(ctx context.Context, token, id string, a model.Alert) (model.Alert, error)
	DeleteAlert(ctx context.Context, token, id string) error
}

// Sessions доступ к текущей сессии для защищённых операций
type Sessions interface {
	RequireSession(ctx context.Context, telegramID int64) (*model.Session, error)
	Invalidate(ctx context.Context, telegramID int64) error
}
