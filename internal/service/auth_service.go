package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
	"go.uber.org/zap"
)

type AuthService struct {
	api      AuthAPI
	sessions SessionStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(authAPI AuthAPI, sessions SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      authAPI,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Register регистрирует пользователя; дальше нужен VerifyOTP с назначением phoneVerification
func (s *AuthService) Register(ctx context.Context, req api.SignupRequest) (string, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Username = strings.TrimSpace(req.Username)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if err := ValidateSignup(req, s.now()); err != nil {
		return "", err
	}

	msg, err := s.api.Signup(ctx, req)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", req.Username))
	return msg, nil
}

// VerifyOTP подтверждает код. Если API вернул токен и профиль, сессия сохраняется.
func (s *AuthService) VerifyOTP(ctx context.Context, telegramID int64, phone, otp, purpose string) (*api.AuthResult, error) {
	phone = strings.TrimSpace(phone)
	otp = strings.TrimSpace(otp)

	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := validateOTP(otp); err != nil {
		return nil, err
	}

	res, err := s.api.VerifyOTP(ctx, phone, otp, purpose)
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	if res.Token != "" && res.User != nil {
		if err := s.saveSession(ctx, telegramID, res.Token, res.User); err != nil {
			return nil, err
		}
	}

	s.logger.Info("OTP verified",
		zap.Int64("telegram_id", telegramID),
		zap.String("purpose", purpose),
	)
	return res, nil
}

// ResendOTP повторно отправляет код на номер
func (s *AuthService) ResendOTP(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", invalid("phoneNumber", "Phone number is missing. Please request OTP again.")
	}

	msg, err := s.api.ResendOTP(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("resend otp: %w", err)
	}
	return msg, nil
}

// ForgotPassword запрашивает OTP для сброса пароля
func (s *AuthService) ForgotPassword(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if err := validatePhone(phone); err != nil {
		return "", err
	}

	msg, err := s.api.ForgotPassword(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return msg, nil
}

// ResetPassword устанавливает новый пароль
func (s *AuthService) ResetPassword(ctx context.Context, phone, otp, newPassword string) (string, error) {
	phone = strings.TrimSpace(phone)
	otp = strings.TrimSpace(otp)

	if err := validatePhone(phone); err != nil {
		return "", err
	}
	if err := validateOTP(otp); err != nil {
		return "", err
	}
	if err := ValidateNewPassword(newPassword); err != nil {
		return "", err
	}

	msg, err := s.api.ResetPassword(ctx, phone, otp, newPassword)
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return msg, nil
}

// Login входит в API и сохраняет сессию
func (s *AuthService) Login(ctx context.Context, telegramID int64, username, password string) (*model.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("userName", "Username is required")
	}
	if password == "" {
		return nil, invalid("password", "Password is required")
	}

	res, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.saveSession(ctx, telegramID, res.Token, res.User); err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", res.User.ID),
	)
	return s.sessions.Get(ctx, telegramID)
}

// Logout удаляет сессию
func (s *AuthService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.sessions.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// UpdateProfile обновляет профиль. При смене телефона API отвечает 202 и
// профиль в сессии не меняется до подтверждения OTP.
func (s *AuthService) UpdateProfile(ctx context.Context, telegramID int64, update api.ProfileUpdate) (*api.ProfileResult, error) {
	session, err := s.RequireSession(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if err := ValidateProfileUpdate(update, s.now()); err != nil {
		return nil, err
	}

	res, err := s.api.UpdateMe(ctx, session.Token, update)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, s.expire(ctx, telegramID)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if res.Pending {
		s.logger.Info("Profile update pending OTP", zap.Int64("telegram_id", telegramID))
		if res.User == nil {
			res.User = session.User
		}
		return res, nil
	}

	if err := s.saveSession(ctx, telegramID, session.Token, res.User); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.Int64("telegram_id", telegramID))
	return res, nil
}

// RequireSession возвращает сессию или ErrUnauthenticated, если нет токена или профиля
func (s *AuthService) RequireSession(ctx context.Context, telegramID int64) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !session.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	return session, nil
}

// Invalidate удаляет сессию, токен которой отклонил сервер.
// При успешном удалении возвращает ErrUnauthenticated.
func (s *AuthService) Invalidate(ctx context.Context, telegramID int64) error {
	return s.expire(ctx, telegramID)
}

func (s *AuthService) expire(ctx context.Context, telegramID int64) error {
	if err := s.sessions.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("delete expired session: %w", err)
	}
	s.logger.Info("Session expired", zap.Int64("telegram_id", telegramID))
	return ErrUnauthenticated
}

func (s *AuthService) saveSession(ctx context.Context, telegramID int64, token string, user *model.User) error {
	if token == "" || user == nil {
		return errors.New("save session: token and user are required")
	}

	session := &model.Session{
		TelegramID: telegramID,
		Token:      token,
		User:       user,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
