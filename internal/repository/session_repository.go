package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository хранит токен и профиль пользователя API по Telegram ID
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Get получает сессию; (nil, nil) если пользователь не входил
func (r *SessionRepository) Get(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `
		SELECT telegram_id, token, user_data, created_at, updated_at
		FROM sessions
		WHERE telegram_id = $1
	`

	var (
		session  model.Session
		userData []byte
	)
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&session.TelegramID,
		&session.Token,
		&userData,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if len(userData) > 0 && string(userData) != "null" && string(userData) != "{}" {
		var user model.User
		if err := json.Unmarshal(userData, &user); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
		session.User = &user
	}

	return &session, nil
}

// Save создаёт или заменяет сессию
func (r *SessionRepository) Save(ctx context.Context, session *model.Session) error {
	userData := []byte("{}")
	if session.User != nil {
		encoded, err := json.Marshal(session.User)
		if err != nil {
			return fmt.Errorf("encode session user: %w", err)
		}
		userData = encoded
	}

	query := `
		INSERT INTO sessions (telegram_id, token, user_data, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (telegram_id) DO UPDATE
		SET token = EXCLUDED.token,
		    user_data = EXCLUDED.user_data,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(ctx, query, session.TelegramID, session.Token, userData).
		Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Delete удаляет сессию; отсутствие сессии не ошибка
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	_, err := r.ExecAffected(ctx, `DELETE FROM sessions WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteStale удаляет сессии, которые не обновлялись дольше maxAge
func (r *SessionRepository) DeleteStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	affected, err := r.ExecAffected(ctx,
		`DELETE FROM sessions WHERE updated_at < $1`,
		time.Now().Add(-maxAge),
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return affected, nil
}
