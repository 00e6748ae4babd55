package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
	"go.uber.org/zap"
)

// PillService каталог pills пользователя. Локальная копия каталога меняется
// только после успешного ответа API.
type PillService struct {
	api      PillAPI
	sessions Sessions
	logger   *zap.Logger

	mu       sync.RWMutex
	catalogs map[int64][]model.Pill
}

func NewPillService(pillAPI PillAPI, sessions Sessions, logger *zap.Logger) *PillService {
	return &PillService{
		api:      pillAPI,
		sessions: sessions,
		logger:   logger,
		catalogs: make(map[int64][]model.Pill),
	}
}

// List загружает каталог с сервера и обновляет локальную копию
func (s *PillService) List(ctx context.Context, telegramID int64) ([]model.Pill, error) {
	session, err := s.sessions.RequireSession(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	pills, err := s.api.ListPills(ctx, session.Token)
	if err != nil {
		return nil, s.wrap(ctx, telegramID, "list pills", err)
	}

	s.mu.Lock()
	s.catalogs[telegramID] = append([]model.Pill(nil), pills...)
	s.mu.Unlock()

	return pills, nil
}

// Catalog возвращает локальную копию каталога, загружая её при первом обращении
func (s *PillService) Catalog(ctx context.Context, telegramID int64) ([]model.Pill, error) {
	s.mu.RLock()
	cached, ok := s.catalogs[telegramID]
	s.mu.RUnlock()

	if ok {
		return append([]model.Pill(nil), cached...), nil
	}
	return s.List(ctx, telegramID)
}

// Get ищет pill в каталоге
func (s *PillService) Get(ctx context.Context, telegramID int64, pillID string) (model.Pill, error) {
	catalog, err := s.Catalog(ctx, telegramID)
	if err != nil {
		return model.Pill{}, err
	}
	for _, p := range catalog {
		if p.ID == pillID {
			return p, nil
		}
	}
	return model.Pill{}, ErrPillNotFound
}

// Create создаёт pill
func (s *PillService) Create(ctx context.Context, telegramID int64, fields model.PillFields) (model.Pill, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	if err := ValidatePillFields(fields); err != nil {
		return model.Pill{}, err
	}

	session, err := s.sessions.RequireSession(ctx, telegramID)
	if err != nil {
		return model.Pill{}, err
	}

	pill, err := s.api.CreatePill(ctx, session.Token, fields)
	if err != nil {
		return model.Pill{}, s.wrap(ctx, telegramID, "create pill", err)
	}

	s.mu.Lock()
	if catalog, ok := s.catalogs[telegramID]; ok {
		s.catalogs[telegramID] = append(catalog, pill)
	}
	s.mu.Unlock()

	s.logger.Info("Pill created",
		zap.Int64("telegram_id", telegramID),
		zap.String("pill_id", pill.ID),
	)
	return pill, nil
}

// Update заменяет поля pill
func (s *PillService) Update(ctx context.Context, telegramID int64, pillID string, fields model.PillFields) (model.Pill, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	if err := ValidatePillFields(fields); err != nil {
		return model.Pill{}, err
	}

	session, err := s.sessions.RequireSession(ctx, telegramID)
	if err != nil {
		return model.Pill{}, err
	}

	pill, err := s.api.UpdatePill(ctx, session.Token, pillID, fields)
	if err != nil {
		return model.Pill{}, s.wrap(ctx, telegramID, "update pill", err)
	}
	if pill.ID == "" {
		pill.ID = pillID
	}

	s.mu.Lock()
	catalog := s.catalogs[telegramID]
	for i := range catalog {
		if catalog[i].ID == pillID {
			catalog[i] = pill
		}
	}
	s.mu.Unlock()

	s.logger.Info("Pill updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("pill_id", pillID),
	)
	return pill, nil
}

// Delete удаляет pill
func (s *PillService) Delete(ctx context.Context, telegramID int64, pillID string) error {
	session, err := s.sessions.RequireSession(ctx, telegramID)
	if err != nil {
		return err
	}

	if err := s.api.DeletePill(ctx, session.Token, pillID); err != nil {
		return s.wrap(ctx, telegramID, "delete pill", err)
	}

	s.mu.Lock()
	if catalog, ok := s.catalogs[telegramID]; ok {
		kept := catalog[:0]
		for _, p := range catalog {
			if p.ID != pillID {
				kept = append(kept, p)
			}
		}
		s.catalogs[telegramID] = kept
	}
	s.mu.Unlock()

	s.logger.Info("Pill deleted",
		zap.Int64("telegram_id", telegramID),
		zap.String("pill_id", pillID),
	)
	return nil
}

// Forget сбрасывает локальную копию каталога (после выхода)
func (s *PillService) Forget(telegramID int64) {
	s.mu.Lock()
	delete(s.catalogs, telegramID)
	s.mu.Unlock()
}

func (s *PillService) wrap(ctx context.Context, telegramID int64, op string, err error) error {
	if api.IsUnauthorized(err) {
		s.Forget(telegramID)
		return s.sessions.Invalidate(ctx, telegramID)
	}
	s.logger.Warn("Pill request failed",
		zap.Int64("telegram_id", telegramID),
		zap.String("op", op),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", op, err)
}
