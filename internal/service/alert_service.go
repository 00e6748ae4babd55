package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
	"go.uber.org/zap"
)

// PillCatalog источник каталога для сверки pills в alerts
type PillCatalog interface {
	Catalog(ctx context.Context, telegramID int64) ([]model.Pill, error)
}

// AlertService список alerts пользователя и их сохранение.
// Локальный список меняется только после успешного ответа API.
type AlertService struct {
	api      AlertAPI
	catalog  PillCatalog
	sessions Sessions
	logger   *zap.Logger
	locks    *inFlight

	mu     sync.RWMutex
	alerts map[int64][]model.Alert
}

func NewAlertService(alertAPI AlertAPI, catalog PillCatalog, sessions Sessions, logger *zap.Logger) *AlertService {
	return &AlertService{
		api:      alertAPI,
		catalog:  catalog,
		sessions: sessions,
		logger:   logger,
		locks:    newInFlight(),
		alerts:   make(map[int64][]model.Alert),
	}
}

// sessionStore реализует schedule.AlertStore для токена конкретной сессии
type sessionStore struct {
	api   AlertAPI
	token string
}

func (s sessionStore) CreateAlert(ctx context.Context, a model.Alert) (model.Alert, error) {
	return s.api.CreateAlert(ctx, s.token, a)
}

func (s sessionStore) UpdateAlert(ctx context.Context, id string, a model.Alert) (model.Alert, error) {
	return s.api.UpdateAlert(ctx, s.token, id, a)
}

// List загружает alerts с сервера. Pills сверяются с каталогом,
// ссылки на удалённые pills отбрасываются.
func (s *AlertService) List(ctx context.Context, telegramID int64) ([]model.Alert, error) {
	session, err := s.sessions.RequireSession(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.api.ListAlerts(ctx, session.Token)
	if err != nil {
		return nil, s.wrap(ctx, telegramID, "list alerts", err)
	}

	catalog := s.catalogFor(ctx, telegramID)
	for i := range alerts {
		alerts[i] = s.resolve(alerts[i], catalog)
	}

	s.mu.Lock()
	s.alerts[telegramID] = cloneAlerts(alerts)
	s.mu.Unlock()

	return alerts, nil
}

// Cached возвращает локальный список или загружает его
func (s *AlertService) Cached(ctx context.Context, telegramID int64) ([]model.Alert, error) {
	s.mu.RLock()
	cached, ok := s.alerts[telegramID]
	s.mu.RUnlock()

	if ok {
		return cloneAlerts(cached), nil
	}
	return s.List(ctx, telegramID)
}

// Get ищет alert в локальном списке
func (s *AlertService) Get(ctx context.Context, telegramID int64, alertID string) (model.Alert, error) {
	alerts, err := s.Cached(ctx, telegramID)
	if err != nil {
		return model.Alert{}, err
	}
	for _, a := range alerts {
		if a.ID == alertID {
			return a, nil
		}
	}
	return model.Alert{}, ErrAlertNotFound
}

// BeginEdit создаёт рабочую копию сохранённого alert
func (s *AlertService) BeginEdit(ctx context.Context, telegramID int64, alertID string) (*schedule.Draft, error) {
	a, err := s.Get(ctx, telegramID, alertID)
	if err != nil {
		return nil, err
	}
	return schedule.BeginEdit(a, s.catalogFor(ctx, telegramID)), nil
}

// Save проверяет и сохраняет черновик: новый alert создаётся, существующий обновляется.
// Повторный вызов для той же сущности до завершения первого получает ErrOperationInFlight.
func (s *AlertService) Save(ctx context.Context, telegramID int64, draft *schedule.Draft) (model.Alert, error) {
	release, err := s.locks.acquire(draft.LockKey())
	if err != nil {
		return model.Alert{}, err
	}
	defer release()

	session, err := s.sessions.RequireSession(ctx, telegramID)
	if err != nil {
		return model.Alert{}, err
	}

	catalog := s.catalogFor(ctx, telegramID)
	saved, err := draft.Commit(ctx, sessionStore{api: s.api, token: session.Token}, catalog)
	if err != nil {
		if schedule.IsValidationError(err) || errors.Is(err, schedule.ErrDraftBusy) || errors.Is(err, schedule.ErrDraftClosed) {
			return model.Alert{}, err
		}
		return model.Alert{}, s.wrap(ctx, telegramID, "save alert", err)
	}

	saved = s.resolve(saved, catalog)
	s.upsert(telegramID, saved)

	s.logger.Info("Alert saved",
		zap.Int64("telegram_id", telegramID),
		zap.String("alert_id", saved.ID),
		zap.String("draft_id", draft.ID().String()),
	)
	return saved, nil
}

// Create сохраняет новый alert без пошагового редактирования
func (s *AlertService) Create(ctx context.Context, telegramID int64, a model.Alert) (model.Alert, error) {
	draft := schedule.NewDraft()
	if err := draft.Apply(func(model.Alert) (model.Alert, error) {
		out := a.Clone()
		out.ID = ""
		return out, nil
	}); err != nil {
		return model.Alert{}, err
	}
	return s.Save(ctx, telegramID, draft)
}

// Update заменяет сохранённый alert значением a
func (s *AlertService) Update(ctx context.Context, telegramID int64, alertID string, a model.Alert) (model.Alert, error) {
	draft, err := s.BeginEdit(ctx, telegramID, alertID)
	if err != nil {
		return model.Alert{}, err
	}
	if err := draft.Apply(func(model.Alert) (model.Alert, error) {
		out := a.Clone()
		out.ID = alertID
		return out, nil
	}); err != nil {
		return model.Alert{}, err
	}
	return s.Save(ctx, telegramID, draft)
}

// ToggleActive переключает isActive через копию alert
func (s *AlertService) ToggleActive(ctx context.Context, telegramID int64, alertID string) (model.Alert, error) {
	draft, err := s.BeginEdit(ctx, telegramID, alertID)
	if err != nil {
		return model.Alert{}, err
	}
	if err := draft.Apply(func(a model.Alert) (model.Alert, error) {
		a.IsActive = !a.IsActive
		return a, nil
	}); err != nil {
		return model.Alert{}, err
	}
	return s.Save(ctx, telegramID, draft)
}

// Delete удаляет alert
func (s *AlertService) Delete(ctx context.Context, telegramID int64, alertID string) error {
	release, err := s.locks.acquire(alertID)
	if err != nil {
		return err
	}
	defer release()

	session, err := s.sessions.RequireSession(ctx, telegramID)
	if err != nil {
		return err
	}

	if err := s.api.DeleteAlert(ctx, session.Token, alertID); err != nil {
		return s.wrap(ctx, telegramID, "delete alert", err)
	}

	s.mu.Lock()
	if alerts, ok := s.alerts[telegramID]; ok {
		kept := make([]model.Alert, 0, len(alerts))
		for _, a := range alerts {
			if a.ID != alertID {
				kept = append(kept, a)
			}
		}
		s.alerts[telegramID] = kept
	}
	s.mu.Unlock()

	s.logger.Info("Alert deleted",
		zap.Int64("telegram_id", telegramID),
		zap.String("alert_id", alertID),
	)
	return nil
}

// Forget сбрасывает локальный список (после выхода)
func (s *AlertService) Forget(telegramID int64) {
	s.mu.Lock()
	delete(s.alerts, telegramID)
	s.mu.Unlock()
}

func (s *AlertService) upsert(telegramID int64, saved model.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts, ok := s.alerts[telegramID]
	if !ok {
		return
	}
	for i := range alerts {
		if alerts[i].ID == saved.ID {
			alerts[i] = saved.Clone()
			return
		}
	}
	s.alerts[telegramID] = append(alerts, saved.Clone())
}

// catalogFor возвращает каталог или nil, если его не удалось получить
func (s *AlertService) catalogFor(ctx context.Context, telegramID int64) []model.Pill {
	catalog, err := s.catalog.Catalog(ctx, telegramID)
	if err != nil {
		s.logger.Warn("Pill catalog unavailable", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return nil
	}
	return catalog
}

func (s *AlertService) resolve(a model.Alert, catalog []model.Pill) model.Alert {
	if catalog == nil {
		a.Pills = schedule.ValidPills(a.Pills)
		return a
	}
	return schedule.ResolvePills(a, catalog)
}

func (s *AlertService) wrap(ctx context.Context, telegramID int64, op string, err error) error {
	if api.IsUnauthorized(err) {
		s.Forget(telegramID)
		return s.sessions.Invalidate(ctx, telegramID)
	}
	s.logger.Warn("Alert request failed",
		zap.Int64("telegram_id", telegramID),
		zap.String("op", op),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", op, err)
}

func cloneAlerts(alerts []model.Alert) []model.Alert {
	out := make([]model.Alert, len(alerts))
	for i, a := range alerts {
		out[i] = a.Clone()
	}
	return out
}
