package callbacktypes

import (
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/service"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Auth         *service.AuthService
	Pills        *service.PillService
	Alerts       *service.AlertService
	StateManager *state.Manager
	Logger       *zap.Logger

	// Часовой пояс для "следующего приёма"
	Location *time.Location
	// Источник времени, time.Now если не задан
	Now func() time.Time
}

// Clock возвращает текущее время в часовом поясе бота
func (h *Handler) Clock() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}
