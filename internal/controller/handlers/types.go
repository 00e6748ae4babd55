package handlers

import (
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/service"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	deps         *callbacktypes.Handler
	auth         *service.AuthService
	pills        *service.PillService
	alerts       *service.AlertService
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд на тех же зависимостях, что и callbacks
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		deps:         deps,
		auth:         deps.Auth,
		pills:        deps.Pills,
		alerts:       deps.Alerts,
		stateManager: deps.StateManager,
		logger:       deps.Logger,
	}
}
