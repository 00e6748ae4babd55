package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger проверка доступности зависимости, например pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// NewHealthRouter создаёт gin router с GET /healthz
func NewHealthRouter(db Pinger, env string, logger *zap.Logger) *gin.Engine {
	if env == EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// HealthServer HTTP сервер проверки состояния
type HealthServer struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewHealthServer создаёт сервер на addr
func NewHealthServer(addr string, handler http.Handler, logger *zap.Logger) *HealthServer {
	return &HealthServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start слушает addr в фоне
func (h *HealthServer) Start() {
	go func() {
		h.logger.Info("Health endpoint listening", zap.String("addr", h.srv.Addr))
		if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("Health server stopped", zap.Error(err))
		}
	}()
}

// Shutdown останавливает сервер
func (h *HealthServer) Shutdown(ctx context.Context) error {
	if err := h.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown health server: %w", err)
	}
	return nil
}
