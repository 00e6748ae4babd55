package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/handlers"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// NewBotController собирает обработчики команд и callbacks на общих зависимостях.
// Менеджер состояний создаётся снаружи: его же чистит фоновый планировщик.
func NewBotController(botInstance *bot.Bot, deps *callbacktypes.Handler) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		logger:          deps.Logger,
	}
}

// commandList команды бота и их описания для меню
var commandList = []models.BotCommand{
	{Command: "start", Description: "🚀 Start"},
	{Command: "help", Description: "❓ Help"},
	{Command: "pills", Description: "💊 My pills"},
	{Command: "addpill", Description: "➕ Add a pill"},
	{Command: "alerts", Description: "🔔 My alerts"},
	{Command: "newalert", Description: "⏰ New alert"},
	{Command: "week", Description: "📅 Week overview"},
	{Command: "export", Description: "📤 Export to calendar"},
	{Command: "profile", Description: "👤 Profile"},
	{Command: "login", Description: "🔑 Log in"},
	{Command: "register", Description: "📝 Create an account"},
	{Command: "forgot", Description: "🔁 Reset password"},
	{Command: "logout", Description: "👋 Log out"},
	{Command: "cancel", Description: "✖️ Cancel the current dialog"},
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"/start":    c.handlers.HandleStart,
		"/help":     c.handlers.HandleHelp,
		"/cancel":   c.handlers.HandleCancel,
		"/register": c.handlers.HandleRegister,
		"/login":    c.handlers.HandleLogin,
		"/forgot":   c.handlers.HandleForgot,
		"/logout":   c.handlers.HandleLogout,
		"/profile":  c.handlers.HandleProfile,
		"/pills":    c.handlers.HandlePills,
		"/addpill":  c.handlers.HandleAddPill,
		"/alerts":   c.handlers.HandleAlerts,
		"/newalert": c.handlers.HandleNewAlert,
		"/week":     c.handlers.HandleWeek,
		"/export":   c.handlers.HandleExport,
	}
	for command, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypeExact, handler)
	}

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commandList,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
