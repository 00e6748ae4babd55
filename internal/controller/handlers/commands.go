package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/alerts"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/pills"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	session, err := h.auth.RequireSession(ctx, telegramID)
	if err != nil {
		if !common.IsUnauthenticated(err) {
			h.handleError(ctx, b, update, err, "start")
			return
		}
		h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
			Text: "👋 Welcome to Pillbot!\n\n" +
				"I keep track of your pills and when to take them.\n\n" +
				common.LoginPromptScreen().Text,
			Keyboard: common.LoginPromptScreen().Keyboard,
		})
		return
	}

	h.sendScreen(ctx, b, update.Message.Chat.ID, common.MainMenuScreen(session.User))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 <b>Help</b>\n\n" +
		"Account:\n" +
		"/register - Create an account\n" +
		"/login - Log in\n" +
		"/forgot - Reset password\n" +
		"/profile - View and edit your profile\n" +
		"/logout - Log out\n\n" +
		"Pills:\n" +
		"/pills - Your pills\n" +
		"/addpill - Add a pill\n\n" +
		"Alerts:\n" +
		"/alerts - Your alerts\n" +
		"/newalert - Create an alert\n" +
		"/week - Weekly overview image\n" +
		"/export - Download alerts as a calendar file\n\n" +
		"/cancel - Stop the current dialog"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)
	draft, hasDraft := h.stateManager.Draft(telegramID)

	if currentState == state.StateNone && !hasDraft {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Nothing to cancel.")
		return
	}

	if hasDraft {
		draft.Cancel()
	}
	h.stateManager.ClearState(telegramID)

	h.logger.Info("Dialog cancelled",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Cancelled.\n\nUse /help to see the commands.")
}

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	telegramID := update.Message.From.ID

	if session, err := h.auth.RequireSession(ctx, telegramID); err == nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"✅ You are already logged in as <b>"+escapeHTML(session.User.Username)+"</b>.\n\nUse /logout to switch accounts.")
		return
	}

	account.StartLogin(h.stateManager, telegramID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
		Text:     account.LoginUsernamePrompt,
		Keyboard: keyboard.NewBuilder().Row(keyboard.Button("🔁 Forgot password", common.ForgotPassword)).Build(),
	})
}

// HandleRegister обрабатывает команду /register
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	account.StartRegister(h.stateManager, update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, account.RegisterStartPrompt)
}

// HandleForgot обрабатывает команду /forgot
func (h *Handlers) HandleForgot(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	account.StartForgot(h.stateManager, update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, account.ForgotPhonePrompt)
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.LogoutConfirmScreen())
}

// HandleProfile обрабатывает команду /profile
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.ProfileScreen(session.User))
}

// HandlePills обрабатывает команду /pills
func (h *Handlers) HandlePills(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	list, err := h.pills.List(ctx, update.Message.From.ID)
	if err != nil {
		h.handleError(ctx, b, update, err, "list pills")
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.PillListScreen(list, 0))
}

// HandleAddPill обрабатывает команду /addpill
func (h *Handlers) HandleAddPill(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}
	pills.StartCreate(h.stateManager, update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, pills.CreateNamePrompt)
}

// HandleAlerts обрабатывает команду /alerts
func (h *Handlers) HandleAlerts(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	list, err := h.alerts.List(ctx, update.Message.From.ID)
	if err != nil {
		h.handleError(ctx, b, update, err, "list alerts")
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.AlertListScreen(list, 0))
}

// HandleNewAlert обрабатывает команду /newalert
func (h *Handlers) HandleNewAlert(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	// Каталог нужен для выбора pills, подгружаем заранее
	if _, err := h.pills.Catalog(ctx, telegramID); err != nil {
		h.handleError(ctx, b, update, err, "load pills")
		return
	}

	draft := alerts.StartNew(h.stateManager, telegramID)
	h.logger.Info("Alert draft opened",
		zap.Int64("telegram_id", telegramID),
		zap.String("draft_id", draft.ID().String()))
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.AlertEditorScreen(draft))
}
