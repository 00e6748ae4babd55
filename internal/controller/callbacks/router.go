package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/alerts"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/pills"
)

// HandlerFunc обработчик одного вида callback
type HandlerFunc func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler)

// exact callback без аргументов
var exact = map[string]HandlerFunc{
	common.BackToMain: common.HandleBackToMain,
	common.Noop:       common.HandleNoop,

	common.Login:          account.HandleLogin,
	common.ForgotPassword: account.HandleForgot,
	common.ResendOTP:      account.HandleResendOTP,
	common.ProfileBack:    account.HandleProfile,
	common.Logout:         account.HandleLogout,
	common.LogoutConfirm:  account.HandleLogoutConfirm,

	common.PillsList: pills.HandleList,
	common.PillAdd:   pills.HandleAdd,

	common.AlertsList: alerts.HandleList,
	common.AlertNew:   alerts.HandleNew,

	common.EditorAllDays: alerts.HandleAllDays,
	common.EditorPills:   alerts.HandlePills,
	common.EditorActive:  alerts.HandleActive,
	common.EditorShow:    alerts.HandleShow,
	common.EditorSave:    alerts.HandleSave,
	common.EditorCancel:  alerts.HandleCancel,
}

// prefixed callback вида "prefix:arg". Префиксы не являются префиксами друг друга.
var prefixed = []struct {
	prefix  string
	handler HandlerFunc
}{
	{common.ChooseGender, account.HandleGender},
	{common.EditProfile, account.HandleEditProfile},

	{common.PillsPage, pills.HandlePage},
	{common.PillView, pills.HandleView},
	{common.PillEditName, pills.HandleEditName},
	{common.PillEditTotal, pills.HandleEditTotal},
	{common.PillEditServing, pills.HandleEditServing},
	{common.PillSetServing, pills.HandleSetServing},
	{common.PillCreateServing, pills.HandleCreateServing},
	{common.PillDelete, pills.HandleDelete},
	{common.PillDeleteConfirm, pills.HandleDeleteConfirm},

	{common.AlertsPage, alerts.HandlePage},
	{common.AlertView, alerts.HandleView},
	{common.AlertEdit, alerts.HandleEdit},
	{common.AlertToggle, alerts.HandleToggle},
	{common.AlertDelete, alerts.HandleDelete},
	{common.AlertDeleteConfirm, alerts.HandleDeleteConfirm},

	{common.EditorTimesPerDay, alerts.HandleTimesPerDay},
	{common.EditorSetTime, alerts.HandleSetTime},
	{common.EditorDeleteTime, alerts.HandleDeleteTime},
	{common.EditorDay, alerts.HandleDay},
	{common.EditorPick, alerts.HandlePick},
	{common.EditorRemovePill, alerts.HandleRemovePill},
}

// Lookup находит обработчик для callback data
func Lookup(data string) (HandlerFunc, bool) {
	if handler, ok := exact[data]; ok {
		return handler, true
	}
	for _, route := range prefixed {
		if strings.HasPrefix(data, route.prefix) {
			return route.handler, true
		}
	}
	return nil, false
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handler, ok := Lookup(callback.Data)
	if !ok {
		h.Logger.Warn("Unknown callback",
			zap.String("data", callback.Data),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ This button is no longer supported")
		return
	}
	handler(ctx, b, callback, h)
}
