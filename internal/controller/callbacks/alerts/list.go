package alerts

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/export"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// HandleList показывает alerts, обновляя список с сервера
func HandleList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showList(hc, 0)
	})
}

// HandlePage листает список alerts
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIntArg(callback.Data, common.AlertsPage)
		if err != nil {
			common.HandleError(hc, err, "parse alerts page")
			return
		}
		showList(hc, page)
	})
}

func showList(hc *common.HandlerContext, page int) {
	list, err := hc.Handler.Alerts.List(hc.Ctx, hc.TelegramID)
	if err != nil {
		common.HandleError(hc, err, "list alerts")
		return
	}
	hc.Show(common.AlertListScreen(list, page))
	hc.Answer("")
}

// HandleView показывает карточку alert с ближайшим приёмом
func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAlert(ctx, b, callback, h, common.AlertView, func(hc *common.HandlerContext, a model.Alert) {
		hc.Show(ViewScreen(h, a))
		hc.Answer("")
	})
}

// ViewScreen карточка alert с расчётом следующего приёма
func ViewScreen(h *callbacktypes.Handler, a model.Alert) common.Screen {
	now := h.Clock()
	next, ok, err := export.NextOccurrence(a, now, now.Location())
	if err != nil {
		ok = false
	}
	return common.AlertViewScreen(a, next, ok)
}

// HandleToggle включает или ставит на паузу alert
func HandleToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.AlertToggle)
		if err != nil {
			common.HandleError(hc, err, "parse alert id")
			return
		}
		updated, err := h.Alerts.ToggleActive(hc.Ctx, hc.TelegramID, id)
		if err != nil {
			common.HandleError(hc, err, "toggle alert")
			return
		}

		answer := "🔕 Paused"
		if updated.IsActive {
			answer = "🔔 Activated"
		}
		hc.Show(ViewScreen(h, updated))
		common.LogAndAnswer(hc, "Alert toggled via bot", answer)
	})
}

// HandleDelete спрашивает подтверждение удаления
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withAlert(ctx, b, callback, h, common.AlertDelete, func(hc *common.HandlerContext, a model.Alert) {
		hc.Show(common.AlertDeleteConfirmScreen(a))
		hc.Answer("")
	})
}

// HandleDeleteConfirm удаляет alert и возвращает к списку
func HandleDeleteConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.AlertDeleteConfirm)
		if err != nil {
			common.HandleError(hc, err, "parse alert id")
			return
		}
		if err := h.Alerts.Delete(hc.Ctx, hc.TelegramID, id); err != nil {
			common.HandleError(hc, err, "delete alert")
			return
		}

		list, err := h.Alerts.Cached(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "list alerts")
			return
		}
		hc.Show(common.AlertListScreen(list, 0))
		common.LogAndAnswer(hc, "Alert deleted via bot", "🗑 Deleted")
	})
}

// withAlert загружает alert по id из callback data
func withAlert(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	prefix string,
	handler func(*common.HandlerContext, model.Alert),
) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, prefix)
		if err != nil {
			common.HandleError(hc, err, "parse alert id")
			return
		}
		a, err := h.Alerts.Get(hc.Ctx, hc.TelegramID, id)
		if err != nil {
			common.HandleError(hc, err, "get alert")
			return
		}
		handler(hc, a)
	})
}
