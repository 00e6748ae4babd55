package alerts

import (
	"context"
	"errors"
	"slices"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

// StartNew открывает черновик нового alert; предыдущий черновик отменяется
func StartNew(sm *state.Manager, telegramID int64) *schedule.Draft {
	if old, ok := sm.Draft(telegramID); ok {
		old.Cancel()
	}
	sm.ClearState(telegramID)

	draft := schedule.NewDraft()
	sm.OpenDraft(telegramID, draft)
	return draft
}

// HandleNew открывает редактор нового alert
func HandleNew(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		draft := StartNew(h.StateManager, hc.TelegramID)
		h.Logger.Info("Alert draft opened",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("draft_id", draft.ID().String()))
		hc.Show(common.AlertEditorScreen(draft))
		hc.Answer("")
	})
}

// HandleEdit открывает рабочую копию сохранённого alert
func HandleEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.AlertEdit)
		if err != nil {
			common.HandleError(hc, err, "parse alert id")
			return
		}
		draft, err := h.Alerts.BeginEdit(hc.Ctx, hc.TelegramID, id)
		if err != nil {
			common.HandleError(hc, err, "begin alert edit")
			return
		}
		if old, ok := h.StateManager.Draft(hc.TelegramID); ok {
			old.Cancel()
		}
		hc.ClearState()
		h.StateManager.OpenDraft(hc.TelegramID, draft)

		hc.Show(common.AlertEditorScreen(draft))
		hc.Answer("")
	})
}

// HandleTimesPerDay выбирает число приёмов в день; повторный выбор сбрасывает его
func HandleTimesPerDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		n, err := common.ParseIntArg(callback.Data, common.EditorTimesPerDay)
		if err != nil {
			common.HandleError(hc, err, "parse times per day")
			return
		}
		apply(hc, func(a model.Alert) (model.Alert, error) {
			return schedule.SetTimesPerDay(a, n)
		}, "set times per day")
	})
}

// HandleSetTime просит ввести время слота текстом
func HandleSetTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slot, err := common.ParseIntArg(callback.Data, common.EditorSetTime)
		if err != nil {
			common.HandleError(hc, err, "parse slot")
			return
		}
		draft, _ := hc.Draft()
		working := draft.Working()
		if slot < 0 || slot >= len(working.AlertTimes) {
			common.HandleError(hc, schedule.ErrSlotOutOfRange, "set time")
			return
		}

		hc.SetData(state.KeySlot, slot)
		hc.SetState(state.StateAlertTime)
		hc.Show(common.Screen{
			Text:     common.TimeInputPrompt(slot, working.AlertTimes[slot]),
			Keyboard: keyboard.NewBuilder().AddBackButton(common.EditorShow).Build(),
		})
		hc.Answer("")
	})
}

// HandleDeleteTime удаляет слот по позиции
func HandleDeleteTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slot, err := common.ParseIntArg(callback.Data, common.EditorDeleteTime)
		if err != nil {
			common.HandleError(hc, err, "parse slot")
			return
		}
		apply(hc, func(a model.Alert) (model.Alert, error) {
			return schedule.DeleteTime(a, slot)
		}, "delete time")
	})
}

// HandleDay переключает день недели
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		day, err := common.ParseArg(callback.Data, common.EditorDay)
		if err != nil {
			common.HandleError(hc, err, "parse day")
			return
		}
		apply(hc, func(a model.Alert) (model.Alert, error) {
			return schedule.ToggleDay(a, day)
		}, "toggle day")
	})
}

// HandleAllDays выбирает всю неделю или снимает выбор
func HandleAllDays(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		apply(hc, func(a model.Alert) (model.Alert, error) {
			return schedule.ToggleAllDays(a), nil
		}, "toggle all days")
	})
}

// HandleActive переключает isActive черновика
func HandleActive(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		apply(hc, func(a model.Alert) (model.Alert, error) {
			a.IsActive = !a.IsActive
			return a, nil
		}, "toggle active")
	})
}

// HandleRemovePill убирает pill из черновика
func HandleRemovePill(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.EditorRemovePill)
		if err != nil {
			common.HandleError(hc, err, "parse pill id")
			return
		}
		apply(hc, func(a model.Alert) (model.Alert, error) {
			return schedule.RemovePill(a, id), nil
		}, "remove pill")
	})
}

// HandlePills открывает выбор pills; каталог обновляется с сервера
func HandlePills(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		catalog, err := h.Pills.List(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "list pills")
			return
		}
		draft, _ := hc.Draft()
		hc.SetState(state.StateAlertEditor)
		hc.Show(common.PillPickerScreen(draft.Working(), catalog))
		hc.Answer("")
	})
}

// HandlePick отмечает или снимает pill в выборе
func HandlePick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.EditorPick)
		if err != nil {
			common.HandleError(hc, err, "parse pill id")
			return
		}
		catalog, err := h.Pills.Catalog(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "list pills")
			return
		}

		draft, _ := hc.Draft()
		err = draft.Apply(func(a model.Alert) (model.Alert, error) {
			return schedule.SelectPills(a, TogglePick(a.PillIDs(), id), catalog), nil
		})
		if err != nil {
			common.HandleError(hc, err, "pick pill")
			return
		}
		hc.Show(common.PillPickerScreen(draft.Working(), catalog))
		hc.Answer("")
	})
}

// TogglePick добавляет id в выбор или убирает его оттуда
func TogglePick(chosen []string, id string) []string {
	if i := slices.Index(chosen, id); i >= 0 {
		return slices.Delete(slices.Clone(chosen), i, i+1)
	}
	return append(slices.Clone(chosen), id)
}

// HandleShow возвращает к редактору (из выбора pills или ввода времени)
func HandleShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		draft, _ := hc.Draft()
		h.StateManager.DeleteData(hc.TelegramID, state.KeySlot)
		hc.SetState(state.StateAlertEditor)
		hc.Show(common.AlertEditorScreen(draft))
		hc.Answer("")
	})
}

// HandleSave проверяет и сохраняет черновик
func HandleSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext) {
		draft, _ := hc.Draft()
		saved, err := h.Alerts.Save(hc.Ctx, hc.TelegramID, draft)
		if err != nil {
			if schedule.IsValidationError(err) {
				hc.Show(common.AlertEditorScreen(draft))
				hc.AnswerAlert(common.ErrorMessage(err))
				return
			}
			common.HandleError(hc, err, "save alert")
			if !common.IsUnauthenticated(err) && !errors.Is(err, schedule.ErrDraftBusy) {
				hc.Show(common.AlertEditorScreen(draft))
			}
			return
		}

		hc.ClearState()
		hc.Show(ViewScreen(h, saved))
		common.LogAndAnswer(hc, "Alert saved via bot", "✅ Saved")
	})
}

// HandleCancel отбрасывает черновик. Сохранённый alert остаётся прежним.
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		draft, err := hc.Draft()
		if err != nil {
			hc.Show(common.MainMenuScreen(hc.Session.User))
			hc.Answer("")
			return
		}

		original, persisted := draft.Cancel()
		hc.ClearState()
		if persisted {
			hc.Show(ViewScreen(h, original))
		} else {
			hc.Show(common.MainMenuScreen(hc.Session.User))
		}
		hc.Answer("Cancelled")
	})
}

// apply применяет операцию к черновику и перерисовывает редактор
func apply(hc *common.HandlerContext, op schedule.Op, operation string) {
	draft, err := hc.Draft()
	if err != nil {
		common.HandleError(hc, err, operation)
		return
	}
	if err := draft.Apply(op); err != nil {
		common.HandleError(hc, err, operation)
		return
	}
	hc.SetState(state.StateAlertEditor)
	hc.Show(common.AlertEditorScreen(draft))
	hc.Answer("")
}
