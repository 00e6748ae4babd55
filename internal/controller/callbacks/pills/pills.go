package pills

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// Редактируемые поля pill
const (
	FieldName    = "name"
	FieldTotal   = "totalCapsules"
	FieldServing = "capsulesPerServing"
)

// HandleList показывает первую страницу каталога, обновляя его с сервера
func HandleList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showList(hc, 0)
	})
}

// HandlePage листает каталог
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIntArg(callback.Data, common.PillsPage)
		if err != nil {
			common.HandleError(hc, err, "parse pills page")
			return
		}
		showList(hc, page)
	})
}

func showList(hc *common.HandlerContext, page int) {
	list, err := hc.Handler.Pills.List(hc.Ctx, hc.TelegramID)
	if err != nil {
		common.HandleError(hc, err, "list pills")
		return
	}
	hc.Show(common.PillListScreen(list, page))
	hc.Answer("")
}

// HandleView показывает карточку pill
func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPill(ctx, b, callback, h, common.PillView, func(hc *common.HandlerContext, p model.Pill) {
		hc.ClearState()
		hc.Show(common.PillViewScreen(p))
		hc.Answer("")
	})
}

// HandleAdd начинает создание pill
func HandleAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		StartCreate(h.StateManager, hc.TelegramID)
		hc.Show(common.Screen{Text: CreateNamePrompt})
		hc.Answer("")
	})
}

// CreateNamePrompt первый шаг создания pill
const CreateNamePrompt = "💊 <b>New pill</b>\n\nStep 1 of 3: enter the pill name.\n\nUse /cancel to stop."

// StartCreate переводит пользователя на первый шаг создания pill
func StartCreate(sm *state.Manager, telegramID int64) {
	sm.ClearState(telegramID)
	sm.SetData(telegramID, state.KeyPillDraft, model.PillFields{})
	sm.SetState(telegramID, state.StateCreatePillName)
}

// HandleEditName просит новое название
func HandleEditName(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPill(ctx, b, callback, h, common.PillEditName, func(hc *common.HandlerContext, p model.Pill) {
		startFieldEdit(hc, p, FieldName, "📝 Enter a new name for <b>"+formatting.Escape(p.Name)+"</b>:")
	})
}

// HandleEditTotal просит новое количество капсул
func HandleEditTotal(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPill(ctx, b, callback, h, common.PillEditTotal, func(hc *common.HandlerContext, p model.Pill) {
		startFieldEdit(hc, p, FieldTotal, "📦 Enter the total number of capsules (now "+
			strconv.Itoa(p.TotalCapsules)+"):")
	})
}

func startFieldEdit(hc *common.HandlerContext, p model.Pill, field, prompt string) {
	hc.ClearState()
	hc.SetData(state.KeyPillID, p.ID)
	hc.SetData(state.KeyField, field)
	hc.SetState(state.StateEditPillField)

	hc.Show(common.Screen{
		Text:     prompt + "\n\nUse /cancel to stop.",
		Keyboard: keyboard.NewBuilder().AddBackButton(common.PillView + p.ID).Build(),
	})
	hc.Answer("")
}

// HandleEditServing показывает выбор капсул за приём
func HandleEditServing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPill(ctx, b, callback, h, common.PillEditServing, func(hc *common.HandlerContext, p model.Pill) {
		kb := common.ServingKeyboard(common.PillSetServing+p.ID+":", p.CapsulesPerServing)
		kb.InlineKeyboard = append(kb.InlineKeyboard, keyboard.BackRow(common.PillView+p.ID))
		hc.Show(common.Screen{
			Text:     "🥄 How many capsules per serving of <b>" + formatting.Escape(p.Name) + "</b>?",
			Keyboard: kb,
		})
		hc.Answer("")
	})
}

// HandleSetServing сохраняет выбранное количество капсул за приём
func HandleSetServing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.ParseArgs(callback.Data, common.PillSetServing, 2)
		if err != nil {
			common.HandleError(hc, err, "parse serving")
			return
		}
		serving, err := strconv.Atoi(parts[1])
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "parse serving")
			return
		}

		p, err := h.Pills.Get(hc.Ctx, hc.TelegramID, parts[0])
		if err != nil {
			common.HandleError(hc, err, "get pill")
			return
		}
		fields := p.Fields()
		fields.CapsulesPerServing = serving

		updated, err := h.Pills.Update(hc.Ctx, hc.TelegramID, p.ID, fields)
		if err != nil {
			common.HandleError(hc, err, "update pill serving")
			return
		}
		hc.Show(common.PillViewScreen(updated))
		common.LogAndAnswer(hc, "Pill serving updated", "✅ Saved")
	})
}

// HandleCreateServing последний шаг создания pill
func HandleCreateServing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if h.StateManager.GetState(hc.TelegramID) != state.StateCreatePillServing {
			hc.AnswerAlert("⚠️ Start again with /addpill")
			return
		}
		serving, err := common.ParseIntArg(callback.Data, common.PillCreateServing)
		if err != nil {
			common.HandleError(hc, err, "parse serving")
			return
		}

		value, _ := hc.GetData(state.KeyPillDraft)
		fields, _ := value.(model.PillFields)
		fields.CapsulesPerServing = serving

		created, err := h.Pills.Create(hc.Ctx, hc.TelegramID, fields)
		if err != nil {
			common.HandleError(hc, err, "create pill")
			return
		}
		hc.ClearState()

		h.Logger.Info("Pill created via bot",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("pill_id", created.ID))
		hc.Show(common.PillViewScreen(created))
		hc.Answer("✅ Pill added")
	})
}

// HandleDelete спрашивает подтверждение удаления
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPill(ctx, b, callback, h, common.PillDelete, func(hc *common.HandlerContext, p model.Pill) {
		hc.Show(common.PillDeleteConfirmScreen(p))
		hc.Answer("")
	})
}

// HandleDeleteConfirm удаляет pill и возвращает к списку
func HandleDeleteConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.PillDeleteConfirm)
		if err != nil {
			common.HandleError(hc, err, "parse pill id")
			return
		}
		if err := h.Pills.Delete(hc.Ctx, hc.TelegramID, id); err != nil {
			common.HandleError(hc, err, "delete pill")
			return
		}

		catalog, err := h.Pills.Catalog(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "list pills")
			return
		}
		hc.Show(common.PillListScreen(catalog, 0))
		common.LogAndAnswer(hc, "Pill deleted via bot", "🗑 Deleted")
	})
}

// withPill загружает pill по id из callback data
func withPill(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	prefix string,
	handler func(*common.HandlerContext, model.Pill),
) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, prefix)
		if err != nil {
			common.HandleError(hc, err, "parse pill id")
			return
		}
		p, err := h.Pills.Get(hc.Ctx, hc.TelegramID, id)
		if err != nil {
			common.HandleError(hc, err, "get pill")
			return
		}
		handler(hc, p)
	})
}
