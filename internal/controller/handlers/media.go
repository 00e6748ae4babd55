package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/pillbot/internal/controller/render"
	"github.com/Freeeeeet/pillbot/internal/export"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// CalendarFilename имя файла экспорта
const CalendarFilename = "pillbot.ics"

// HandleWeek отправляет картинку с расписанием alerts на неделю
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	list, err := h.alerts.List(ctx, telegramID)
	if err != nil {
		h.handleError(ctx, b, update, err, "list alerts")
		return
	}

	now := h.deps.Clock()
	imageData, err := render.GenerateWeekImage(list, now)
	if err != nil {
		h.logger.Error("Failed to generate week image",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Could not draw the week. Use /alerts to see the list.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
		Caption:   weekCaption(list, now),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send week image",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// HandleExport отправляет alerts файлом календаря
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	list, err := h.alerts.List(ctx, telegramID)
	if err != nil {
		h.handleError(ctx, b, update, err, "list alerts")
		return
	}

	now := h.deps.Clock()
	data, err := export.CalendarFile(list, now, now.Location())
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			h.sendMessage(ctx, b, chatID, "📭 There are no active alerts to export.\n\nCreate one with /newalert.")
			return
		}
		h.logger.Error("Failed to build calendar",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Could not build the calendar file.")
		return
	}

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: CalendarFilename, Data: bytes.NewReader(data)},
		Caption:  "📅 Import this file into your calendar app to get the reminders there.",
	})
	if err != nil {
		h.logger.Error("Failed to send calendar",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	h.logger.Info("Calendar exported",
		zap.Int64("telegram_id", telegramID),
		zap.Int("bytes", len(data)))
}

// weekCaption подпись к картинке: ближайший приём
func weekCaption(alerts []model.Alert, now time.Time) string {
	a, next, ok, err := export.NextOfAll(alerts, now, now.Location())
	if err != nil || !ok {
		return "📅 <b>Your week</b>\n\nNo upcoming reminders."
	}
	return fmt.Sprintf("📅 <b>Your week</b>\n\n⏭ Next: %s\n💊 %s",
		formatting.FormatDateTime(next), formatting.Escape(pillList(a)))
}

func pillList(a model.Alert) string {
	names := make([]string, 0, len(a.Pills))
	for _, p := range a.Pills {
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
