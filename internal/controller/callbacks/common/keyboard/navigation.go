package keyboard

import "github.com/go-telegram/bot/models"

// BackToMain callback возврата в главное меню
const BackToMain = "back_to_main"

// BackButton создаёт кнопку "Back"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Back", callbackData)
}

// BackToMainButton создаёт кнопку "Main menu"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", BackToMain)
}

// CancelButton создаёт кнопку "Cancel"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton создаёт кнопку "Confirm"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// EditButton создаёт кнопку "Edit"
func EditButton(callbackData string) models.InlineKeyboardButton {
	return Button("✏️ Edit", callbackData)
}

// DeleteButton создаёт кнопку "Delete"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Delete", callbackData)
}

// ConfirmCancelRow ряд Confirm/Cancel
func ConfirmCancelRow(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}

// AddBackButton добавляет кнопку "Back" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddBackToMainButton добавляет кнопку "Main menu" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// BackRow создаёт ряд с кнопкой "Back"
func BackRow(callbackData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{BackButton(callbackData)}
}
