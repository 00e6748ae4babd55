package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// Noop callback кнопок-индикаторов
const Noop = "noop"

// PageSize количество элементов списка на одной странице
const PageSize = 8

// Page возвращает границы страницы [start, end) и общее число страниц.
// Номер страницы приводится к допустимому диапазону.
func Page(total, page int) (start, end, current, pages int) {
	pages = (total + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}
	current = max(min(page, pages-1), 0)
	start = current * PageSize
	end = min(start+PageSize, total)
	return start, end, current, pages
}

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "pills_page:")
// currentPage - текущая страница (0-based)
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		Noop,
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}
