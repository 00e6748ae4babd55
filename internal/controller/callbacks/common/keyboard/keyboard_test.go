package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderGrid(t *testing.T) {
	t.Parallel()

	buttons := []models.InlineKeyboardButton{
		Button("1", "a:1"), Button("2", "a:2"), Button("3", "a:3"), Button("4", "a:4"), Button("5", "a:5"),
	}
	markup := NewBuilder().Grid(buttons, 2).Row().AddBackToMainButton().Build()

	require.Len(t, markup.InlineKeyboard, 4)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "a:5", markup.InlineKeyboard[2][0].CallbackData)
	assert.Equal(t, BackToMain, markup.InlineKeyboard[3][0].CallbackData)
}

func TestPage(t *testing.T) {
	t.Parallel()

	start, end, current, pages := Page(0, 3)
	assert.Equal(t, []int{0, 0, 0, 1}, []int{start, end, current, pages})

	start, end, current, pages = Page(PageSize*2+1, 5)
	assert.Equal(t, []int{PageSize * 2, PageSize*2 + 1, 2, 3}, []int{start, end, current, pages})

	start, end, current, _ = Page(PageSize+1, -1)
	assert.Equal(t, []int{0, PageSize, 0}, []int{start, end, current})
}

func TestPaginationButtons(t *testing.T) {
	t.Parallel()

	assert.Nil(t, PaginationButtons("pills_page:", 0, 1))

	middle := PaginationButtons("pills_page:", 1, 3)
	require.Len(t, middle, 3)
	assert.Equal(t, "pills_page:0", middle[0].CallbackData)
	assert.Equal(t, Noop, middle[1].CallbackData)
	assert.Equal(t, "pills_page:2", middle[2].CallbackData)
}
