package formatting

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy убирает разметку из пользовательского текста
var textPolicy = bluemonday.StrictPolicy()

// Escape готовит пользовательский текст к отправке с ParseModeHTML
func Escape(s string) string {
	return textPolicy.Sanitize(strings.TrimSpace(s))
}
