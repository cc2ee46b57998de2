// Package sanitize очищает текст, пришедший со сторонних страниц.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StrictPolicy потокобезопасна после создания
var strict = bluemonday.StrictPolicy()

// Text удаляет HTML-разметку, раскрывает сущности и схлопывает пробелы.
func Text(s string) string {
	if s == "" {
		return ""
	}

	clean := html.UnescapeString(strict.Sanitize(s))

	return strings.Join(strings.Fields(clean), " ")
}
