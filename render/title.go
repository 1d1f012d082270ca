package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// TitleFromName derives a page title from its logical name:
// "my-first_post" becomes "My First Post".
func TitleFromName(name string) string {
	// Casers keep state and must not be shared between goroutines.
	return cases.Title(language.English).String(separatorReplacer.Replace(name))
}
