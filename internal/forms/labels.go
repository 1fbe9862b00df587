package forms

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// deriveLabel turns a field or form identifier into a display caption:
// "confirm_password" becomes "Confirm Password".
func deriveLabel(name string) string {
	if name == "" {
		return ""
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return titleCaser.String(cleaned)
}
