package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"

	flashKeyInfo    = "info"
	flashKeySuccess = "success"
	flashKeyWarning = "warning"
	flashKeyError   = "error"

	// flashKeyEmail preserves a submitted email across the redirect
	// after a failed POST so the form re-fills it.
	flashKeyEmail = "form_email"
)

// FlashData carries one request's worth of flash messages, grouped by
// severity for the page's notice region.
type FlashData struct {
	Info    []string
	Success []string
	Warning []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Info) == 0 && len(f.Success) == 0 && len(f.Warning) == 0 && len(f.Error) == 0
}

// setFlash appends a flash message under a severity key.
func setFlash(c echo.Context, key, message string) {
	sess, _ := session.Get(flashSessionName, c)
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashInfo sets an informational flash message.
func SetFlashInfo(c echo.Context, message string) { setFlash(c, flashKeyInfo, message) }

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) { setFlash(c, flashKeySuccess, message) }

// SetFlashWarning sets a warning flash message.
func SetFlashWarning(c echo.Context, message string) { setFlash(c, flashKeyWarning, message) }

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) { setFlash(c, flashKeyError, message) }

// RememberEmail stashes a submitted email for the next page render.
func RememberEmail(c echo.Context, email string) {
	setFlash(c, flashKeyEmail, email)
}

// RecallEmail retrieves and clears a previously remembered email.
func RecallEmail(c echo.Context) string {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return ""
	}
	flashes := sess.Flashes(flashKeyEmail)
	if len(flashes) == 0 {
		return ""
	}
	// Reading flashes consumes them; saving persists the clearing.
	_ = sess.Save(c.Request(), c.Response())
	if val, ok := flashes[0].(string); ok {
		return val
	}
	return ""
}

// GetFlashData retrieves and clears all severity flash messages.
func GetFlashData(c echo.Context) FlashData {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return FlashData{}
	}

	data := FlashData{
		Info:    toStrings(sess.Flashes(flashKeyInfo)),
		Success: toStrings(sess.Flashes(flashKeySuccess)),
		Warning: toStrings(sess.Flashes(flashKeyWarning)),
		Error:   toStrings(sess.Flashes(flashKeyError)),
	}
	if !data.Empty() {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(flashes []interface{}) []string {
	if len(flashes) == 0 {
		return nil
	}
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
