package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/formwire/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sessionMiddleware := session.Middleware(store)

	// Run a no-op handler through the middleware so the session is
	// initialized in the context we hand back.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	_ = sessionMiddleware(handler)(e.NewContext(req, rec))

	return c
}

func TestFlashMessages(t *testing.T) {
	t.Run("set and get one severity", func(t *testing.T) {
		c := setupTestContext()

		view.SetFlashSuccess(c, "Account created successfully!")

		flashes := view.GetFlashData(c)
		require.Len(t, flashes.Success, 1)
		assert.Equal(t, "Account created successfully!", flashes.Success[0])
		assert.Empty(t, flashes.Error)
		assert.False(t, flashes.Empty())

		again := view.GetFlashData(c)
		assert.True(t, again.Empty(), "flashes should be cleared after being read")
	})

	t.Run("severities do not mix", func(t *testing.T) {
		c := setupTestContext()

		view.SetFlashInfo(c, "heads up")
		view.SetFlashWarning(c, "careful")
		view.SetFlashError(c, "broken")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"heads up"}, flashes.Info)
		assert.Equal(t, []string{"careful"}, flashes.Warning)
		assert.Equal(t, []string{"broken"}, flashes.Error)
		assert.Empty(t, flashes.Success)
	})

	t.Run("no flashes set", func(t *testing.T) {
		c := setupTestContext()

		flashes := view.GetFlashData(c)
		assert.True(t, flashes.Empty())
	})

	t.Run("messages of one severity accumulate", func(t *testing.T) {
		c := setupTestContext()

		view.SetFlashError(c, "first")
		view.SetFlashError(c, "second")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"first", "second"}, flashes.Error)
	})
}

func TestRememberEmail(t *testing.T) {
	t.Run("round trips once", func(t *testing.T) {
		c := setupTestContext()

		view.RememberEmail(c, "user@example.com")

		assert.Equal(t, "user@example.com", view.RecallEmail(c))
		assert.Empty(t, view.RecallEmail(c), "recall should consume the value")
	})

	t.Run("does not leak into severity flashes", func(t *testing.T) {
		c := setupTestContext()

		view.RememberEmail(c, "user@example.com")

		assert.True(t, view.GetFlashData(c).Empty())
		assert.Equal(t, "user@example.com", view.RecallEmail(c))
	})

	t.Run("empty when nothing remembered", func(t *testing.T) {
		c := setupTestContext()
		assert.Empty(t, view.RecallEmail(c))
	})
}
