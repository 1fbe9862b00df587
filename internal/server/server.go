// Package server is the demo surface over the form interaction engine:
// an echo application rendering the login and registration pages, the
// fragment endpoints for clients without a socket, and a websocket
// bridge that runs the full interaction loop per connected client.
package server

import (
	"log"
	"log/slog"
	"os"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/formwire/internal/app"
	"github.com/nfrund/formwire/internal/config"
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/logging"
	"github.com/nfrund/formwire/internal/notify"
	"github.com/nfrund/formwire/internal/pubsub"
	"github.com/nfrund/formwire/internal/rendering"
	"github.com/nfrund/formwire/internal/validation"
	"github.com/nfrund/formwire/web"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	app        *app.App
	forms      *forms.Store
	watcher    *forms.Watcher
	engine     *validation.Engine
	subscriber pubsub.Subscriber
	bridge     *Bridge
	handler    *FormHandler
}

// New creates a new Server instance.
func New() *Server {
	// Load environment variables from .env file if it exists.
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet, so the standard logger is fine here.
		log.Println("No .env file found, relying on environment variables")
	}

	logging.New()
	cfg := config.New()

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("Failed to assemble application services", "error", err)
		os.Exit(1)
	}
	return NewWithApp(cfg, application)
}

// NewWithApp creates a Server over an already-assembled service graph.
// Tests use it to substitute configuration and services.
func NewWithApp(cfg config.Provider, application *app.App) *Server {
	injector := application.Injector

	store := do.MustInvoke[*forms.Store](injector)
	engine := do.MustInvoke[*validation.Engine](injector)
	renderer := do.MustInvoke[*rendering.UniversalRenderer](injector)
	notifier := do.MustInvoke[*notify.Notifier](injector)
	publisher := do.MustInvoke[pubsub.Publisher](injector)
	subscriber := do.MustInvoke[pubsub.Subscriber](injector)
	watcher := do.MustInvoke[*forms.Watcher](injector)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Session middleware backs the flash notices shown across redirects.
	cookieStore := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(cookieStore))

	e.Renderer = renderer

	bridge := NewBridge(BridgeDependencies{
		Forms:     store,
		Engine:    engine,
		Notifier:  notifier,
		Publisher: publisher,
		Renderer:  renderer,
	})

	return &Server{
		E:          e,
		Cfg:        cfg,
		app:        application,
		forms:      store,
		watcher:    watcher,
		engine:     engine,
		subscriber: subscriber,
		bridge:     bridge,
		handler:    NewFormHandler(store, engine, renderer),
	}
}

// Forms is a getter for the server's form store, useful for testing.
func (s *Server) Forms() *forms.Store {
	return s.forms
}

// Bridge is a getter for the server's websocket bridge, useful for
// testing.
func (s *Server) Bridge() *Bridge {
	return s.bridge
}

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := RateLimiter()

	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(302, "/login")
	})

	s.E.GET("/login", s.handler.LoginGet)
	s.E.POST("/login", s.handler.LoginPost, rateLimiter)

	s.E.GET("/register", s.handler.RegisterGet)
	s.E.POST("/register", s.handler.RegisterPost, rateLimiter)

	s.E.POST("/fragments/field", s.handler.FieldFragment)
	s.E.POST("/fragments/strength", s.handler.StrengthFragment)

	s.E.GET("/ws", s.bridge.Handler())

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
}
