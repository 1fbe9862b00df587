// Package app assembles the formwire service graph. Every process
// surface (the demo server, tests) invokes the services it needs from
// the injector instead of wiring constructors by hand.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"

	"github.com/nfrund/formwire/internal/config"
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/notify"
	"github.com/nfrund/formwire/internal/pubsub"
	"github.com/nfrund/formwire/internal/rendering"
	"github.com/nfrund/formwire/internal/topics"
	"github.com/nfrund/formwire/internal/validation"
)

// App holds the assembled service graph for one formwire process.
type App struct {
	Injector do.Injector

	stopTracing func()
}

// New builds the service graph from configuration. The returned App owns
// the pub/sub bridge and the tracing exporter; call Shutdown when the
// process ends.
func New(cfg config.Provider) (*App, error) {
	injector := do.New()
	app := &App{Injector: injector, stopTracing: func() {}}

	do.ProvideValue[config.Provider](injector, cfg)
	do.ProvideValue[afero.Fs](injector, afero.NewOsFs())

	do.Provide(injector, func(i do.Injector) (*topics.Registry, error) {
		reg := topics.Default()
		if err := topics.RegisterAll(reg); err != nil {
			return nil, fmt.Errorf("failed to register topics: %w", err)
		}
		return reg, nil
	})

	do.Provide(injector, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		if !cfg.GetTracingEnabled() {
			return pubsub.NewWatermillBridge(), nil
		}

		tc := pubsub.DefaultTracingConfig()
		tc.Enabled = true
		tc.ServiceName = cfg.GetServiceName()
		tc.ZipkinURL = cfg.GetZipkinURL()

		tracer, stop, err := pubsub.SetupOTel(context.Background(), tc)
		if err != nil {
			return nil, fmt.Errorf("failed to set up tracing: %w", err)
		}
		app.stopTracing = stop
		return pubsub.NewWatermillBridgeWithTracer(tracer), nil
	})
	do.Provide(injector, func(i do.Injector) (pubsub.Publisher, error) {
		return do.MustInvoke[*pubsub.WatermillBridge](i), nil
	})
	do.Provide(injector, func(i do.Injector) (pubsub.Subscriber, error) {
		return do.MustInvoke[*pubsub.WatermillBridge](i), nil
	})

	do.Provide(injector, func(i do.Injector) (*forms.Store, error) {
		store := forms.NewStore(do.MustInvoke[afero.Fs](i), cfg.GetFormsDir())
		if cfg.GetFormsDir() != "" {
			if err := store.LoadDir(); err != nil {
				return nil, fmt.Errorf("failed to load form definitions: %w", err)
			}
		}
		return store, nil
	})
	do.Provide(injector, func(i do.Injector) (*forms.Watcher, error) {
		return forms.NewWatcher(do.MustInvoke[*forms.Store](i), cfg.GetFormsDir()), nil
	})

	do.Provide(injector, func(i do.Injector) (*validation.RuleSet, error) {
		rules := validation.NewRuleSet()
		if cfg.GetFormsDir() != "" {
			if err := loadRules(do.MustInvoke[afero.Fs](i), rules, filepath.Join(cfg.GetFormsDir(), "rules")); err != nil {
				return nil, err
			}
		}
		return rules, nil
	})
	do.Provide(injector, func(i do.Injector) (*validation.Engine, error) {
		return validation.New(validation.WithRules(do.MustInvoke[*validation.RuleSet](i))), nil
	})

	do.Provide(injector, func(i do.Injector) (*notify.Notifier, error) {
		return notify.New(
			notify.LogWidget{},
			notify.NewPublishWidget(do.MustInvoke[pubsub.Publisher](i)),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*rendering.UniversalRenderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})

	return app, nil
}

// Shutdown tears down the graph: the pub/sub bridge first, then the
// tracing exporter it may have been reporting to.
func (a *App) Shutdown() {
	if bridge, err := do.Invoke[*pubsub.WatermillBridge](a.Injector); err == nil {
		if err := bridge.Close(); err != nil {
			slog.Error("Failed to close pub/sub bridge", "error", err)
		}
	}
	a.stopTracing()
	a.Injector.Shutdown()
}

// loadRules registers every ".tengo" file in dir as a script rule named
// after the file. A missing directory means no custom rules are shipped.
func loadRules(fsys afero.Fs, rules *validation.RuleSet, dir string) error {
	exists, err := afero.DirExists(fsys, dir)
	if err != nil || !exists {
		return err
	}

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read rules directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tengo") {
			continue
		}
		source, err := afero.ReadFile(fsys, filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read rule %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".tengo")
		if err := rules.Register(name, string(source)); err != nil {
			return fmt.Errorf("failed to compile rule %s: %w", name, err)
		}
		slog.Info("Registered script rule", "rule", name)
	}
	return nil
}
