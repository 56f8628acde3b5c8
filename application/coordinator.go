// Package application wires the drawing session to its collaborators.
package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"digitpad-go/application/session"
	"digitpad-go/core/command"
	"digitpad-go/core/event"
	"digitpad-go/core/eventbus"
	"digitpad-go/domain/history"
	"digitpad-go/domain/settings"
	"digitpad-go/infrastructure/classifier"
)

// persistTimeout bounds a single settings save.
const persistTimeout = 5 * time.Second

// Closer releases a resource during Stop.
type Closer func(ctx context.Context) error

// Coordinator owns the session and keeps persisted settings in sync with it.
type Coordinator struct {
	session      *session.Session
	eventBus     eventbus.EventBus
	classifier   classifier.Classifier
	settingsRepo settings.Repository
	closers      []Closer
	logger       *slog.Logger

	subscriptionID string
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	EventBus       eventbus.EventBus
	Classifier     classifier.Classifier
	SettingsRepo   settings.Repository // optional
	Archive        history.Archive     // optional
	PredictTimeout time.Duration
	SaveDir        string
	Closers        []Closer
	Logger         *slog.Logger
}

// NewCoordinator loads the persisted settings and creates the session.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Coordinator{
		eventBus:     cfg.EventBus,
		classifier:   cfg.Classifier,
		settingsRepo: cfg.SettingsRepo,
		closers:      cfg.Closers,
		logger:       cfg.Logger,
	}

	c.session = session.New(&session.Config{
		Settings:       c.loadSettings(),
		Classifier:     cfg.Classifier,
		Archive:        cfg.Archive,
		EventBus:       cfg.EventBus,
		Logger:         cfg.Logger,
		PredictTimeout: cfg.PredictTimeout,
		SaveDir:        cfg.SaveDir,
	})

	if c.eventBus != nil && c.settingsRepo != nil {
		c.subscriptionID = c.eventBus.SubscribeEvents(c.handleEvent, "SettingsChanged")
	}

	return c
}

func (c *Coordinator) loadSettings() *settings.Settings {
	if c.settingsRepo == nil {
		return settings.Defaults()
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	s, err := c.settingsRepo.Load(ctx)
	if err != nil {
		c.logger.Warn("Failed to load settings, using defaults", "error", err)
	}
	if s == nil {
		s = settings.Defaults()
	}
	return s
}

// Start begins the session.
func (c *Coordinator) Start() {
	c.session.Start()
	c.logger.Info("Coordinator started", "model", c.session.ClassifierName())
}

// Stop shuts down the session and releases the classifier and any
// registered resources. The event bus is left to its owner.
func (c *Coordinator) Stop() error {
	if c.subscriptionID != "" {
		c.eventBus.Unsubscribe(c.subscriptionID)
	}
	c.session.Stop()

	var errs []error
	if c.classifier != nil {
		if err := c.classifier.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	for _, closer := range c.closers {
		if err := closer(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		c.logger.Warn("Coordinator stopped with errors", "error", err)
	} else {
		c.logger.Info("Coordinator stopped")
	}
	return err
}

// Dispatch sends a command to the session.
func (c *Coordinator) Dispatch(cmd command.Command) error {
	if _, ok := cmd.(*command.PointerMove); !ok {
		c.logger.Debug("Dispatching command", "command", cmd.CommandName())
	}
	return c.session.Send(cmd)
}

// Session returns the managed session.
func (c *Coordinator) Session() *session.Session {
	return c.session
}

// EventBus returns the event bus shared with the session.
func (c *Coordinator) EventBus() eventbus.EventBus {
	return c.eventBus
}

// handleEvent persists settings whenever the session accepts a change.
func (c *Coordinator) handleEvent(e event.Event) {
	evt, ok := e.(*event.SettingsChanged)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := c.settingsRepo.Save(ctx, evt.Settings); err != nil {
		c.logger.Error("Failed to save settings", "error", err)
		c.eventBus.Publish(event.NewOperationFailed(event.OpSettings, err))
		return
	}
	c.logger.Debug("Settings saved")
}
