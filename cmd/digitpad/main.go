// Package main is the entry point for the Digit Recognizer.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"digitpad-go/application"
	"digitpad-go/core/eventbus"
	"digitpad-go/domain/history"
	"digitpad-go/infrastructure/classifier"
	"digitpad-go/infrastructure/config"
	"digitpad-go/infrastructure/logging"
	"digitpad-go/infrastructure/repository"
	"digitpad-go/presentation"
	"digitpad-go/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Stderr.WriteString("Invalid configuration: " + err.Error() + "\n")
		os.Exit(2)
	}

	// Initialize logging (dev: console only, prod: one file per run)
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Level()
	logCfg.Dir = cfg.LogDir
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		// Fallback to stderr if logging setup fails
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting Digit Recognizer", "model", cfg.Model)

	fyneApp := app.New()
	fyneApp.SetIcon(resources.GetAppIcon())

	// Load the model
	clfCfg := classifier.DefaultConfig()
	clfCfg.Model = cfg.Model
	clfCfg.ModelName = cfg.ModelName
	clfCfg.ORTLibraryPath = cfg.ORTLibrary
	clfCfg.Timeout = cfg.PredictTimeout
	clfCfg.Logger = logger
	clf, err := classifier.Open(clfCfg)
	if err != nil {
		logger.Error("Failed to load the model", "model", cfg.Model, "error", err)
		showStartupError(fyneApp, "Failed to load the model. Please check if the model file exists.", err)
		closeLog()
		os.Exit(1)
	}
	logger.Info("Model loaded", "classifier", clf.Name())

	var closers []application.Closer

	// Optional prediction archive
	var archive history.Archive
	if cfg.ArchiveEnabled() {
		archive, closers = openArchive(cfg, clf.Name(), logger)
	}

	// Initialize event bus
	eventBus := eventbus.NewWithLogger(100, logger)
	defer eventBus.Close()

	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		EventBus:       eventBus,
		Classifier:     clf,
		SettingsRepo:   repository.NewFileSettingsRepository(cfg.SettingsPath, logger),
		Archive:        archive,
		PredictTimeout: cfg.PredictTimeout,
		Closers:        closers,
		Logger:         logger,
	})
	coordinator.Start()
	defer coordinator.Stop()

	// Initialize UI event bridge
	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Coordinator: coordinator,
		EventBus:    eventBus,
		Logger:      logger,
	})
	defer bridge.Close()

	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:    fyneApp,
		Bridge: bridge,
		Logger: logger,
	})
	defer mainWindow.Cleanup()

	mainWindow.Show()
	fyneApp.Run()

	// Start shutdown timeout - force exit after 10 seconds if cleanup hangs
	go func() {
		time.Sleep(10 * time.Second)
		logger.Warn("Shutdown timeout, forcing exit")
		os.Exit(0)
	}()

	logger.Info("Application shutdown complete")
}

// openArchive connects to MongoDB. The app runs without an archive when the
// connection fails.
func openArchive(cfg config.Config, model string, logger *slog.Logger) (history.Archive, []application.Closer) {
	mongoCfg := repository.DefaultMongoDBConfig()
	mongoCfg.URI = cfg.MongoURI
	mongoCfg.Database = cfg.MongoDatabase

	ctx, cancel := context.WithTimeout(context.Background(), mongoCfg.ConnectTimeout)
	defer cancel()

	db, err := repository.NewMongoDB(ctx, mongoCfg, logger)
	if err != nil {
		logger.Warn("Prediction archive disabled", "error", err)
		return nil, nil
	}

	host, _ := os.Hostname()
	repo := repository.NewMongoPredictionRepository(db, model, host, logger)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn("Prediction archive index not created", "error", err)
	}
	return repo, []application.Closer{db.Close}
}

func showStartupError(a fyne.App, message string, err error) {
	w := presentation.NewStartupErrorWindow(a, message, err)
	w.Show()
	a.Run()
}
