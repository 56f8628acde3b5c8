// Package session implements the Session Actor that owns one drawing pad:
// its surface, prediction history and settings.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"digitpad-go/core/command"
	"digitpad-go/core/event"
	"digitpad-go/core/eventbus"
	"digitpad-go/core/state"
	"digitpad-go/domain/drawing"
	"digitpad-go/domain/history"
	"digitpad-go/domain/prediction"
	"digitpad-go/domain/settings"
	"digitpad-go/infrastructure/classifier"
	"digitpad-go/infrastructure/imaging"
)

var (
	// ErrStopped is returned by Send after Stop.
	ErrStopped = errors.New("session is stopped")
	// ErrQueueFull is returned by Send when the command queue is full.
	ErrQueueFull = errors.New("command queue full")
	// ErrInternal wraps a recovered panic from a command handler.
	ErrInternal = errors.New("internal error")
)

// DefaultPredictTimeout bounds a single prediction.
const DefaultPredictTimeout = 10 * time.Second

// Session is the single owner of drawing, history and settings state.
// It processes commands serially through a command queue, so UI callbacks
// never block on rendering or inference.
type Session struct {
	// State
	surface  *drawing.Surface
	ledger   *history.Ledger
	settings *settings.Service
	stateMu  sync.RWMutex

	// Components
	capture      *CanvasCapture
	preprocessor *imaging.Preprocessor

	// Dependencies
	classifier     classifier.Classifier
	archive        history.Archive
	eventBus       eventbus.EventBus
	logger         *slog.Logger
	predictTimeout time.Duration
	now            func() time.Time

	// Command processing
	cmdChan chan command.Command
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped sync.Once
}

// Config holds configuration for creating a new Session.
type Config struct {
	Settings       *settings.Settings
	Classifier     classifier.Classifier
	Archive        history.Archive // optional
	EventBus       eventbus.EventBus
	Logger         *slog.Logger
	CommandBuffer  int
	PredictTimeout time.Duration
	CanvasWidth    int
	CanvasHeight   int
	SaveDir        string
	Clock          func() time.Time
}

// New creates a new Session actor.
func New(cfg *Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CommandBuffer <= 0 {
		cfg.CommandBuffer = 256
	}
	if cfg.PredictTimeout <= 0 {
		cfg.PredictTimeout = DefaultPredictTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	logger := cfg.Logger.With("component", "session")

	s := &Session{
		surface:        drawing.NewSurface(cfg.CanvasWidth, cfg.CanvasHeight),
		ledger:         history.NewLedger(),
		settings:       settings.NewService(cfg.Settings),
		preprocessor:   imaging.NewPreprocessor(),
		classifier:     cfg.Classifier,
		archive:        cfg.Archive,
		eventBus:       cfg.EventBus,
		logger:         logger,
		predictTimeout: cfg.PredictTimeout,
		now:            cfg.Clock,
		cmdChan:        make(chan command.Command, cfg.CommandBuffer),
		ctx:            ctx,
		cancel:         cancel,
	}

	renderer := imaging.NewRenderer(s.surface.Width(), s.surface.Height())
	s.capture = NewCanvasCapture(renderer, s.settings.Current().CanvasRGBA(), logger)
	if cfg.SaveDir != "" {
		s.capture.SetSaveDir(cfg.SaveDir)
	}

	return s
}

// Start begins the session's command processing loop and publishes the
// initial blank canvas.
func (s *Session) Start() {
	s.publishCanvas()
	s.wg.Add(1)
	go s.run()
	s.logger.Info("Session started")
}

// Stop signals the session to stop and waits for cleanup with timeout.
// Commands still queued are discarded.
func (s *Session) Stop() {
	s.stopped.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			s.logger.Info("Session stopped")
		case <-time.After(3 * time.Second):
			s.logger.Warn("Session stop timeout")
		}
	})
}

// Send sends a command to the session for processing.
// It never blocks; an error means the command was dropped.
func (s *Session) Send(cmd command.Command) error {
	if s.ctx.Err() != nil {
		return ErrStopped
	}
	select {
	case s.cmdChan <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Settings returns a snapshot of the current settings.
func (s *Session) Settings() *settings.Settings {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.settings.Current()
}

// DrawingState returns the current drawing surface state.
func (s *Session) DrawingState() state.DrawingState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.surface.State()
}

// SegmentCount returns the number of visible segments.
func (s *Session) SegmentCount() int {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.surface.Len()
}

// History returns the predictions made so far, oldest first.
func (s *Session) History() []prediction.Record {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.ledger.Records()
}

// ClassifierName returns the name of the loaded model.
func (s *Session) ClassifierName() string {
	if s.classifier == nil {
		return ""
	}
	return s.classifier.Name()
}

// run is the main command processing loop.
func (s *Session) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case cmd := <-s.cmdChan:
			s.processCommand(cmd)
		}
	}
}

// processCommand handles a single command. A panicking handler is reported
// as an internal failure and the session keeps running.
func (s *Session) processCommand(cmd command.Command) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Command handler panicked",
				"command", cmd.CommandName(),
				"panic", r,
				"stack", string(debug.Stack()))
			s.publishEvent(event.NewOperationFailed(event.OpInternal, fmt.Errorf("%w: %v", ErrInternal, r)))
		}
	}()

	if _, ok := cmd.(*command.PointerMove); !ok {
		s.logger.Debug("Processing command", "command", cmd.CommandName())
	}

	switch c := cmd.(type) {
	// Drawing
	case *command.PointerDown:
		s.handlePointerDown(c)
	case *command.PointerMove:
		s.handlePointerMove(c)
	case *command.PointerUp:
		s.handlePointerUp(c)
	case *command.UndoSegment:
		s.handleUndo(c)
	case *command.ClearCanvas:
		s.handleClear(c)

	// Prediction and files
	case *command.Predict:
		s.handlePredict(c)
	case *command.SaveDrawing:
		s.handleSaveDrawing(c)
	case *command.ExportHistory:
		s.handleExportHistory(c)

	// Settings
	case *command.SetBrushSize:
		s.handleSetBrushSize(c)
	case *command.SetBrushColor:
		s.handleSetBrushColor(c)
	case *command.SetCanvasColor:
		s.handleSetCanvasColor(c)

	default:
		s.logger.Warn("Unknown command", "command", fmt.Sprintf("%T", cmd))
	}
}

func (s *Session) publishEvent(e event.Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(e)
	}
}

func (s *Session) publishCanvas() {
	s.publishEvent(event.NewCanvasChanged(s.capture.Snapshot(), s.surface.Len()))
}

func (s *Session) publishStateChange(old state.DrawingState) {
	if cur := s.surface.State(); cur != old {
		s.publishEvent(event.NewDrawingStateChanged(old, cur))
	}
}

func (s *Session) fail(op string, err error) {
	s.logger.Error("Operation failed", "operation", op, "error", err)
	s.publishEvent(event.NewOperationFailed(op, err))
}

func (s *Session) redraw() {
	s.capture.Redraw(s.surface.Segments(), s.settings.Current().CanvasRGBA())
}

// Drawing handlers

func (s *Session) handlePointerDown(cmd *command.PointerDown) {
	s.stateMu.Lock()
	old := s.surface.State()
	err := s.surface.PointerDown(cmd.Point)
	s.stateMu.Unlock()

	if err != nil {
		s.logger.Warn("Pointer down rejected", "error", err)
		return
	}
	s.publishStateChange(old)
}

func (s *Session) handlePointerMove(cmd *command.PointerMove) {
	size, color := s.settings.Brush()

	s.stateMu.Lock()
	seg, err := s.surface.PointerMove(cmd.Point, drawing.Brush{Size: size, Color: color})
	s.stateMu.Unlock()

	if err != nil {
		if !errors.Is(err, drawing.ErrNotDrawing) {
			s.logger.Warn("Pointer move rejected", "error", err)
		}
		return
	}

	s.capture.Extend(seg)
	s.publishCanvas()
}

func (s *Session) handlePointerUp(cmd *command.PointerUp) {
	s.stateMu.Lock()
	old := s.surface.State()
	err := s.surface.PointerUp()
	s.stateMu.Unlock()

	if err != nil {
		s.logger.Warn("Pointer up rejected", "error", err)
		return
	}
	s.publishStateChange(old)
}

func (s *Session) handleUndo(cmd *command.UndoSegment) {
	s.stateMu.Lock()
	seg, ok := s.surface.Undo()
	s.stateMu.Unlock()

	if !ok {
		s.logger.Debug("Nothing to undo")
		return
	}

	s.logger.Debug("Segment undone", "from", seg.From, "to", seg.To)
	s.redraw()
	s.publishCanvas()
}

func (s *Session) handleClear(cmd *command.ClearCanvas) {
	s.stateMu.Lock()
	old := s.surface.State()
	s.surface.Clear()
	s.stateMu.Unlock()

	s.redraw()
	s.publishStateChange(old)
	s.publishEvent(event.NewCanvasCleared())
	s.publishCanvas()
	s.logger.Info("Canvas cleared")
}

// Settings handlers

func (s *Session) handleSetBrushSize(cmd *command.SetBrushSize) {
	s.stateMu.Lock()
	next, err := s.settings.SetBrushSize(cmd.Size)
	s.stateMu.Unlock()

	if err != nil {
		s.fail(event.OpSettings, err)
		return
	}
	s.logger.Info("Brush size changed", "size", next.BrushSize)
	s.publishEvent(event.NewSettingsChanged(next))
}

func (s *Session) handleSetBrushColor(cmd *command.SetBrushColor) {
	s.stateMu.Lock()
	next, err := s.settings.SetBrushColor(cmd.Color)
	s.stateMu.Unlock()

	if err != nil {
		s.fail(event.OpSettings, err)
		return
	}
	s.logger.Info("Brush color changed", "color", next.BrushColor)
	s.publishEvent(event.NewSettingsChanged(next))
}

func (s *Session) handleSetCanvasColor(cmd *command.SetCanvasColor) {
	s.stateMu.Lock()
	next, err := s.settings.SetCanvasColor(cmd.Color)
	s.stateMu.Unlock()

	if err != nil {
		s.fail(event.OpSettings, err)
		return
	}
	s.logger.Info("Canvas color changed", "color", next.CanvasColor)
	s.redraw()
	s.publishEvent(event.NewSettingsChanged(next))
	s.publishCanvas()
}
