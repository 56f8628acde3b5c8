package session

import (
	"context"
	"fmt"
	"time"

	"digitpad-go/core/command"
	"digitpad-go/core/event"
	"digitpad-go/domain/prediction"
	"digitpad-go/infrastructure/logging"
)

// archiveTimeout bounds mirroring one record to the archive.
const archiveTimeout = 5 * time.Second

func (s *Session) handlePredict(cmd *command.Predict) {
	outcome, err := s.predict()
	if err != nil {
		return
	}

	s.stateMu.Lock()
	s.ledger.Append(outcome.Record)
	total := s.ledger.Len()
	s.stateMu.Unlock()

	s.logger.Info("Prediction made",
		"digit", outcome.Record.Digit(),
		"confidence", fmt.Sprintf("%.2f%%", outcome.Record.Confidence()),
		"model", s.ClassifierName())

	s.archiveRecord(outcome.Record)
	s.publishEvent(event.NewPredictionMade(outcome.Record, outcome.Probabilities, total))
}

// predict runs capture, preprocess and inference. Failures are reported
// before returning; history is left untouched.
func (s *Session) predict() (prediction.Outcome, error) {
	if s.classifier == nil {
		err := fmt.Errorf("no model loaded")
		s.fail(event.OpPredict, err)
		return prediction.Outcome{}, err
	}

	tensor, err := s.preprocessor.Preprocess(s.capture.Image())
	if err != nil {
		err = fmt.Errorf("failed to preprocess drawing: %w", err)
		s.fail(event.OpPreprocess, err)
		return prediction.Outcome{}, err
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.predictTimeout)
	defer cancel()
	ctx = logging.With(ctx, s.logger)

	start := time.Now()
	scores, err := s.classifier.Predict(ctx, tensor)
	if err != nil {
		err = fmt.Errorf("failed to make prediction: %w", err)
		s.fail(event.OpPredict, err)
		return prediction.Outcome{}, err
	}
	s.logger.Debug("Inference finished", "elapsed", time.Since(start))

	outcome, err := prediction.Decide(scores, s.now())
	if err != nil {
		err = fmt.Errorf("failed to interpret model output: %w", err)
		s.fail(event.OpPredict, err)
		return prediction.Outcome{}, err
	}
	return outcome, nil
}

func (s *Session) archiveRecord(r prediction.Record) {
	if s.archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, archiveTimeout)
	defer cancel()

	if err := s.archive.Save(ctx, r); err != nil {
		s.logger.Warn("Failed to archive prediction", "error", err)
	}
}

func (s *Session) handleSaveDrawing(cmd *command.SaveDrawing) {
	path, err := s.capture.SaveToFile(cmd.Path)
	if err != nil {
		s.fail(event.OpSave, fmt.Errorf("failed to save drawing: %w", err))
		return
	}

	s.logger.Info("Drawing saved", "path", path)
	s.publishEvent(event.NewDrawingSaved(path))
}

func (s *Session) handleExportHistory(cmd *command.ExportHistory) {
	if cmd.Path == "" {
		s.fail(event.OpExport, fmt.Errorf("no export path given"))
		return
	}

	s.stateMu.RLock()
	count := s.ledger.Len()
	err := s.ledger.ExportFile(cmd.Path)
	s.stateMu.RUnlock()

	if err != nil {
		s.fail(event.OpExport, fmt.Errorf("failed to export history: %w", err))
		return
	}

	s.logger.Info("History exported", "path", cmd.Path, "records", count)
	s.publishEvent(event.NewHistoryExported(cmd.Path, count))
}
