// Command digitpad-predict classifies digit images and prints the results as
// history CSV.
//
// Usage:
//
//	digitpad-predict [flags] image...
//	digitpad-predict -recent 50 -mongo-uri mongodb://localhost:27017
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"digitpad-go/domain/history"
	"digitpad-go/domain/prediction"
	"digitpad-go/infrastructure/classifier"
	"digitpad-go/infrastructure/config"
	"digitpad-go/infrastructure/imaging"
	"digitpad-go/infrastructure/logging"
	"digitpad-go/infrastructure/repository"
)

// errSomeFailed reports that at least one image could not be classified.
var errSomeFailed = errors.New("some images failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "digitpad-predict:", err)
		os.Exit(1)
	}
}

type options struct {
	config.Config
	out    string
	recent int64
}

func parseOptions(args []string, stderr io.Writer) (*options, []string, error) {
	fs := flag.NewFlagSet("digitpad-predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: digitpad-predict [flags] image...")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.out, "out", "", "write CSV to this file instead of stdout")
	fs.Int64Var(&opts.recent, "recent", 0, "print the N most recent archived predictions instead of classifying")

	cfg, err := config.ParseConfig(fs, args)
	if err != nil {
		return nil, nil, err
	}
	opts.Config = cfg
	return opts, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, files, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	// stdout carries the CSV, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: opts.Level()}))

	var records []prediction.Record
	var runErr error
	switch {
	case opts.recent > 0:
		records, err = recentRecords(ctx, opts, logger)
		if err != nil {
			return err
		}
	case len(files) == 0:
		return errors.New("no images given")
	default:
		records, runErr = classifyFiles(ctx, opts, files, logger)
	}

	if err := writeRecords(opts.out, stdout, records); err != nil {
		return err
	}
	return runErr
}

func classifyFiles(ctx context.Context, opts *options, files []string, logger *slog.Logger) ([]prediction.Record, error) {
	clfCfg := classifier.DefaultConfig()
	clfCfg.Model = opts.Model
	clfCfg.ModelName = opts.ModelName
	clfCfg.ORTLibraryPath = opts.ORTLibrary
	clfCfg.Timeout = opts.PredictTimeout
	clfCfg.Logger = logger

	clf, err := classifier.Open(clfCfg)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	defer clf.Close()

	ledger := history.NewLedger()
	pre := imaging.NewPreprocessor()
	failed := 0
	ctx = logging.With(ctx, logger)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return ledger.Records(), err
		}

		fileCtx := logging.WithAttrs(ctx, "file", path)
		rec, err := classifyFile(fileCtx, clf, pre, path, opts.PredictTimeout)
		if err != nil {
			failed++
			logging.From(fileCtx).Error("Prediction failed", "error", err)
			continue
		}
		ledger.Append(rec)
		logging.From(fileCtx).Info("Prediction made", "digit", rec.Digit(), "confidence", rec.Confidence())
	}

	if failed > 0 {
		return ledger.Records(), fmt.Errorf("%w: %d of %d", errSomeFailed, failed, len(files))
	}
	return ledger.Records(), nil
}

func classifyFile(ctx context.Context, clf classifier.Classifier, pre *imaging.Preprocessor, path string, timeout time.Duration) (prediction.Record, error) {
	img, err := imaging.LoadFile(path)
	if err != nil {
		return prediction.Record{}, err
	}
	tensor, err := pre.Preprocess(img)
	if err != nil {
		return prediction.Record{}, fmt.Errorf("preprocess: %w", err)
	}

	predictCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scores, err := clf.Predict(predictCtx, tensor)
	if err != nil {
		return prediction.Record{}, fmt.Errorf("predict: %w", err)
	}
	outcome, err := prediction.Decide(scores, time.Now())
	if err != nil {
		return prediction.Record{}, fmt.Errorf("predict: %w", err)
	}
	return outcome.Record, nil
}

func recentRecords(ctx context.Context, opts *options, logger *slog.Logger) ([]prediction.Record, error) {
	if !opts.ArchiveEnabled() {
		return nil, errors.New("-recent needs -mongo-uri or DIGITPAD_MONGO_URI")
	}

	mongoCfg := repository.DefaultMongoDBConfig()
	mongoCfg.URI = opts.MongoURI
	mongoCfg.Database = opts.MongoDatabase

	db, err := repository.NewMongoDB(ctx, mongoCfg, logger)
	if err != nil {
		return nil, err
	}
	defer db.Close(context.Background())

	repo := repository.NewMongoPredictionRepository(db, "", "", logger)
	return repo.FindRecent(ctx, opts.recent)
}

func writeRecords(path string, stdout io.Writer, records []prediction.Record) error {
	if path == "" {
		return history.WriteRecords(stdout, records)
	}

	ledger := history.NewLedger()
	for _, r := range records {
		ledger.Append(r)
	}
	return ledger.ExportFile(path)
}
