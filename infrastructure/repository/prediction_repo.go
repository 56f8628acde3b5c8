package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"digitpad-go/domain/history"
	"digitpad-go/domain/prediction"
)

// PredictionCollection is the collection archived predictions are stored in.
const PredictionCollection = "predictions"

// predictionDocument is the MongoDB document structure for predictions.
type predictionDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Time       time.Time          `bson:"time"`
	Digit      int                `bson:"digit"`
	Confidence float64            `bson:"confidence"`
	Model      string             `bson:"model,omitempty"`
	Host       string             `bson:"host,omitempty"`
}

// MongoPredictionRepository archives prediction records in MongoDB.
type MongoPredictionRepository struct {
	collection *mongo.Collection
	model      string
	host       string
	logger     *slog.Logger
}

// NewMongoPredictionRepository creates a repository that tags every record
// with the model name and host it came from.
func NewMongoPredictionRepository(db *MongoDB, model, host string, logger *slog.Logger) *MongoPredictionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoPredictionRepository{
		collection: db.Collection(PredictionCollection),
		model:      model,
		host:       host,
		logger:     logger,
	}
}

// Save inserts a record.
func (r *MongoPredictionRepository) Save(ctx context.Context, rec prediction.Record) error {
	doc := recordToDocument(rec, r.model, r.host)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	r.logger.Debug("Prediction archived", "digit", rec.Digit(), "confidence", rec.Confidence())
	return nil
}

// FindRecent returns up to limit records, oldest first.
func (r *MongoPredictionRepository) FindRecent(ctx context.Context, limit int64) ([]prediction.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []predictionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode predictions: %w", err)
	}

	records := make([]prediction.Record, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		rec, err := documentToRecord(&docs[i])
		if err != nil {
			r.logger.Warn("Skipping invalid archived prediction", "id", docs[i].ID.Hex(), "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// EnsureIndexes creates the time index FindRecent sorts on.
func (r *MongoPredictionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "time", Value: -1}},
		Options: options.Index().SetName("time_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create prediction index: %w", err)
	}
	return nil
}

// recordToDocument converts a domain record to a MongoDB document.
func recordToDocument(rec prediction.Record, model, host string) *predictionDocument {
	return &predictionDocument{
		Time:       rec.Time(),
		Digit:      rec.Digit(),
		Confidence: rec.Confidence(),
		Model:      model,
		Host:       host,
	}
}

// documentToRecord converts a MongoDB document to a domain record.
func documentToRecord(doc *predictionDocument) (prediction.Record, error) {
	return prediction.NewRecord(doc.Time, doc.Digit, doc.Confidence)
}

var _ history.Archive = (*MongoPredictionRepository)(nil)
