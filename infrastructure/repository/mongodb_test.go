package repository

import (
	"context"
	"testing"
	"time"

	"digitpad-go/domain/prediction"
)

func TestDefaultMongoDBConfig(t *testing.T) {
	config := DefaultMongoDBConfig()

	if config == nil {
		t.Fatal("DefaultMongoDBConfig returned nil")
	}

	if config.URI != "mongodb://localhost:27017" {
		t.Errorf("URI = %v, want mongodb://localhost:27017", config.URI)
	}

	if config.Database != "digitpad" {
		t.Errorf("Database = %v, want digitpad", config.Database)
	}

	if config.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", config.ConnectTimeout)
	}

	if config.PingTimeout != 5*time.Second {
		t.Errorf("PingTimeout = %v, want 5s", config.PingTimeout)
	}
}

func TestMongoDBConfig_DatabaseName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		database string
		want     string
		wantErr  bool
	}{
		{"explicit", "mongodb://localhost:27017", "archive", "archive", false},
		{"from uri", "mongodb://localhost:27017/fromuri", "", "fromuri", false},
		{"explicit wins", "mongodb://localhost:27017/fromuri", "archive", "archive", false},
		{"fallback", "mongodb://localhost:27017", "", "digitpad", false},
		{"bad scheme", "http://localhost:27017", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &MongoDBConfig{URI: tt.uri, Database: tt.database}
			got, err := cfg.databaseName()
			if (err != nil) != tt.wantErr {
				t.Fatalf("databaseName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("databaseName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewMongoDB_InvalidURI(t *testing.T) {
	_, err := NewMongoDB(context.Background(), &MongoDBConfig{URI: "not-a-uri"}, nil)
	if err == nil {
		t.Error("NewMongoDB() error = nil, want invalid URI error")
	}
}

func TestRecordToDocument(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	rec, err := prediction.NewRecord(at, 6, 72.5)
	if err != nil {
		t.Fatal(err)
	}

	doc := recordToDocument(rec, "onnx:mnist.onnx", "desk")

	if !doc.Time.Equal(at) {
		t.Errorf("Time = %v, want %v", doc.Time, at)
	}
	if doc.Digit != 6 {
		t.Errorf("Digit = %d, want 6", doc.Digit)
	}
	if doc.Confidence != 72.5 {
		t.Errorf("Confidence = %v, want 72.5", doc.Confidence)
	}
	if doc.Model != "onnx:mnist.onnx" || doc.Host != "desk" {
		t.Errorf("Model/Host = %v/%v", doc.Model, doc.Host)
	}
	if !doc.ID.IsZero() {
		t.Error("ID should be left for the database to assign")
	}
}

func TestDocumentToRecord(t *testing.T) {
	tests := []struct {
		name    string
		doc     predictionDocument
		wantErr bool
	}{
		{"valid", predictionDocument{Time: time.Now(), Digit: 3, Confidence: 99.1}, false},
		{"digit out of range", predictionDocument{Time: time.Now(), Digit: 12, Confidence: 50}, true},
		{"confidence out of range", predictionDocument{Time: time.Now(), Digit: 1, Confidence: 150}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := documentToRecord(&tt.doc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("documentToRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && rec.Digit() != tt.doc.Digit {
				t.Errorf("Digit() = %d, want %d", rec.Digit(), tt.doc.Digit)
			}
		})
	}
}
