package repository

import (
	"context"
	"errors"

	"github.com/alexivanou/weather-history-api/internal/model"
)

var (
	// ErrNotFound means the identifier was well-formed but no record exists.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID means the identifier is not well-formed for the store.
	ErrInvalidID = errors.New("invalid record id")
	// ErrUnavailable means the store itself failed or is not reachable.
	ErrUnavailable = errors.New("record store unavailable")
)

// RecordRepository defines operations over persisted weather records.
// Timestamps are owned by the store: Create sets created_at/updated_at,
// Update bumps updated_at.
type RecordRepository interface {
	Create(ctx context.Context, record *model.WeatherRecord) (string, error)
	List(ctx context.Context) ([]model.WeatherRecord, error)
	GetByID(ctx context.Context, id string) (*model.WeatherRecord, error)
	Update(ctx context.Context, id string, patch model.RecordPatch) (*model.WeatherRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
