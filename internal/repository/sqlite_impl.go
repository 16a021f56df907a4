package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alexivanou/weather-history-api/internal/model"
)

// sqliteRecordRepository is the embedded fallback store used for development
// and tests. It generates ObjectID-shaped hex identifiers so id validation
// behaves the same as the Mongo store.
type sqliteRecordRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository creates a record repository backed by SQLite
func NewSQLiteRepository(db *sqlx.DB) RecordRepository {
	return &sqliteRecordRepository{db: db}
}

type recordRow struct {
	ID           string    `db:"id"`
	Location     string    `db:"location"`
	StartDate    string    `db:"start_date"`
	EndDate      string    `db:"end_date"`
	Temperatures string    `db:"temperatures"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row recordRow) toModel() (model.WeatherRecord, error) {
	var temps model.DailyTemperatures
	if err := json.Unmarshal([]byte(row.Temperatures), &temps); err != nil {
		return model.WeatherRecord{}, fmt.Errorf("%w: corrupt temperatures column: %v", ErrUnavailable, err)
	}
	return model.WeatherRecord{
		ID:           row.ID,
		Location:     row.Location,
		StartDate:    row.StartDate,
		EndDate:      row.EndDate,
		Temperatures: temps,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (r *sqliteRecordRepository) Create(ctx context.Context, record *model.WeatherRecord) (string, error) {
	temps, err := json.Marshal(record.Temperatures)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	id := primitive.NewObjectID().Hex()
	now := time.Now().UTC()

	q := `
		INSERT INTO weather_records (id, location, start_date, end_date, temperatures, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, q, id, record.Location, record.StartDate, record.EndDate, string(temps), now, now); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	record.ID = id
	record.CreatedAt = now
	record.UpdatedAt = now
	return id, nil
}

func (r *sqliteRecordRepository) List(ctx context.Context) ([]model.WeatherRecord, error) {
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM weather_records"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var records []model.WeatherRecord
	for _, row := range rows {
		record, err := row.toModel()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *sqliteRecordRepository) GetByID(ctx context.Context, id string) (*model.WeatherRecord, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var row recordRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM weather_records WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	record, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *sqliteRecordRepository) Update(ctx context.Context, id string, patch model.RecordPatch) (*model.WeatherRecord, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	now := time.Now().UTC()

	var result sql.Result
	var err error
	if patch.Temperatures != nil {
		var temps []byte
		temps, err = json.Marshal(patch.Temperatures)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		q := `
			UPDATE weather_records
			SET location = ?, start_date = ?, end_date = ?, temperatures = ?, updated_at = ?
			WHERE id = ?
		`
		result, err = r.db.ExecContext(ctx, q, patch.Location, patch.StartDate, patch.EndDate, string(temps), now, id)
	} else {
		q := "UPDATE weather_records SET location = ?, updated_at = ? WHERE id = ?"
		result, err = r.db.ExecContext(ctx, q, patch.Location, now, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *sqliteRecordRepository) Delete(ctx context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM weather_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *sqliteRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM weather_records")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}
