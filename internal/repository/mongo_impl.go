package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alexivanou/weather-history-api/internal/model"
)

// CollectionName is the document collection holding weather records
const CollectionName = "weather_history"

type mongoRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a record repository backed by a Mongo collection
func NewMongoRepository(db *mongo.Database) RecordRepository {
	return &mongoRecordRepository{collection: db.Collection(CollectionName)}
}

type temperaturesDoc struct {
	Time              []string  `bson:"time"`
	Temperature2mMean []float64 `bson:"temperature_2m_mean"`
}

type recordDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Location     string             `bson:"location"`
	StartDate    string             `bson:"start_date"`
	EndDate      string             `bson:"end_date"`
	Temperatures temperaturesDoc    `bson:"temperatures"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d recordDoc) toModel() model.WeatherRecord {
	return model.WeatherRecord{
		ID:        d.ID.Hex(),
		Location:  d.Location,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Temperatures: model.DailyTemperatures{
			Time:              d.Temperatures.Time,
			Temperature2mMean: d.Temperatures.Temperature2mMean,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *mongoRecordRepository) Create(ctx context.Context, record *model.WeatherRecord) (string, error) {
	now := time.Now().UTC()
	doc := recordDoc{
		Location:  record.Location,
		StartDate: record.StartDate,
		EndDate:   record.EndDate,
		Temperatures: temperaturesDoc{
			Time:              record.Temperatures.Time,
			Temperature2mMean: record.Temperatures.Temperature2mMean,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type", ErrUnavailable)
	}

	record.ID = id.Hex()
	record.CreatedAt = now
	record.UpdatedAt = now
	return record.ID, nil
}

func (r *mongoRecordRepository) List(ctx context.Context) ([]model.WeatherRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var records []model.WeatherRecord
	for cursor.Next(ctx) {
		var doc recordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		records = append(records, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return records, nil
}

func (r *mongoRecordRepository) GetByID(ctx context.Context, id string) (*model.WeatherRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var doc recordDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	record := doc.toModel()
	return &record, nil
}

func (r *mongoRecordRepository) Update(ctx context.Context, id string, patch model.RecordPatch) (*model.WeatherRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	set := bson.M{
		"location":   patch.Location,
		"updated_at": time.Now().UTC(),
	}
	if patch.Temperatures != nil {
		set["start_date"] = patch.StartDate
		set["end_date"] = patch.EndDate
		set["temperatures"] = temperaturesDoc{
			Time:              patch.Temperatures.Time,
			Temperature2mMean: patch.Temperatures.Temperature2mMean,
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *mongoRecordRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mongoRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return result.DeletedCount, nil
}
