package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexivanou/weather-history-api/internal/export"
	"github.com/alexivanou/weather-history-api/internal/model"
)

const dateLayout = "2006-01-02"

// CreateRecord validates the request, resolves the location, fetches the
// historical series, and persists a new record. Nothing is written unless
// every upstream call succeeds.
func (s *Service) CreateRecord(ctx context.Context, req model.CreateRecordRequest) (*model.WeatherRecord, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: missing fields or invalid date format, use YYYY-MM-DD", ErrValidation)
	}
	if req.StartDate > req.EndDate {
		return nil, fmt.Errorf("%w: start date cannot be after end date", ErrValidation)
	}

	loc, err := s.resolver.Resolve(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("could not find location %q: %w", req.Location, err)
	}

	temps, err := s.weather.FetchHistorical(ctx, loc.Latitude, loc.Longitude, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve weather data: %w", err)
	}

	repo, err := s.repo()
	if err != nil {
		return nil, err
	}

	record := &model.WeatherRecord{
		Location:     loc.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Temperatures: temps,
	}
	if _, err := repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Created weather record",
		zap.String("id", record.ID), zap.String("location", record.Location))
	return record, nil
}

// ListRecords returns all records in store-native order
func (s *Service) ListRecords(ctx context.Context) ([]model.WeatherRecord, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// UpdateRecord applies either a full update (both dates present: re-resolve,
// refetch, replace) or a label-only update. A failed re-resolution or refetch
// leaves the stored record untouched.
func (s *Service) UpdateRecord(ctx context.Context, id string, req model.UpdateRecordRequest) (*model.WeatherRecord, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}

	if _, err := repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if req.Location == "" {
		return nil, fmt.Errorf("%w: location is required for update", ErrValidation)
	}

	if req.StartDate == "" || req.EndDate == "" {
		// Label-only mode: no upstream calls, dates and temperatures kept.
		return repo.Update(ctx, id, model.RecordPatch{Location: req.Location})
	}

	if validate.Var(req.StartDate, "datetime="+dateLayout) != nil ||
		validate.Var(req.EndDate, "datetime="+dateLayout) != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrValidation)
	}
	if req.StartDate > req.EndDate {
		return nil, fmt.Errorf("%w: start date cannot be after end date", ErrValidation)
	}

	loc, err := s.resolver.Resolve(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("could not find location %q: %w", req.Location, err)
	}

	temps, err := s.weather.FetchHistorical(ctx, loc.Latitude, loc.Longitude, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve weather data: %w", err)
	}

	return repo.Update(ctx, id, model.RecordPatch{
		Location:     loc.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Temperatures: &temps,
	})
}

// DeleteRecord removes a single record
func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	repo, err := s.repo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// DeleteAllRecords removes every record. The caller must confirm explicitly;
// without confirmation the collection is left untouched.
func (s *Service) DeleteAllRecords(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, fmt.Errorf("%w: confirmation required to clear history", ErrValidation)
	}

	repo, err := s.repo()
	if err != nil {
		return 0, err
	}

	count, err := repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Cleared weather history", zap.Int64("deleted", count))
	return count, nil
}

// ExportJSON renders all records as a JSON document
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return export.JSON(records)
}

// ExportCSV renders all records as a CSV document
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return export.CSV(records)
}

// ExportMarkdown renders all records as a Markdown document
func (s *Service) ExportMarkdown(ctx context.Context) ([]byte, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return export.Markdown(records), nil
}
