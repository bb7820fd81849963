package service

import (
	"context"
	"errors"
	"time"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

var ErrMetricNotFound = errors.New("no body metrics recorded")

// BodyMetricInput holds the measured values; any of them may be omitted.
type BodyMetricInput struct {
	MeasurementDate time.Time
	WeightKg        *float64
	BodyFatPercent  *float64
	WaistCm         *float64
	ChestCm         *float64
	BicepsCm        *float64
}

type BodyMetricService interface {
	AppendMetric(ctx context.Context, userID int64, in BodyMetricInput) (*domain.BodyMetric, error)
	ListMetrics(ctx context.Context, userID int64) ([]domain.BodyMetric, error)
	LastMetric(ctx context.Context, userID int64) (*domain.BodyMetric, error)
}

type bodyMetricService struct {
	metricRepo repository.BodyMetricRepository
}

func NewBodyMetricService(metricRepo repository.BodyMetricRepository) BodyMetricService {
	return &bodyMetricService{metricRepo: metricRepo}
}

// AppendMetric always inserts a new row; earlier measurements are never updated.
func (s *bodyMetricService) AppendMetric(ctx context.Context, userID int64, in BodyMetricInput) (*domain.BodyMetric, error) {
	if in.MeasurementDate.IsZero() {
		return nil, validationError("measurement date is required")
	}

	metric := &domain.BodyMetric{
		UserID:          userID,
		MeasurementDate: in.MeasurementDate,
		WeightKg:        in.WeightKg,
		BodyFatPercent:  in.BodyFatPercent,
		WaistCm:         in.WaistCm,
		ChestCm:         in.ChestCm,
		BicepsCm:        in.BicepsCm,
	}
	if _, err := s.metricRepo.Create(ctx, metric); err != nil {
		return nil, err
	}
	return metric, nil
}

func (s *bodyMetricService) ListMetrics(ctx context.Context, userID int64) ([]domain.BodyMetric, error) {
	return s.metricRepo.ListByUser(ctx, userID)
}

func (s *bodyMetricService) LastMetric(ctx context.Context, userID int64) (*domain.BodyMetric, error) {
	metric, err := s.metricRepo.LastByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMetricNotFound
	}
	return metric, err
}
