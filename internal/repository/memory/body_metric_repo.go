package memory

import (
	"context"
	"sort"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

type bodyMetricRepository struct {
	s *Store
}

func (r *bodyMetricRepository) Create(_ context.Context, metric *domain.BodyMetric) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	metric.ID = r.s.newID()
	r.s.bodyMetrics[metric.ID] = *metric
	return metric.ID, nil
}

// listLocked returns the user's metrics oldest first. Caller holds mu.
func (r *bodyMetricRepository) listLocked(userID int64) []domain.BodyMetric {
	out := make([]domain.BodyMetric, 0)
	for _, m := range r.s.bodyMetrics {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MeasurementDate.Equal(out[j].MeasurementDate) {
			return out[i].MeasurementDate.Before(out[j].MeasurementDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *bodyMetricRepository) ListByUser(_ context.Context, userID int64) ([]domain.BodyMetric, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.listLocked(userID), nil
}

func (r *bodyMetricRepository) LastByUser(_ context.Context, userID int64) (*domain.BodyMetric, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	metrics := r.listLocked(userID)
	if len(metrics) == 0 {
		return nil, repository.ErrNotFound
	}
	last := metrics[len(metrics)-1]
	return &last, nil
}
