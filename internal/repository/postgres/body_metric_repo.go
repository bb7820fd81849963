package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

const bodyMetricColumns = `id, user_id, measurement_date, weight_kg, body_fat_percent, waist_cm, chest_cm, biceps_cm`

type bodyMetricRepository struct {
	pool *pgxpool.Pool
}

// NewBodyMetricRepository creates a body metric repository backed by PostgreSQL.
func NewBodyMetricRepository(pool *pgxpool.Pool) repository.BodyMetricRepository {
	return &bodyMetricRepository{pool: pool}
}

func scanBodyMetric(row pgx.Row) (domain.BodyMetric, error) {
	var m domain.BodyMetric
	err := row.Scan(&m.ID, &m.UserID, &m.MeasurementDate,
		&m.WeightKg, &m.BodyFatPercent, &m.WaistCm, &m.ChestCm, &m.BicepsCm)
	return m, err
}

func (r *bodyMetricRepository) Create(ctx context.Context, metric *domain.BodyMetric) (int64, error) {
	const query = `INSERT INTO body_metrics
        (user_id, measurement_date, weight_kg, body_fat_percent, waist_cm, chest_cm, biceps_cm)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		metric.UserID, metric.MeasurementDate,
		metric.WeightKg, metric.BodyFatPercent, metric.WaistCm, metric.ChestCm, metric.BicepsCm,
	).Scan(&metric.ID)
	if err != nil {
		return 0, translateError(err)
	}
	return metric.ID, nil
}

func (r *bodyMetricRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BodyMetric, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bodyMetricColumns+` FROM body_metrics WHERE user_id = $1 ORDER BY measurement_date, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make([]domain.BodyMetric, 0)
	for rows.Next() {
		m, err := scanBodyMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func (r *bodyMetricRepository) LastByUser(ctx context.Context, userID int64) (*domain.BodyMetric, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bodyMetricColumns+` FROM body_metrics WHERE user_id = $1
        ORDER BY measurement_date DESC, id DESC LIMIT 1`,
		userID,
	)
	m, err := scanBodyMetric(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
