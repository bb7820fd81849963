package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

type exerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository creates an exercise repository backed by PostgreSQL.
func NewExerciseRepository(pool *pgxpool.Pool) repository.ExerciseRepository {
	return &exerciseRepository{pool: pool}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	const query = `INSERT INTO exercises (user_id, name, muscle_group, is_cardio)
        VALUES ($1, $2, $3, $4) RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		exercise.UserID, exercise.Name, exercise.MuscleGroup, exercise.IsCardio,
	).Scan(&exercise.ID)
	if err != nil {
		return 0, translateError(err)
	}
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var ex domain.Exercise
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, muscle_group, is_cardio FROM exercises WHERE id = $1`, id,
	).Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.MuscleGroup, &ex.IsCardio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ex, nil
}

func (r *exerciseRepository) ListVisible(ctx context.Context, userID int64) ([]domain.Exercise, error) {
	// COLLATE "C" gives byte-wise ordering regardless of the database locale.
	const query = `SELECT id, user_id, name, muscle_group, is_cardio FROM exercises
        WHERE user_id IS NULL OR user_id = $1
        ORDER BY name COLLATE "C", id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]domain.Exercise, 0)
	for rows.Next() {
		var ex domain.Exercise
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.MuscleGroup, &ex.IsCardio); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

func (r *exerciseRepository) ExistsForOwner(ctx context.Context, userID int64, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM exercises WHERE user_id = $1 AND LOWER(name) = LOWER($2))`,
		userID, name,
	).Scan(&exists)
	return exists, err
}

// Delete relies on the workout_sets foreign key cascade to drop sets.
func (r *exerciseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) SeedShared(ctx context.Context, exercises []domain.Exercise) (int, error) {
	const query = `INSERT INTO exercises (user_id, name, muscle_group, is_cardio)
        SELECT NULL, $1, $2, $3
        WHERE NOT EXISTS (SELECT 1 FROM exercises WHERE user_id IS NULL AND name = $1)`

	inserted := 0
	for _, ex := range exercises {
		tag, err := r.pool.Exec(ctx, query, ex.Name, ex.MuscleGroup, ex.IsCardio)
		if err != nil {
			return inserted, err
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
