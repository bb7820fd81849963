package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

const workoutColumns = `id, user_id, name, workout_date, duration_minutes, notes`

type workoutRepository struct {
	pool *pgxpool.Pool
}

// NewWorkoutRepository creates a workout repository backed by PostgreSQL.
func NewWorkoutRepository(pool *pgxpool.Pool) repository.WorkoutRepository {
	return &workoutRepository{pool: pool}
}

// Create inserts the workout and its sets in one transaction.
func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) (id int64, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const insertWorkout = `INSERT INTO workouts (user_id, name, workout_date, duration_minutes, notes)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err = tx.QueryRow(ctx, insertWorkout,
		workout.UserID, workout.Name, workout.Date, workout.DurationMinutes, workout.Notes,
	).Scan(&workout.ID)
	if err != nil {
		return 0, translateError(err)
	}

	if err = insertSets(ctx, tx, workout); err != nil {
		return 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return workout.ID, nil
}

func insertSets(ctx context.Context, tx pgx.Tx, workout *domain.Workout) error {
	const insertSet = `INSERT INTO workout_sets
        (workout_id, exercise_id, set_number, weight_kg, reps, distance_km, time_seconds)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	for i := range workout.Sets {
		set := &workout.Sets[i]
		err := tx.QueryRow(ctx, insertSet,
			workout.ID, set.ExerciseID, set.SetNumber,
			set.WeightKg, set.Reps, set.DistanceKm, set.TimeSeconds,
		).Scan(&set.ID)
		if err != nil {
			return translateError(err)
		}
		set.WorkoutID = &workout.ID
	}
	return nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	workouts, err := r.query(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, repository.ErrNotFound
	}
	return &workouts[0], nil
}

func (r *workoutRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Workout, error) {
	return r.query(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE user_id = $1 ORDER BY workout_date DESC, id DESC`,
		userID,
	)
}

// query loads the matching workouts, then all of their sets with exercises in
// a second round trip.
func (r *workoutRepository) query(ctx context.Context, query string, arg any) ([]domain.Workout, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]domain.Workout, 0)
	index := make(map[int64]int)
	ids := make([]int64, 0)
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Date, &w.DurationMinutes, &w.Notes); err != nil {
			return nil, err
		}
		w.Sets = make([]domain.WorkoutSet, 0)
		index[w.ID] = len(workouts)
		ids = append(ids, w.ID)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return workouts, nil
	}

	const setsQuery = `SELECT s.id, s.workout_id, s.exercise_id, s.set_number,
            s.weight_kg, s.reps, s.distance_km, s.time_seconds,
            e.id, e.user_id, e.name, e.muscle_group, e.is_cardio
        FROM workout_sets s
        JOIN exercises e ON e.id = s.exercise_id
        WHERE s.workout_id = ANY($1)
        ORDER BY s.workout_id, s.set_number, s.id`

	setRows, err := r.pool.Query(ctx, setsQuery, ids)
	if err != nil {
		return nil, err
	}
	defer setRows.Close()

	for setRows.Next() {
		var (
			set       domain.WorkoutSet
			ex        domain.Exercise
			workoutID int64
		)
		err := setRows.Scan(&set.ID, &workoutID, &set.ExerciseID, &set.SetNumber,
			&set.WeightKg, &set.Reps, &set.DistanceKm, &set.TimeSeconds,
			&ex.ID, &ex.UserID, &ex.Name, &ex.MuscleGroup, &ex.IsCardio)
		if err != nil {
			return nil, err
		}
		set.WorkoutID = &workoutID
		set.Exercise = &ex

		w := &workouts[index[workoutID]]
		w.Sets = append(w.Sets, set)
	}
	return workouts, setRows.Err()
}

// Replace updates the header row, then deletes and reinserts every set in a
// single transaction. A zero-row update means the workout was deleted after
// the caller loaded it.
func (r *workoutRepository) Replace(ctx context.Context, workout *domain.Workout) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE workouts SET name = $2, workout_date = $3, duration_minutes = $4, notes = $5 WHERE id = $1`,
		workout.ID, workout.Name, workout.Date, workout.DurationMinutes, workout.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = repository.ErrConflict
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM workout_sets WHERE workout_id = $1`, workout.ID); err != nil {
		return err
	}
	if err = insertSets(ctx, tx, workout); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *workoutRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
