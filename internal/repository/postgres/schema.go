package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is idempotent; Migrate may run on every deploy.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    email         TEXT        NOT NULL,
    password_hash TEXT        NOT NULL,
    first_name    TEXT        NOT NULL DEFAULT '',
    last_name     TEXT        NOT NULL DEFAULT '',
    date_joined   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS exercises (
    id           BIGSERIAL PRIMARY KEY,
    user_id      BIGINT REFERENCES users (id) ON DELETE CASCADE,
    name         VARCHAR(150) NOT NULL,
    muscle_group VARCHAR(100) NOT NULL,
    is_cardio    BOOLEAN      NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS exercises_user_id_idx ON exercises (user_id);

CREATE TABLE IF NOT EXISTS workouts (
    id               BIGSERIAL PRIMARY KEY,
    user_id          BIGINT       NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    name             VARCHAR(150) NOT NULL,
    workout_date     TIMESTAMPTZ  NOT NULL,
    duration_minutes INT,
    notes            TEXT         NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS workouts_user_date_idx ON workouts (user_id, workout_date DESC);

CREATE TABLE IF NOT EXISTS workout_sets (
    id           BIGSERIAL PRIMARY KEY,
    workout_id   BIGINT NOT NULL REFERENCES workouts (id) ON DELETE CASCADE,
    exercise_id  BIGINT NOT NULL REFERENCES exercises (id) ON DELETE CASCADE,
    set_number   INT    NOT NULL,
    weight_kg    DOUBLE PRECISION,
    reps         INT,
    distance_km  DOUBLE PRECISION,
    time_seconds INT
);
CREATE INDEX IF NOT EXISTS workout_sets_workout_id_idx ON workout_sets (workout_id);
CREATE INDEX IF NOT EXISTS workout_sets_exercise_id_idx ON workout_sets (exercise_id);

CREATE TABLE IF NOT EXISTS body_metrics (
    id               BIGSERIAL PRIMARY KEY,
    user_id          BIGINT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    measurement_date TIMESTAMPTZ NOT NULL,
    weight_kg        DOUBLE PRECISION,
    body_fat_percent DOUBLE PRECISION,
    waist_cm         DOUBLE PRECISION,
    chest_cm         DOUBLE PRECISION,
    biceps_cm        DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS body_metrics_user_date_idx ON body_metrics (user_id, measurement_date);
`

// Migrate creates the tables and indexes when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// Exec without arguments uses the simple protocol, which accepts
	// several statements at once.
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
