package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"athletrack/backend/internal/config"
	"athletrack/backend/internal/repository"
	"athletrack/backend/internal/repository/memory"
	"athletrack/backend/internal/repository/mongo"
	"athletrack/backend/internal/repository/postgres"
)

// backend bundles the repositories of one storage driver.
type backend struct {
	users       repository.UserRepository
	exercises   repository.ExerciseRepository
	workouts    repository.WorkoutRepository
	bodyMetrics repository.BodyMetricRepository

	// migrate installs schema or indexes; nil for drivers without any.
	migrate func(ctx context.Context) error
	close   func()
}

func openBackend(ctx context.Context, dbCfg config.DatabaseConfig) (*backend, error) {
	switch dbCfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewDBPool(ctx, dbCfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		log.Info("postgres connection established")
		return &backend{
			users:       postgres.NewUserRepository(pool),
			exercises:   postgres.NewExerciseRepository(pool),
			workouts:    postgres.NewWorkoutRepository(pool),
			bodyMetrics: postgres.NewBodyMetricRepository(pool),
			migrate: func(ctx context.Context) error {
				return postgres.Migrate(ctx, pool)
			},
			close: pool.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongo.ConnectDB(dbCfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		db := client.Database(dbCfg.Name)
		return &backend{
			users:       mongo.NewMongoUserRepository(db),
			exercises:   mongo.NewMongoExerciseRepository(db),
			workouts:    mongo.NewMongoWorkoutRepository(db),
			bodyMetrics: mongo.NewMongoBodyMetricRepository(db),
			migrate: func(ctx context.Context) error {
				return mongo.EnsureIndexes(ctx, db)
			},
			close: func() {
				log.Info("disconnecting mongodb")
				if err := mongo.DisconnectDB(client); err != nil {
					log.Errorf("failed to disconnect mongodb: %v", err)
				}
			},
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn("using in-memory storage; data is lost on restart")
		return &backend{
			users:       store.Users(),
			exercises:   store.Exercises(),
			workouts:    store.Workouts(),
			bodyMetrics: store.BodyMetrics(),
			close:       func() {},
		}, nil
	}

	return nil, fmt.Errorf("unknown database driver %q", dbCfg.Driver)
}
