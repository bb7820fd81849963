package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"athletrack/backend/internal/api"
	"athletrack/backend/internal/config"
	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/metrics"
	"athletrack/backend/internal/service"
	"athletrack/backend/internal/storage"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	log.Infof("starting athletrack %s", version)

	b, err := openBackend(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer b.close()

	if cfg.Database.Driver == config.DriverMemory {
		if _, err := b.exercises.SeedShared(ctx, domain.SystemExercises); err != nil {
			return fmt.Errorf("seed shared exercises: %w", err)
		}
	}

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, "server", reg)

	// --- Services ---
	authService := service.NewAuthService(b.users, service.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		Expiration: cfg.JWT.Expiration,
	})

	deps := api.RouterDeps{
		AuthService:       authService,
		UserService:       service.NewUserService(b.users),
		ExerciseService:   service.NewExerciseService(b.exercises),
		WorkoutService:    service.NewWorkoutService(b.workouts, b.exercises),
		BodyMetricService: service.NewBodyMetricService(b.bodyMetrics),
		Metrics:           metricsManager,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	// --- Optional: export storage ---
	if cfg.S3.Enabled() {
		fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("initialize s3 storage: %w", err)
		}
		deps.ExportService = service.NewExportService(b.exercises, b.workouts, b.bodyMetrics, fileStorage)
	} else {
		log.Info("s3 not configured; exports disabled")
	}

	// --- Optional: login rate limiting ---
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("failed to close redis client: %v", err)
			}
		}()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		deps.LoginLimiter = redis_rate.NewLimiter(rdb)
		deps.LoginPerMinute = cfg.Redis.LoginPerMinute
		log.Infof("login rate limit: %d/min per client", cfg.Redis.LoginPerMinute)
	}

	// --- HTTP ---
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	api.SetupRoutes(router, deps)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exiting")
	return nil
}
