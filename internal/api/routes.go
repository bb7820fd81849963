package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"athletrack/backend/internal/metrics"
	"athletrack/backend/internal/service"
)

// RouterDeps collects everything SetupRoutes wires into handlers.
// ExportService, LoginLimiter and MetricsHandler are optional.
type RouterDeps struct {
	AuthService       service.AuthService
	UserService       service.UserService
	ExerciseService   service.ExerciseService
	WorkoutService    service.WorkoutService
	BodyMetricService service.BodyMetricService
	ExportService     service.ExportService

	Metrics        *metrics.Manager
	MetricsHandler http.Handler

	LoginLimiter   RequestRateLimiter
	LoginPerMinute int
}

func SetupRoutes(router *gin.Engine, deps RouterDeps) {
	m := deps.Metrics

	router.Use(PanicRecovery(m), RequestLogger(), RequestMetrics(m))

	authHandler := NewAuthHandler(deps.AuthService, deps.UserService, m)
	userHandler := NewUserHandler(deps.UserService)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService, m)
	workoutHandler := NewWorkoutHandler(deps.WorkoutService, m)
	bodyMetricHandler := NewBodyMetricHandler(deps.BodyMetricService, m)

	authMiddleware := AuthMiddleware(deps.AuthService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := router.Group("/api")

	authGroup := api.Group("/Auth")
	{
		authGroup.POST("/register", authHandler.Register)
		if deps.LoginLimiter != nil {
			authGroup.POST("/login", RateLimit(deps.LoginLimiter, "login", deps.LoginPerMinute, m), authHandler.Login)
		} else {
			authGroup.POST("/login", authHandler.Login)
		}
		authGroup.GET("/me", authMiddleware, authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		users := protected.Group("/Users")
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)

		exercises := protected.Group("/Exercises")
		exercises.GET("", exerciseHandler.ListExercises)
		exercises.POST("", exerciseHandler.CreateExercise)
		exercises.DELETE("/:id", exerciseHandler.DeleteExercise)

		workouts := protected.Group("/Workouts")
		workouts.GET("", workoutHandler.ListWorkouts)
		workouts.GET("/records", workoutHandler.PersonalRecords)
		workouts.GET("/:id", workoutHandler.GetWorkout)
		workouts.POST("", workoutHandler.CreateWorkout)
		workouts.PUT("/:id", workoutHandler.ReplaceWorkout)
		workouts.DELETE("/:id", workoutHandler.DeleteWorkout)

		metricsGroup := protected.Group("/BodyMetrics")
		metricsGroup.GET("", bodyMetricHandler.ListMetrics)
		metricsGroup.GET("/last", bodyMetricHandler.LastMetric)
		metricsGroup.POST("", bodyMetricHandler.AppendMetric)

		if deps.ExportService != nil {
			exportHandler := NewExportHandler(deps.ExportService, m)
			protected.POST("/Exports", exportHandler.CreateExport)
		}
	}
}
