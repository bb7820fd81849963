package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"athletrack/backend/internal/metrics"
	"athletrack/backend/internal/service"
)

// ExerciseHandler handles HTTP requests related to the exercise library.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	metrics         *metrics.Manager
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, m *metrics.Manager) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, metrics: m}
}

// CreateExerciseRequest defines the structure for creating a new exercise.
// Any owner id in the body is ignored; the caller always owns the result.
type CreateExerciseRequest struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup" binding:"required"`
	IsCardio    bool   `json:"isCardio"`
}

// ListExercises godoc
// @Summary List exercises visible to the caller
// @Description Shared exercises merged with the caller's own, ordered by name.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Exercise
// @Router /Exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "list exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise godoc
// @Summary Create a custom exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 200 {object} domain.Exercise
// @Failure 400 {object} gin.H "Invalid input or duplicate name"
// @Router /Exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, service.ExerciseInput{
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		IsCardio:    req.IsCardio,
	})
	if err != nil {
		handleServiceError(c, err, "create exercise")
		return
	}

	h.metrics.CounterExercisesCreated.Inc()
	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise removes one of the caller's own exercises.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, exerciseID); err != nil {
		handleServiceError(c, err, "delete exercise")
		return
	}
	c.Status(http.StatusNoContent)
}
