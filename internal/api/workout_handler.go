package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"athletrack/backend/internal/metrics"
	"athletrack/backend/internal/service"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	metrics        *metrics.Manager
}

func NewWorkoutHandler(workoutService service.WorkoutService, m *metrics.Manager) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, metrics: m}
}

// WorkoutRequest is the body of both create and replace. Set ids and the
// owner are assigned by the server.
type WorkoutRequest struct {
	ID              *int64       `json:"id"`
	Name            string       `json:"name"`
	Date            time.Time    `json:"date"`
	DurationMinutes *int         `json:"durationMinutes" binding:"omitempty,min=0"`
	Notes           string       `json:"notes"`
	WorkoutSets     []SetRequest `json:"workoutSets" binding:"dive"`
}

type SetRequest struct {
	ExerciseID  int64    `json:"exerciseId" binding:"required"`
	SetNumber   int      `json:"setNumber"`
	WeightKg    *float64 `json:"weightKg"`
	Reps        *int     `json:"reps"`
	DistanceKm  *float64 `json:"distanceKm"`
	TimeSeconds *int     `json:"timeSeconds"`
}

func (r *WorkoutRequest) toInput() service.WorkoutInput {
	sets := make([]service.SetInput, 0, len(r.WorkoutSets))
	for _, s := range r.WorkoutSets {
		sets = append(sets, service.SetInput{
			ExerciseID:  s.ExerciseID,
			SetNumber:   s.SetNumber,
			WeightKg:    s.WeightKg,
			Reps:        s.Reps,
			DistanceKm:  s.DistanceKm,
			TimeSeconds: s.TimeSeconds,
		})
	}
	return service.WorkoutInput{
		Name:            r.Name,
		Date:            r.Date,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		Sets:            sets,
	}
}

func bindWorkout(c *gin.Context) (*WorkoutRequest, bool) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return nil, false
	}
	return &req, true
}

// ListWorkouts godoc
// @Summary List the caller's workouts, newest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Workout
// @Router /Workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "list workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		handleServiceError(c, err, "retrieve workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CreateWorkout godoc
// @Summary Log a workout with its sets
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body WorkoutRequest true "Workout details"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input or unknown exercise"
// @Router /Workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	req, ok := bindWorkout(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(c, err, "create workout")
		return
	}

	h.metrics.CounterWorkoutsCreated.Inc()
	c.Header("Location", fmt.Sprintf("/api/Workouts/%d", workout.ID))
	c.JSON(http.StatusCreated, workout)
}

// ReplaceWorkout overwrites the workout and its full set list.
func (h *WorkoutHandler) ReplaceWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := bindWorkout(c)
	if !ok {
		return
	}
	if req.ID != nil && *req.ID != workoutID {
		abortWithError(c, http.StatusBadRequest, "Workout ID in body does not match the URL")
		return
	}

	if err := h.workoutService.ReplaceWorkout(c.Request.Context(), userID, workoutID, req.toInput()); err != nil {
		handleServiceError(c, err, "update workout")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		handleServiceError(c, err, "delete workout")
		return
	}
	c.Status(http.StatusNoContent)
}

// PersonalRecords godoc
// @Summary Best set per exercise across all of the caller's workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.PersonalRecord
// @Router /Workouts/records [get]
func (h *WorkoutHandler) PersonalRecords(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	records, err := h.workoutService.PersonalRecords(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "compute personal records")
		return
	}
	c.JSON(http.StatusOK, records)
}
