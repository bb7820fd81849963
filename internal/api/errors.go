package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"athletrack/backend/internal/service"
	"athletrack/backend/internal/storage"
)

// handleServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognized is logged and reported as a generic 500.
func handleServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, "Invalid credentials.")

	case errors.Is(err, service.ErrUserAccessDenied),
		errors.Is(err, service.ErrExerciseAccessDenied),
		errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrMetricNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrUserAlreadyExists):
		// Kept as 500 for compatibility with existing clients.
		abortWithError(c, http.StatusInternalServerError, "User already exists.")

	case errors.Is(err, storage.ErrStorageNotConfigured):
		abortWithError(c, http.StatusInternalServerError, "Export storage is not configured")

	default:
		log.WithError(err).WithField("path", c.FullPath()).Errorf("failed to %s", action)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred while trying to "+action)
	}
}
