package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"athletrack/backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest may repeat the id from the path; a different one is rejected.
type UpdateUserRequest struct {
	ID        *int64 `json:"id"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
}

// GetUser returns a profile. Callers may only read their own.
func (h *UserHandler) GetUser(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), callerID, userID)
	if err != nil {
		handleServiceError(c, err, "retrieve user")
		return
	}
	c.JSON(http.StatusOK, mapUserToResponse(user))
}

// UpdateUser changes first and last name.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.ID != nil && *req.ID != userID {
		abortWithError(c, http.StatusBadRequest, "User ID in body does not match the URL")
		return
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), callerID, userID, req.FirstName, req.LastName); err != nil {
		handleServiceError(c, err, "update user")
		return
	}
	c.Status(http.StatusNoContent)
}
