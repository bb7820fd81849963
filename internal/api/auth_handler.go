package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/metrics"
	"athletrack/backend/internal/service"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	metrics     *metrics.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, m *metrics.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, metrics: m}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	DateJoined time.Time `json:"dateJoined"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

func mapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		DateJoined: user.DateJoined,
	}
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 200 {object} gin.H "User created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 500 {object} gin.H "User already exists or internal error"
// @Router /Auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	_, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleServiceError(c, err, "register user")
		return
	}

	h.metrics.CounterUsersRegistered.Inc()
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "User created successfully!"})
}

// Login godoc
// @Summary Log in a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Invalid credentials"
// @Router /Auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: result.Token, Expiration: result.Expiration})
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID, userID)
	if err != nil {
		handleServiceError(c, err, "load current user")
		return
	}
	c.JSON(http.StatusOK, mapUserToResponse(user))
}
