package api

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"athletrack/backend/internal/metrics"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
)

// TokenParser turns a bearer token into the authenticated user id.
type TokenParser interface {
	ParseToken(tokenString string) (int64, error)
}

// AuthMiddleware creates a Gin middleware for JWT authentication. Requests
// without a valid token are rejected with 401 before reaching any handler.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		userID, err := tokens.ParseToken(parts[1])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (int64, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	id, ok := idRaw.(int64)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return id, nil
}

// mustUserID reads the caller id or aborts with 401. Handlers return when ok is false.
func mustUserID(c *gin.Context) (int64, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "User ID not found in token")
		return 0, false
	}
	return userID, true
}

// parseIDParam parses a positive int64 path parameter or aborts with 400.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}

// RequestLogger logs every finished request through logrus.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}
		if userID, err := getUserIDFromContext(c); err == nil {
			fields["user_id"] = userID
		}

		entry := log.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Info("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}

// RequestMetrics records request counts and durations per route template.
func RequestMetrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.GaugeRequests.Inc()
		begin := time.Now()

		c.Next()

		m.GaugeRequests.Dec()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HistRequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
		m.CounterRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// PanicRecovery turns handler panics into a 500 response and counts them.
func PanicRecovery(m *metrics.Manager) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorf("http: panic serving %s: %v\n%s", c.Request.URL.Path, recovered, debug.Stack())
		if m != nil {
			m.CounterHandleRequestPanic.Inc()
		}
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	})
}
