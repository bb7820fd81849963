package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"athletrack/backend/internal/metrics"
	"athletrack/backend/internal/service"
)

type BodyMetricHandler struct {
	metricService service.BodyMetricService
	metrics       *metrics.Manager
}

func NewBodyMetricHandler(metricService service.BodyMetricService, m *metrics.Manager) *BodyMetricHandler {
	return &BodyMetricHandler{metricService: metricService, metrics: m}
}

type BodyMetricRequest struct {
	MeasurementDate time.Time `json:"measurementDate"`
	WeightKg        *float64  `json:"weightKg"`
	BodyFatPercent  *float64  `json:"bodyFatPercent"`
	WaistCm         *float64  `json:"waistCm"`
	ChestCm         *float64  `json:"chestCm"`
	BicepsCm        *float64  `json:"bicepsCm"`
}

// ListMetrics returns the caller's measurements in ascending date order.
func (h *BodyMetricHandler) ListMetrics(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	list, err := h.metricService.ListMetrics(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "list body metrics")
		return
	}
	c.JSON(http.StatusOK, list)
}

// LastMetric returns the most recent measurement or 404 when none exist.
func (h *BodyMetricHandler) LastMetric(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	metric, err := h.metricService.LastMetric(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "load latest body metric")
		return
	}
	c.JSON(http.StatusOK, metric)
}

func (h *BodyMetricHandler) AppendMetric(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req BodyMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	metric, err := h.metricService.AppendMetric(c.Request.Context(), userID, service.BodyMetricInput{
		MeasurementDate: req.MeasurementDate,
		WeightKg:        req.WeightKg,
		BodyFatPercent:  req.BodyFatPercent,
		WaistCm:         req.WaistCm,
		ChestCm:         req.ChestCm,
		BicepsCm:        req.BicepsCm,
	})
	if err != nil {
		handleServiceError(c, err, "record body metric")
		return
	}

	h.metrics.CounterBodyMetrics.Inc()
	c.JSON(http.StatusOK, metric)
}
