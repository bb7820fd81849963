package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"athletrack/backend/internal/metrics"
	"athletrack/backend/internal/service"
)

type ExportHandler struct {
	exportService service.ExportService
	metrics       *metrics.Manager
}

func NewExportHandler(exportService service.ExportService, m *metrics.Manager) *ExportHandler {
	return &ExportHandler{exportService: exportService, metrics: m}
}

// CreateExport uploads a JSON snapshot of the caller's data and returns a
// time-limited download link.
func (h *ExportHandler) CreateExport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "export data")
		return
	}

	h.metrics.CounterExports.Inc()
	c.JSON(http.StatusOK, result)
}
