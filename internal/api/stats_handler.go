package api

import (
	"net/http"

	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
)

// StatisticsHandler holds the statistics service dependency.
type StatisticsHandler struct {
	statsService service.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// GetStatistics returns club-wide counters.
// GET /api/v1/statistics
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statsService.GetStatistics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
