package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves the dashboard summary endpoint.
type StatsHandler struct {
	svc StatsService
	log *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given service and logger.
func NewStatsHandler(svc StatsService, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

// GetStats handles GET /api/v1/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("getting stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, stats)
}
