package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SearchHandler serves the cross-entity dashboard search endpoint.
type SearchHandler struct {
	svc SearchService
	log *logrus.Logger
}

// NewSearchHandler creates a SearchHandler with the given service and logger.
func NewSearchHandler(svc SearchService, log *logrus.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: log}
}

// Search handles GET /api/v1/search.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "q parameter is required")

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "20"), 20)

	results, err := h.svc.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.log.WithError(err).Error("searching")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "search", "user_id": getActor(c).ID, "count": len(results)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"results": results})
}
