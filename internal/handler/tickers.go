package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Tickers godoc
// @Summary      Get the active ticker snapshot
// @Description  Returns the active tickers per exchange used for signal extraction
// @Tags         tickers
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200  {object}  domain.TickerSnapshot
// @Failure      503  {object}  map[string]string
// @Router       /api/tickers [get]
func (h *Handler) Tickers(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.tickers")
	defer span.End()

	snap, err := h.tickers.Snapshot(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
