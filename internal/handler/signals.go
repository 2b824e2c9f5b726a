package handler

import (
	"net/http"
	"strconv"
	"time"

	"pump-radar/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const defaultSignalLimit = 50

type extractRequest struct {
	Text    string `json:"text" binding:"required"`
	GroupID int64  `json:"group_id"`
}

// ExtractSignal godoc
// @Summary      Extract a pump signal from a message
// @Description  Runs link, coin, minutes and exchange extraction against the current ticker snapshot. Nothing is stored.
// @Tags         signals
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        request  body  extractRequest  true  "Message text"
// @Success      200  {object}  domain.PumpSignal
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/signals/extract [post]
func (h *Handler) ExtractSignal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.extract-signal")
	defer span.End()

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.Int64("group_id", req.GroupID))

	sig, err := h.signals.Extract(ctx, domain.MessageContext{
		GroupID: req.GroupID,
		Text:    req.Text,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sig)
}

// RecentSignals godoc
// @Summary      List stored pump signals
// @Description  Returns the most recent signals, newest first
// @Tags         signals
// @Security     ApiKeyAuth
// @Produce      json
// @Param        limit  query  int  false  "Number of signals (default 50, max 500)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/signals [get]
func (h *Handler) RecentSignals(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.recent-signals")
	defer span.End()

	limit := defaultSignalLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + v})
			return
		}
		limit = n
	}

	signals, err := h.signals.Recent(ctx, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if signals == nil {
		signals = []domain.PumpSignal{}
	}
	c.JSON(http.StatusOK, gin.H{"signals": signals, "count": len(signals)})
}
