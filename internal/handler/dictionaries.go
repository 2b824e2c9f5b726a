package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type classifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ClassifyMention godoc
// @Summary      Classify free text against the latest coin dictionary
// @Description  Scores every alias group and returns the winning ticker with all scores
// @Tags         mentions
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        request  body  classifyRequest  true  "Text to classify"
// @Success      200  {object}  mention.Selection
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/mentions/classify [post]
func (h *Handler) ClassifyMention(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.classify-mention")
	defer span.End()

	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sel, err := h.dictionaries.Classify(ctx, req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	span.SetAttributes(attribute.String("ticker", sel.Ticker))
	c.JSON(http.StatusOK, sel)
}

// RebuildDictionary godoc
// @Summary      Rebuild the coin dictionary
// @Description  Lists the configured exchange, weighs every alias and stores a new dictionary
// @Tags         dictionaries
// @Security     ApiKeyAuth
// @Produce      json
// @Success      201  {object}  domain.CoinDictionary
// @Failure      500  {object}  map[string]string
// @Router       /api/dictionaries/rebuild [post]
func (h *Handler) RebuildDictionary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.rebuild-dictionary")
	defer span.End()

	dict, err := h.dictionaries.Rebuild(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dict)
}

// LatestDictionary godoc
// @Summary      Get the latest coin dictionary
// @Tags         dictionaries
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200  {object}  domain.CoinDictionary
// @Failure      404  {object}  map[string]string
// @Router       /api/dictionaries/latest [get]
func (h *Handler) LatestDictionary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.latest-dictionary")
	defer span.End()

	dict, err := h.dictionaries.Latest(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dict)
}
