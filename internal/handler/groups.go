package handler

import (
	"net/http"
	"strconv"

	"pump-radar/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type groupKindRequest struct {
	Kind domain.GroupKind `json:"kind" binding:"required"`
}

// SetGroupKind godoc
// @Summary      Reclassify a Telegram group
// @Description  Sets a registered group to text, image or unknown. Captions of image groups are classified against the coin dictionary.
// @Tags         groups
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int               true  "Telegram chat ID"
// @Param        request  body  groupKindRequest  true  "New kind"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/groups/{id}/kind [put]
func (h *Handler) SetGroupKind(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.set-group-kind")
	defer span.End()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id: " + c.Param("id")})
		return
	}
	var req groupKindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.Int64("group_id", id), attribute.String("kind", string(req.Kind)))

	if err := h.signals.SetGroupKind(ctx, id, req.Kind); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "kind": req.Kind})
}
