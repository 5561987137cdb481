package handlers

import (
	"net/http"

	"coffee_roaster"

	"github.com/gin-gonic/gin"
)

// syncResponseBody wraps the merged view with the legacy message field
// clients expect.
type syncResponseBody struct {
	coffee_roaster.SyncResponse
	Message string `json:"message"`
}

// @Summary      Synchronize client state
// @Description  Merges a reconnecting client's roast state into the server's; the client wins on every field it populated.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        body  body  coffee_roaster.SyncRequest  true  "Client-reported state"
// @Success      200   {object}  syncResponseBody
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/sync-state [post]
func (h *Handler) syncState(c *gin.Context) {
	var req coffee_roaster.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	resp := h.services.Sync.Sync(req)
	c.JSON(http.StatusOK, syncResponseBody{
		SyncResponse: resp,
		Message:      "State synchronized successfully",
	})
}
