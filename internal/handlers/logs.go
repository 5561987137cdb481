package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errListLogs = "failed to load roast logs"

// @Summary      List saved roasts
// @Tags         logs
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, logs"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) listLogs(c *gin.Context) {
	logs, err := h.services.RoastLogs.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListLogs, "logs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(logs),
		"logs":  logs,
	})
}

// @Summary      Get saved roast
// @Tags         logs
// @Produce      json
// @Param        id   path  string  true  "Log ID"
// @Success      200  {object}  coffee_roaster.RoastLog
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs/{id} [get]
func (h *Handler) getLog(c *gin.Context) {
	id := c.Param("id")
	log, err := h.services.RoastLogs.Get(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load roast log", "logs_get_failed", err, "id", id)
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// @Summary      Delete saved roast
// @Tags         logs
// @Produce      json
// @Param        id   path  string  true  "Log ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs/{id} [delete]
func (h *Handler) deleteLog(c *gin.Context) {
	id := c.Param("id")
	removed, err := h.services.RoastLogs.Delete(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete roast log", "logs_delete_failed", err, "id", id)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "log " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "log " + id + " deleted"})
}
