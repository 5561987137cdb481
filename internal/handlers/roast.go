package handlers

import (
	"errors"
	"net/http"

	"coffee_roaster/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errStartRoast = "failed to start roast"
	errSaveRoast  = "failed to save roast data"
)

// logAndJSONError centralizes error logging and the error response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for the heat endpoint.
type heatRequest struct {
	Level int `json:"level" binding:"required"` // 1..10
}

// Request DTO for saving a roast.
type saveRoastRequest struct {
	Name    string `json:"name" binding:"required"`
	Profile string `json:"profile"`
	Notes   string `json:"notes"`
}

// Request DTO for placing a marker.
type markerRequest struct {
	Time        float64 `json:"time"`
	Temperature float64 `json:"temperature"`
	Label       string  `json:"label" binding:"required"`
	Color       string  `json:"color"`
	Notes       string  `json:"notes"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Start roast
// @Tags         roast
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, time"
// @Failure      400  {object}  map[string]string       "roast already in progress"
// @Router       /api/v1/roast/start [post]
func (h *Handler) startRoast(c *gin.Context) {
	start, err := h.services.Roast.Start(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRoasting) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errStartRoast, "roast_start_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Roast process started",
		"time":    start,
	})
}

// @Summary      Force-start roast (recovery)
// @Tags         roast
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/roast/force-start [post]
func (h *Handler) forceStartRoast(c *gin.Context) {
	start, _ := h.services.Roast.ForceStart(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Roast process force-started",
		"time":    start,
	})
}

// @Summary      Pause roast
// @Tags         roast
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string  "no roast in progress"
// @Router       /api/v1/roast/pause [post]
func (h *Handler) pauseRoast(c *gin.Context) {
	if err := h.services.Roast.Pause(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Roast process paused"})
}

// @Summary      Reset roast
// @Tags         roast
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/roast/reset [post]
func (h *Handler) resetRoast(c *gin.Context) {
	if err := h.services.Roast.Reset(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to reset roast", "roast_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Roast process reset"})
}

// @Summary      Force-reset roast (recovery)
// @Description  Stops monitoring, clears all state, and restarts monitoring.
// @Tags         roast
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/roast/force-reset [post]
func (h *Handler) forceResetRoast(c *gin.Context) {
	if err := h.services.Roast.ForceReset(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to force reset roast", "roast_force_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Roast forcefully reset and monitoring restarted",
	})
}

// @Summary      Set heat level
// @Tags         roast
// @Accept       json
// @Produce      json
// @Param        body  body  heatRequest  true  "Heat payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/roast/heat [post]
func (h *Handler) setHeat(c *gin.Context) {
	var req heatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := h.services.Roast.SetHeat(c.Request.Context(), req.Level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "level": req.Level})
}

// @Summary      Save current roast
// @Tags         roast
// @Accept       json
// @Produce      json
// @Param        body  body  saveRoastRequest  true  "Roast metadata"
// @Success      200  {object}  map[string]interface{}  "success, id"
// @Failure      400  {object}  map[string]string  "no roast data to save"
// @Router       /api/v1/roast/save [post]
func (h *Handler) saveRoast(c *gin.Context) {
	var req saveRoastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	id, err := h.services.RoastLogs.Save(c.Request.Context(), service.SaveRoastParams{
		Name:    req.Name,
		Profile: req.Profile,
		Notes:   req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveRoast, "roast_save_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// @Summary      List markers
// @Tags         markers
// @Produce      json
// @Success      200  {array}  coffee_roaster.Marker
// @Router       /api/v1/roast/markers [get]
func (h *Handler) getMarkers(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status.Markers())
}

// @Summary      Add marker
// @Tags         markers
// @Accept       json
// @Produce      json
// @Param        body  body  markerRequest  true  "Marker payload"
// @Success      200  {object}  coffee_roaster.Marker
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/roast/markers [post]
func (h *Handler) addMarker(c *gin.Context) {
	var req markerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	m := h.services.Roast.AddMarker(service.MarkerParams{
		Time:        req.Time,
		Temperature: req.Temperature,
		Label:       req.Label,
		Color:       req.Color,
		Notes:       req.Notes,
	})
	c.JSON(http.StatusOK, m)
}

// @Summary      Remove marker
// @Tags         markers
// @Produce      json
// @Param        id   path  string  true  "Marker ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/roast/markers/{id} [delete]
func (h *Handler) removeMarker(c *gin.Context) {
	id := c.Param("id")
	if !h.services.Roast.RemoveMarker(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "marker " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
