package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary      Current status snapshot
// @Tags         roast_data
// @Produce      json
// @Success      200  {object}  coffee_roaster.RoastStatus
// @Router       /api/v1/roast/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status.Status())
}

// @Summary      Current temperature
// @Tags         roast_data
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "temperature, time"
// @Router       /api/v1/roast/temperature [get]
func (h *Handler) getTemperature(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"temperature": h.services.Status.Temperature(),
		"time":        float64(time.Now().UnixNano()) / float64(time.Second),
	})
}

// @Summary      All recorded data points
// @Tags         roast_data
// @Produce      json
// @Success      200  {array}  coffee_roaster.TemperaturePoint
// @Router       /api/v1/roast/data [get]
func (h *Handler) getData(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status.Data())
}

// @Summary      Current roast stage
// @Tags         roast_data
// @Produce      json
// @Success      200  {string}  string
// @Router       /api/v1/roast/stage [get]
func (h *Handler) getStage(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status.Stage())
}

// @Summary      Crack detection status
// @Tags         roast_data
// @Produce      json
// @Success      200  {object}  coffee_roaster.CrackStatus
// @Router       /api/v1/roast/crack-status [get]
func (h *Handler) getCrackStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Status.Crack())
}
