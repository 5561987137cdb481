package handlers

import (
	"coffee_roaster/internal/logger"
	"coffee_roaster/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes
// registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	// Live status stream (HTTP upgrade), same port
	router.GET("/ws", h.wsStatus)

	api := router.Group("/api/v1")
	{
		h.registerRoastRoutes(api)
		h.registerLogRoutes(api)
		api.POST("/sync-state", h.syncState)
	}

	return router
}

func (h *Handler) registerRoastRoutes(api *gin.RouterGroup) {
	roast := api.Group("/roast")
	{
		roast.POST("/start", h.startRoast)
		roast.POST("/pause", h.pauseRoast)
		roast.POST("/reset", h.resetRoast)
		roast.POST("/force-start", h.forceStartRoast)
		roast.POST("/force-reset", h.forceResetRoast)
		// Body example: {"level":7}
		roast.POST("/heat", h.setHeat)
		roast.POST("/save", h.saveRoast)

		roast.GET("/status", h.getStatus)
		roast.GET("/temperature", h.getTemperature)
		roast.GET("/data", h.getData)
		roast.GET("/stage", h.getStage)
		roast.GET("/crack-status", h.getCrackStatus)

		roast.GET("/markers", h.getMarkers)
		roast.POST("/markers", h.addMarker)
		roast.DELETE("/markers/:id", h.removeMarker)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.listLogs)
		logs.GET("/:id", h.getLog)
		logs.DELETE("/:id", h.deleteLog)
	}
}
