package handlers

import (
	"net/http"

	"irrigator/internal/logger"
	"irrigator/internal/models"
	"irrigator/internal/service"
	"irrigator/web"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	hub      *Hub
	assets   *web.Assets
	log      *logger.Logger
}

var _ service.RouteSets = (*Handler)(nil)

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, hub *Hub, assets *web.Assets, log *logger.Logger) *Handler {
	return &Handler{services: services, hub: hub, assets: assets, log: log}
}

// Operational returns the route set for a device joined to the network.
func (h *Handler) Operational(s *models.Session) http.Handler {
	return h.InitOperationalRoutes(s)
}

// Provisioning returns the route set for the access point.
func (h *Handler) Provisioning(s *models.Session) http.Handler {
	return h.InitProvisioningRoutes(s)
}

// InitOperationalRoutes builds the router used when the device is on the
// network: dashboard, readings, event stream and zone control.
func (h *Handler) InitOperationalRoutes(s *models.Session) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.page(web.PageOperational))
	router.GET("/readings", h.getReadings)
	router.GET("/events", h.events)
	router.GET("/ws", h.wsConnect)
	router.GET("/toggleZone", h.toggleZone)

	h.registerAPIRoutes(router, s)
	h.registerStatic(router)
	return router
}

// InitProvisioningRoutes builds the router served on the access point: the
// configuration form and its submission.
func (h *Handler) InitProvisioningRoutes(s *models.Session) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", h.page(web.PageProvisioning))
	router.POST("/", h.submitCredentials)

	h.registerStatic(router)
	return router
}

// InitUpdateRoutes builds the router of the firmware update channel.
func (h *Handler) InitUpdateRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	update := router.Group("/update")
	{
		update.POST("/auth", h.updateAuth)
		update.POST("", h.updateTokenMiddleware, h.updateUpload)
	}
	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine, s *models.Session) {
	api := r.Group("/api/v1")
	{
		api.GET("/status", h.getStatus(s))
		api.GET("/zones", h.getZones)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}

// InitStatusRoutes builds the reduced operational router of the relay
// profile; relay control itself is served by the raw relay listener.
func (h *Handler) InitStatusRoutes(s *models.Session) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.registerAPIRoutes(router, s)
	return router
}

// RelayProfile returns the route sets of the relay profile: the same
// provisioning form, and only the status API when operational.
func (h *Handler) RelayProfile() service.RouteSets {
	return relayRouteSets{h}
}

type relayRouteSets struct{ h *Handler }

func (r relayRouteSets) Operational(s *models.Session) http.Handler {
	return r.h.InitStatusRoutes(s)
}

func (r relayRouteSets) Provisioning(s *models.Session) http.Handler {
	return r.h.InitProvisioningRoutes(s)
}
