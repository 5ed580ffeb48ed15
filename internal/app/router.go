package app

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/handler"
	"dispatch/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideRequestHandler *handler.RideRequestHandler
	DriverHandler      *handler.DriverHandler
	RideHandler        *handler.RideHandler
	ReportHandler      *handler.ReportHandler
	FeedbackHandler    *handler.FeedbackHandler
	AdminHandler       *handler.AdminHandler
	Access             *handler.Access
	RedisClient        *redis.Client // nil disables idempotent replay
	NewRelicApp        *newrelic.Application
	Logger             logrus.FieldLogger
	AllowedOrigins     []string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NoticeErrorsMiddleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes. Every route needs a caller forwarded by the gateway.
	v1 := router.Group("/v1")
	v1.Use(middleware.CallerMiddleware())
	v1.Use(middleware.IdempotencyMiddleware(deps.RedisClient, deps.Logger))

	requests := v1.Group("/ride-requests")
	{
		h := deps.RideRequestHandler
		requests.POST("", middleware.Require(domain.CapRequestRide), h.Create)
		requests.GET("/quote", middleware.Require(domain.CapRequestRide), h.Quote)
		requests.GET("/:id", middleware.Require(domain.CapViewRide), deps.Access.RequestViewer(), h.Get)
		requests.POST("/:id/cancel", middleware.Require(domain.CapCancelRequest), h.Cancel)
		requests.POST("/:id/expire", middleware.Require(domain.CapExpireRequest), h.Expire)
	}

	drivers := v1.Group("/drivers/:id")
	{
		h := deps.DriverHandler
		own := deps.Access.OwnDriver()
		drivers.GET("/ride-requests", middleware.Require(domain.CapViewRequests), own, h.PendingRequests)
		drivers.POST("/ride-requests/:requestId/accept", middleware.Require(domain.CapAcceptRequest), own, h.AcceptRequest)
		drivers.GET("/conflicts", middleware.Require(domain.CapViewRequests), own, h.Conflicts)
		drivers.GET("/availability", middleware.Require(domain.CapViewRequests), own, h.Availability)
		drivers.POST("/verify", middleware.Require(domain.CapVerifyDriver), h.Verify)
		drivers.POST("/vehicle", middleware.Require(domain.CapManageVehicle), own, h.AttachVehicle)
		drivers.DELETE("/vehicle", middleware.Require(domain.CapManageVehicle), own, h.DetachVehicle)
		drivers.POST("/duty", middleware.Require(domain.CapSetDriverDuty), own, h.SetDuty)
		drivers.GET("/earnings", middleware.Require(domain.CapViewEarnings), own, h.Earnings)
	}

	rides := v1.Group("/rides/:id")
	{
		h := deps.RideHandler
		party := deps.Access.RideParty()
		rides.GET("", middleware.Require(domain.CapViewRide), party, h.GetRide)
		rides.POST("/start", middleware.Require(domain.CapOperateRide), party, h.StartRide)
		rides.POST("/cancel", middleware.Require(domain.CapCancelRide), party, h.CancelRide)
		rides.POST("/complete", middleware.Require(domain.CapOperateRide), party, h.CompleteRide)
		rides.POST("/feedback", middleware.Require(domain.CapGiveFeedback), party, deps.FeedbackHandler.Give)
	}

	users := v1.Group("/users/:id")
	{
		users.GET("/rides", middleware.Require(domain.CapViewRide), deps.Access.Self(), deps.RideHandler.RidesForUser)
		users.GET("/rating", middleware.Require(domain.CapViewRide), deps.FeedbackHandler.Rating)
	}

	admin := v1.Group("/admin", middleware.Require(domain.CapManageCatalog))
	{
		h := deps.AdminHandler
		admin.POST("/locations/:id/activate", h.ActivateLocation)
		admin.POST("/locations/:id/inactivate", h.InactivateLocation)
		admin.POST("/commission-slabs/refresh", h.RefreshCommissionSlabs)
	}

	v1.GET("/reports/earnings", middleware.Require(domain.CapViewPlatform), deps.ReportHandler.PlatformEarnings)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.CallerIDHeader, middleware.CallerRoleHeader, "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Idempotent-Replay"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
