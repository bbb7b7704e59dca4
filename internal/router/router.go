package router

import (
	"github.com/gin-gonic/gin"

	"terptickets/internal/config"
	"terptickets/internal/handler"
	"terptickets/internal/middleware"
	"terptickets/internal/port"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	identity port.Identity,
	authH *handler.AuthHandler,
	profileH *handler.ProfileHandler,
	listingH *handler.ListingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", healthH.Check)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/sign-up", authH.SignUp)
	auth.POST("/login", authH.Login)

	// Protected routes - require a valid session token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(identity))

	protected.GET("/auth/me", authH.Me)
	protected.POST("/auth/sign-out", authH.SignOut)

	protected.PUT("/profile", profileH.Update)
	protected.POST("/listings", listingH.Create)

	return r
}
