package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aHaldin/pickmyartist/internal/shared/middleware"
	"github.com/aHaldin/pickmyartist/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupArtistRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupDashboardRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	setupInternalRoutes(router, c)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(c.Config.JWT.Secret), c.UserHandler.Logout)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.GET("/session", middleware.AuthMiddleware(c.Config.JWT.Secret), c.UserHandler.Session)
	}
}

// ========================================
// ARTIST ROUTES (PUBLIC DIRECTORY)
// ========================================
// Optional auth: signed in artists also see their own unpublished card.
func setupArtistRoutes(v1 *gin.RouterGroup, c *container.Container) {
	optionalAuth := middleware.OptionalAuthMiddleware(c.Config.JWT.Secret)

	artists := v1.Group("/artists")
	{
		artists.GET("", optionalAuth, c.ProfileHandler.Directory)
		artists.GET("/:slug", optionalAuth, c.ProfileHandler.GetArtist)
		artists.POST("/:slug/enquiries", c.EnquiryHandler.Create)
	}

	// Short share links: /a/<handle>
	v1.GET("/a/:slug", optionalAuth, c.ProfileHandler.GetArtist)
}

// ========================================
// PROFILE ROUTES (OWNER)
// ========================================
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	profiles := v1.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		profiles.GET("/me", c.ProfileHandler.GetMe)
		profiles.PUT("/me", c.ProfileHandler.UpdateMe)
		profiles.POST("/me/avatar", c.ProfileHandler.UploadAvatar)
		profiles.POST("/me/banner", c.ProfileHandler.UploadBanner)
	}
}

// ========================================
// DASHBOARD ROUTES (OWNER)
// ========================================
func setupDashboardRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.Config.JWT.Secret)

	v1.GET("/dashboard", auth, c.ProfileHandler.Dashboard)

	enquiries := v1.Group("/enquiries")
	enquiries.Use(auth)
	{
		enquiries.GET("", c.EnquiryHandler.List)
		enquiries.PATCH("/:id/status", c.EnquiryHandler.UpdateStatus)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.Config.JWT.Secret),
		middleware.AdminMiddleware(),
	)
	{
		admin.GET("/stats", c.AdminHandler.Stats)
		admin.GET("/users", c.AdminHandler.SearchUsers)
	}
}

// ========================================
// INTERNAL ROUTES (SERVICE TO SERVICE)
// ========================================
// Guarded by the service role key, not user JWTs. Mounted outside
// /api/v1 so the public surface stays user-facing only.
func setupInternalRoutes(router *gin.Engine, c *container.Container) {
	internal := router.Group("/internal")
	internal.Use(middleware.ServiceRole(c.Config.App.ServiceRoleKey))
	{
		internal.POST("/send-enquiry-email", c.EnquiryHandler.SendEnquiryEmail)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		// Optional services report configured/disabled, never degraded
		storageStatus := "disabled"
		if appCtx.Storage != nil {
			storageStatus = "configured"
		}
		emailStatus := "disabled"
		if appCtx.EmailSender != nil {
			emailStatus = "configured"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
			"email":    emailStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
