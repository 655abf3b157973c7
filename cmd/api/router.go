package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"citylocal-backend/internal/shared/middleware"
	"citylocal-backend/pkg/container"
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
		setupCategoryRoutes(v1, c)
		setupBusinessRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupContactRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(rg *gin.RouterGroup, c *container.Container) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.Auth(c.JWTManager), c.UserHandler.Me)
	}
}

func setupCategoryRoutes(rg *gin.RouterGroup, c *container.Container) {
	categories := rg.Group("/categories")
	{
		categories.GET("", middleware.OptionalAuth(c.JWTManager), c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.Get)
	}
}

func setupBusinessRoutes(rg *gin.RouterGroup, c *container.Container) {
	// Search also lives at /search for the site search box.
	rg.GET("/search", c.BusinessHandler.Search)

	businesses := rg.Group("/businesses")
	{
		businesses.GET("", c.BusinessHandler.Search)
		businesses.GET("/slug/:slug", middleware.OptionalAuth(c.JWTManager), c.BusinessHandler.GetBySlug)
		businesses.GET("/:id/reviews", c.ReviewHandler.ListByBusiness)

		authed := businesses.Group("", middleware.Auth(c.JWTManager))
		{
			authed.POST("", c.BusinessHandler.Create)
			authed.GET("/mine", c.BusinessHandler.ListMine)
			authed.PUT("/:id", c.BusinessHandler.Update)
			authed.DELETE("/:id", c.BusinessHandler.Delete)
			authed.POST("/:id/resubmit", c.BusinessHandler.Resubmit)
			authed.POST("/:id/claim", c.BusinessHandler.Claim)
		}

		// Keep the wildcard last so /mine and /slug resolve first.
		businesses.GET("/:id", middleware.OptionalAuth(c.JWTManager), c.BusinessHandler.GetByID)
	}
}

func setupReviewRoutes(rg *gin.RouterGroup, c *container.Container) {
	reviews := rg.Group("/reviews", middleware.Auth(c.JWTManager))
	{
		reviews.POST("", c.ReviewHandler.Create)
		reviews.GET("/mine", c.ReviewHandler.ListMine)
		reviews.PUT("/:id", c.ReviewHandler.Update)
		reviews.DELETE("/:id", c.ReviewHandler.Delete)
		reviews.POST("/:id/respond", c.ReviewHandler.Respond)
		reviews.POST("/:id/helpful", c.ReviewHandler.ToggleHelpful)
		reviews.POST("/:id/report", c.ReviewHandler.Report)
	}
}

func setupContactRoutes(rg *gin.RouterGroup, c *container.Container) {
	rg.POST("/contact", c.ContactHandler.Submit)
}

func setupAdminRoutes(rg *gin.RouterGroup, c *container.Container) {
	admin := rg.Group("/admin", middleware.Auth(c.JWTManager), middleware.AdminOnly())
	{
		admin.GET("/stats", c.AdminHandler.Dashboard)
		admin.GET("/activities", c.ActivityHandler.List)

		admin.GET("/businesses", c.BusinessHandler.AdminList)
		admin.POST("/businesses/:id/approve", c.BusinessHandler.Approve)
		admin.POST("/businesses/:id/reject", c.BusinessHandler.Reject)
		admin.POST("/businesses/:id/feature", c.BusinessHandler.ToggleFeatured)

		admin.GET("/claims", c.BusinessHandler.ListClaims)
		admin.POST("/claims/:id/approve", c.BusinessHandler.ApproveClaim)
		admin.POST("/claims/:id/reject", c.BusinessHandler.RejectClaim)

		admin.GET("/reviews", c.ReviewHandler.AdminList)
		admin.POST("/reviews/:id/approve", c.ReviewHandler.Approve)
		admin.POST("/reviews/:id/withdraw", c.ReviewHandler.Withdraw)

		admin.POST("/categories", c.CategoryHandler.Create)
		admin.PUT("/categories/:id", c.CategoryHandler.Update)
		admin.DELETE("/categories/:id", c.CategoryHandler.Delete)

		admin.GET("/contacts", c.ContactHandler.List)
		admin.GET("/contacts/:id", c.ContactHandler.Get)
		admin.PATCH("/contacts/:id", c.ContactHandler.UpdateStatus)

		admin.GET("/users", c.UserHandler.List)
		admin.DELETE("/users/:id", c.UserHandler.Delete)
		admin.PATCH("/users/:id/role", c.UserHandler.SetRole)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		if err := c.HealthCheck(checkCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	}
}
