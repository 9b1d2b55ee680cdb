package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"draftbook-backend/internal/shared/middleware"
	"draftbook-backend/pkg/container"
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

	catalog := router.Group("/catalog")
	{
		authors := catalog.Group("/authors")
		{
			authors.GET("", c.AuthorHandler.List)
			authors.POST("", middleware.Identity(c.Verifier), c.AuthorHandler.Create)

			authors.PUT("/summary", c.AuthorHandler.UpdateSummary)
			authors.POST("/summary", c.AuthorHandler.UpdateSummary)
			authors.POST("/summary/lookup", c.AuthorHandler.SummaryLookup)

			authors.GET("/:id", c.AuthorHandler.Detail)
			authors.GET("/:id/delete", c.AuthorHandler.DeleteConfirm)
			authors.POST("/:id/delete", c.AuthorHandler.DeleteSubmit)
		}
	}

	// Export routes are mounted only when the exporter is configured.
	if c.ExportHandler != nil {
		google := router.Group("/google")
		{
			google.POST("/create-doc", c.ExportHandler.CreateDoc)
			google.POST("/upload-doc", c.ExportHandler.UploadDoc)
		}
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = err.Error()
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = err.Error()
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":      "up",
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"database":    dbStatus,
			"cache":       cacheStatus,
		})
	}
}
