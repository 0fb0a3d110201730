package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/vad-annotator/api/annotations"
	"github.com/killallgit/vad-annotator/api/clips"
	"github.com/killallgit/vad-annotator/api/health"
	"github.com/killallgit/vad-annotator/api/types"
	"github.com/killallgit/vad-annotator/api/version"
	_ "github.com/killallgit/vad-annotator/docs/swagger"
)

// RegisterRoutes registers all routes. submitLimit guards rating
// submission; reads are not rate limited.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, submitLimit gin.HandlerFunc) {
	// Register public routes
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	apiGroup := engine.Group("/api")
	clips.RegisterRoutes(engine, apiGroup, deps)

	var submit []gin.HandlerFunc
	if submitLimit != nil {
		submit = append(submit, submitLimit)
	}
	annotations.RegisterRoutes(apiGroup, deps, submit...)
}
