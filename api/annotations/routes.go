package annotations

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/vad-annotator/api/types"
)

// RegisterRoutes registers progress and rating submission routes. submit
// wraps only the write endpoint.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, submit ...gin.HandlerFunc) {
	router.GET("/progress/:annotator_id", GetProgress(deps))

	handlers := append(append([]gin.HandlerFunc{}, submit...), Annotate(deps))
	router.POST("/annotate", handlers...)
}
