package clips

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/vad-annotator/api/types"
)

// RegisterRoutes registers clip listing under api and audio serving on the engine root
func RegisterRoutes(engine *gin.Engine, api *gin.RouterGroup, deps *types.Dependencies) {
	api.GET("/clips", ListClips(deps))
	engine.GET("/audio/*filename", ServeAudio(deps))
	engine.HEAD("/audio/*filename", ServeAudio(deps))
}
