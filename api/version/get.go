package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/vad-annotator/api/types"
)

// Service identity reported at the root path
const (
	Name        = "VAD Annotator"
	Description = "Rating service for valence, arousal and dominance annotation of audio clips"
)

// Get handles version requests
// @Summary      Service version
// @Tags         system
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       / [get]
func Get(version string) gin.HandlerFunc {
	if version == "" {
		version = "dev"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:        Name,
			Version:     version,
			Description: Description,
			Status:      "running",
		})
	}
}
