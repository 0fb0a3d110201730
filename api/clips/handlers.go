package clips

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/vad-annotator/api/types"
	clipsService "github.com/killallgit/vad-annotator/internal/services/clips"
)

// ListClips returns the clip queue
// @Summary      List clips
// @Description  Filenames of every audio clip in the clip directory, sorted by name. Empty when the directory is missing.
// @Tags         clips
// @Produce      json
// @Success      200 {array} string "Clip filenames"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/clips [get]
func ListClips(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		clips, err := deps.Catalog.List(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, clips)
	}
}

// ServeAudio streams one clip
// @Summary      Clip audio
// @Description  Raw audio bytes for a clip. Range requests are honoured.
// @Tags         clips
// @Produce      audio/wav
// @Produce      audio/mpeg
// @Param        filename path string true "Clip filename"
// @Success      200 {file} binary "Audio data"
// @Success      206 {file} binary "Partial audio data"
// @Failure      404 {object} types.ErrorResponse "Clip not found"
// @Router       /audio/{filename} [get]
func ServeAudio(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := deps.Catalog.Resolve(c.Param("filename"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.Header("Content-Type", clipsService.ContentType(path))
		c.Header("Accept-Ranges", "bytes")
		c.File(path)
	}
}
