package annotations

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/vad-annotator/api/types"
)

// GetProgress reports an annotator's progress
// @Summary      Annotator progress
// @Description  Total clips, distinct clips rated, and the index of the first clip not yet rated (total when all are rated)
// @Tags         annotations
// @Produce      json
// @Param        annotator_id path string true "Annotator ID"
// @Success      200 {object} types.ProgressResponse "Progress"
// @Failure      400 {object} types.ErrorResponse "Invalid annotator ID"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/progress/{annotator_id} [get]
func GetProgress(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		progress, err := deps.RatingService.GetProgress(c.Request.Context(), c.Param("annotator_id"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.ProgressResponse{
			Total:     progress.Total,
			Completed: progress.Completed,
			NextIndex: progress.NextIndex,
		})
	}
}

// Annotate saves one rating vector
// @Summary      Submit rating
// @Description  Store valence, arousal and dominance (integers 1-9) for one clip. Fractional scores such as 3.7 are rejected with 400, not truncated. Every submission adds a row.
// @Tags         annotations
// @Accept       json
// @Produce      json
// @Param        rating body types.AnnotateRequest true "Rating"
// @Success      200 {object} types.AnnotateResponse "Saved"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/annotate [post]
func Annotate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			types.SendBadRequest(c, MsgNotJSONObject)
			return
		}

		req, err := ParseAnnotateRequest(body)
		if err != nil {
			types.SendError(c, err)
			return
		}

		if _, err := deps.RatingService.Submit(c.Request.Context(), req); err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.AnnotateResponse{Status: types.StatusOK})
	}
}
