package types

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

// SendError maps err to its HTTP status and writes the standard error
// body. Internal failures are logged and reported generically.
func SendError(c *gin.Context, err error) {
	status := apperrors.GetHTTPCode(err)
	message := apperrors.UserMessage(err, "Internal server error")

	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"status": status,
		}).Error("request failed")
		if apperrors.GetCode(err) == apperrors.ErrCodeInternal || apperrors.GetCode(err) == apperrors.ErrCodeDatabaseQuery {
			message = "Internal server error"
		}
	}

	c.JSON(status, ErrorResponse{Status: StatusError, Error: message})
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Error: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Error: message})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
