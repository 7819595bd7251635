// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
)

// respondError maps a service error to an HTTP response. Storage and
// unknown failures hide their detail behind a generic message.
func respondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.InvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.InvalidState:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.Conflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondBindError reports a malformed or invalid request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"data":    data,
	})
}
