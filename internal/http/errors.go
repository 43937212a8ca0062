package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-stories/internal/llm"
	"interview-stories/internal/service"
)

// writeServiceError traduce errores de servicio a status HTTP. Los errores no
// reconocidos se loguean y se responden con un mensaje generico.
func writeServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, service.ErrStoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
	case errors.Is(err, service.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists."})
	case errors.Is(err, service.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, service.ErrInvalidRewriteMode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid optimization type"})
	case errors.Is(err, llm.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "story optimization unavailable"})
	case errors.Is(err, service.ErrRewriteFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error optimizing story with AI"})
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred."})
	}
}
