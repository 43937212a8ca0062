package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-stories/internal/service"
)

// RewriteHandler expone la optimizacion de historias con el LLM.
type RewriteHandler struct {
	logger  *zap.Logger
	rewrite *service.RewriteService
}

func NewRewriteHandler(logger *zap.Logger, rewrite *service.RewriteService) *RewriteHandler {
	return &RewriteHandler{
		logger:  logger,
		rewrite: rewrite,
	}
}

// Optimize maneja POST /stories/optimize con texto libre.
func (h *RewriteHandler) Optimize(c *gin.Context) {
	var req struct {
		StoryContent     string `json:"storyContent"`
		OptimizationType string `json:"optimizationType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid optimize request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	out, err := h.rewrite.Rewrite(c.Request.Context(), req.StoryContent, req.OptimizationType)
	if err != nil {
		writeServiceError(c, h.logger, "optimize story", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "optimizedContent": out})
}

// OptimizeStory maneja POST /stories/:id/optimize sobre una historia propia.
// El resultado no se guarda.
func (h *RewriteHandler) OptimizeStory(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeServiceError(c, h.logger, "optimize story", service.ErrUnauthenticated)
		return
	}

	var req struct {
		OptimizationType string `json:"optimizationType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid optimize request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	out, err := h.rewrite.RewriteStory(c.Request.Context(), identity, c.Param("id"), req.OptimizationType)
	if err != nil {
		writeServiceError(c, h.logger, "optimize story", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "optimizedContent": out})
}
