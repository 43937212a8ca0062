package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-stories/internal/render"
	"interview-stories/internal/service"
)

// StoryHandler expone el CRUD de historias del usuario autenticado.
type StoryHandler struct {
	logger  *zap.Logger
	stories *service.StoryService
}

func NewStoryHandler(logger *zap.Logger, stories *service.StoryService) *StoryHandler {
	return &StoryHandler{
		logger:  logger,
		stories: stories,
	}
}

type storyRequest struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	Published        *bool  `json:"published"`
}

func (r storyRequest) input() service.StoryInput {
	return service.StoryInput{
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		Content:          r.Content,
		Published:        r.Published,
	}
}

// List maneja GET /stories?userId=.
func (h *StoryHandler) List(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeServiceError(c, h.logger, "list stories", service.ErrUnauthenticated)
		return
	}

	stories, err := h.stories.List(c.Request.Context(), identity, c.Query("userId"))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			h.logger.Warn("cross-account listing attempt",
				zap.String("user_id", identity.ID),
				zap.String("requested_user_id", c.Query("userId")),
			)
		}
		writeServiceError(c, h.logger, "list stories", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stories": stories})
}

// Create maneja POST /stories.
func (h *StoryHandler) Create(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeServiceError(c, h.logger, "create story", service.ErrUnauthenticated)
		return
	}

	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create story request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	story, err := h.stories.Create(c.Request.Context(), identity, req.input())
	if err != nil {
		writeServiceError(c, h.logger, "create story", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Story created successfully", "story": story})
}

// Get maneja GET /stories/:id.
func (h *StoryHandler) Get(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeServiceError(c, h.logger, "get story", service.ErrUnauthenticated)
		return
	}

	story, err := h.stories.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, "get story", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"story": story})
}

// Update maneja PUT /stories/:id.
func (h *StoryHandler) Update(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeServiceError(c, h.logger, "update story", service.ErrUnauthenticated)
		return
	}

	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update story request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	story, err := h.stories.Update(c.Request.Context(), identity, c.Param("id"), req.input())
	if err != nil {
		writeServiceError(c, h.logger, "update story", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story updated successfully", "story": story})
}

// Delete maneja DELETE /stories/:id.
func (h *StoryHandler) Delete(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeServiceError(c, h.logger, "delete story", service.ErrUnauthenticated)
		return
	}

	if err := h.stories.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		writeServiceError(c, h.logger, "delete story", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story deleted successfully"})
}

// RenderHTML maneja GET /stories/:id/html.
func (h *StoryHandler) RenderHTML(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeServiceError(c, h.logger, "render story", service.ErrUnauthenticated)
		return
	}

	story, err := h.stories.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, "render story", err)
		return
	}

	var buf bytes.Buffer
	if err := render.StoryPage(&buf, story); err != nil {
		writeServiceError(c, h.logger, "render story", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
