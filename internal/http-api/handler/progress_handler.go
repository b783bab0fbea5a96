package handler

import (
	"context"
	"net/http"
	"time"

	"novelhub/internal/http-api/dto"
	"novelhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// RegisterRoutes registers the progress-related routes
func (h *ProgressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/progress/:chapter_id", h.RecordProgress)
	rg.GET("/progress/:chapter_id", h.GetProgress)
	rg.GET("/novels/:novel_id/last-read", h.GetLastRead)
	rg.DELETE("/history", h.ClearHistory)
}

func (h *ProgressHandler) RecordProgress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var uri dto.ChapterURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req dto.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.progressService.RecordProgress(ctx, userID, uri.ChapterID, req.Percentage, req.CursorPosition, req.Completed); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "progress recorded"})
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var uri dto.ChapterURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.progressService.GetProgress(ctx, userID, uri.ChapterID)
	if err != nil {
		respondError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no progress for chapter"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) GetLastRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var uri dto.NovelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ptr, err := h.progressService.GetLastReadChapter(ctx, userID, uri.NovelID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.LastReadResponse{NovelID: uri.NovelID}
	if ptr != nil {
		resp.LastReadChapter = ptr.LastReadChapter
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProgressHandler) ClearHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.progressService.ClearAllHistory(ctx, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}
