package handler

import (
	"context"
	"net/http"
	"time"

	"novelhub/internal/http-api/dto"
	"novelhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	libraryService service.LibraryService
}

func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

func (h *LibraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/library", h.List)
	rg.POST("/library/:novel_id", h.Add)
	rg.DELETE("/library/:novel_id", h.Remove)
}

func (h *LibraryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.libraryService.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *LibraryHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var uri dto.NovelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req dto.AddLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.libraryService.Add(ctx, userID, uri.NovelID, req.Category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "added to library"})
}

func (h *LibraryHandler) Remove(c *gin.Context) {
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

	if err := h.libraryService.Remove(ctx, userID, uri.NovelID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed from library"})
}
