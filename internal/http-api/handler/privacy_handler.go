package handler

import (
	"context"
	"net/http"
	"time"

	"novelhub/internal/http-api/dto"
	"novelhub/internal/http-api/repository"

	"github.com/gin-gonic/gin"
)

// PrivacyHandler toggles the per-user privacy flag. While the flag is on,
// the recorder drops every progress event before any write happens.
type PrivacyHandler struct {
	privacy repository.PrivacyStore
}

func NewPrivacyHandler(privacy repository.PrivacyStore) *PrivacyHandler {
	return &PrivacyHandler{privacy: privacy}
}

func (h *PrivacyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/privacy", h.GetPrivacy)
	rg.PUT("/privacy", h.SetPrivacy)
}

func (h *PrivacyHandler) GetPrivacy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	enabled, err := h.privacy.PrivacyMode(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PrivacyResponse{Enabled: enabled})
}

func (h *PrivacyHandler) SetPrivacy(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SetPrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.privacy.SetPrivacyMode(ctx, userID, *req.Enabled); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PrivacyResponse{Enabled: *req.Enabled})
}
