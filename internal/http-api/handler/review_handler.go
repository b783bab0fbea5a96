package handler

import (
	"context"
	"net/http"
	"time"

	"novelhub/internal/http-api/dto"
	"novelhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/novels/:novel_id/review", h.UpsertReview)
	rg.GET("/novels/:novel_id/reviews", h.ListReviews)
}

func (h *ReviewHandler) UpsertReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var uri dto.NovelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req dto.UpsertReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.reviewService.UpsertReview(ctx, userID, uri.NovelID, req.Rating, req.Body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review saved"})
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var uri dto.NovelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reviews, total, err := h.reviewService.ListByNovel(ctx, uri.NovelID, q.Page, q.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": total})
}
