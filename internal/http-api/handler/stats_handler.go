package handler

import (
	"context"
	"net/http"
	"time"

	"novelhub/internal/http-api/dto"
	"novelhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService       service.StatsService
	achievementService service.AchievementService
}

func NewStatsHandler(statsService service.StatsService, achievementService service.AchievementService) *StatsHandler {
	return &StatsHandler{
		statsService:       statsService,
		achievementService: achievementService,
	}
}

func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)
	rg.POST("/stats/reading-time", h.AddReadingTime)
	rg.GET("/achievements", h.GetAchievements)
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := parseWindow(q)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.statsService.AggregateStats(ctx, userID, window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) AddReadingTime(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AddReadingTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.statsService.AddReadingTime(ctx, userID, req.Seconds); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reading time recorded"})
}

func (h *StatsHandler) GetAchievements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	achievements, err := h.achievementService.GetAchievements(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, achievements)
}

// parseWindow turns the from/to query pair into a window; both or neither
// must be present.
func parseWindow(q dto.StatsQuery) (*service.Window, error) {
	if q.From == "" && q.To == "" {
		return nil, nil
	}

	from, err := time.Parse(time.RFC3339, q.From)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(time.RFC3339, q.To)
	if err != nil {
		return nil, err
	}
	return &service.Window{From: from, To: to}, nil
}
