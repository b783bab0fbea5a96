package handler

import (
	"context"
	"net/http"
	"time"

	"novelhub/internal/http-api/dto"
	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/goal", h.GetGoal)
	rg.PUT("/goal", h.SetGoal)
	rg.DELETE("/goal", h.DeleteGoal)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	goal, err := h.goalService.GetGoal(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if goal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no goal set"})
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) SetGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.goalService.SetGoal(ctx, userID, models.GoalType(req.Type), req.Target, req.StartsAt, req.EndsAt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal set"})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.goalService.DeleteGoal(ctx, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal removed"})
}
