package dto

import "time"

type SetGoalRequest struct {
	Type     string    `json:"type" binding:"required"`
	Target   int       `json:"target" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}
