package models

import "time"

// UserAchievement records when a user first crossed an achievement
// threshold. Rows are insert-once: an unlock is permanent even if the
// underlying stats later shrink (e.g. after clearing history).
type UserAchievement struct {
	UserID        string    `json:"user_id" gorm:"type:uuid;not null;primaryKey"`
	AchievementID string    `json:"achievement_id" gorm:"type:text;not null;primaryKey"`
	UnlockedAt    time.Time `json:"unlocked_at" gorm:"not null"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
