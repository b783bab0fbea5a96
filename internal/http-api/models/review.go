package models

import "time"

// Review is a user's rating and write-up of a novel, one per (user, novel).
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_novel"`
	NovelID   int64     `json:"novel_id" gorm:"not null;uniqueIndex:idx_review_user_novel"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 10"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
