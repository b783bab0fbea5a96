package models

import "time"

// ProgressRecord holds the latest read position of a user within a single
// chapter. One row per (user, chapter), overwritten in place on every
// engagement. Completed records always carry Percentage == 100.
type ProgressRecord struct {
	UserID         string    `gorm:"type:uuid;not null;primaryKey;index:idx_progress_user" json:"user_id"`
	ChapterID      int64     `gorm:"not null;primaryKey" json:"chapter_id"`
	Percentage     float64   `gorm:"not null;default:0" json:"percentage"`
	CursorPosition int       `gorm:"not null;default:0" json:"cursor_position"`
	Completed      bool      `gorm:"not null;default:false" json:"completed"`
	LastReadAt     time.Time `gorm:"not null" json:"last_read_at"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}
