package models

import "time"

// LibraryPointer tracks the furthest chapter number a user has completed in
// a novel. It is monotonic: writes only apply when the incoming number is
// strictly greater than the stored one, so it represents "furthest known
// progress" rather than "most recent activity".
type LibraryPointer struct {
	UserID          string    `gorm:"type:uuid;not null;primaryKey;index:idx_pointer_user" json:"user_id"`
	NovelID         int64     `gorm:"not null;primaryKey" json:"novel_id"`
	LastReadChapter int       `gorm:"not null;default:0" json:"last_read_chapter"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (LibraryPointer) TableName() string {
	return "library_pointers"
}
