package models

import "time"

// LibraryItem is a novel on the user's shelf. The completion rate is
// computed over shelf items, and the shelf category labels feed the
// "categories used" achievement.
type LibraryItem struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_library_user_novel" json:"user_id"`
	NovelID  int64     `gorm:"not null;uniqueIndex:idx_library_user_novel" json:"novel_id"`
	Category string    `gorm:"type:text;default:''" json:"category"`
	AddedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	Novel *Novel `gorm:"foreignKey:NovelID" json:"novel,omitempty"`
}

func (LibraryItem) TableName() string {
	return "user_library"
}
