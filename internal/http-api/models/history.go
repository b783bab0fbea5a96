package models

import "time"

// HistoryEntry is the engagement ledger behind every aggregate statistic:
// one logical entry per chapter ever read, with ReadAt refreshed on each
// visit. NovelID is denormalized from the catalog so range scans for a user
// never need a join just to group by novel.
//
// An entry exists if and only if the matching ProgressRecord exists; both are
// written inside the same transaction by the recorder.
type HistoryEntry struct {
	UserID    string    `gorm:"type:uuid;not null;primaryKey;index:idx_history_user" json:"user_id"`
	ChapterID int64     `gorm:"not null;primaryKey" json:"chapter_id"`
	NovelID   int64     `gorm:"not null;index:idx_history_user_novel" json:"novel_id"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	ReadAt    time.Time `gorm:"not null;index" json:"read_at"`
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}
