package models

// Chapter maps a chapter id to its novel and ordinal number. The number is
// what the library pointer stores; the id is what progress events carry.
type Chapter struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID int64  `json:"novel_id" gorm:"not null;index:idx_novel_number"`
	Number  int    `json:"number" gorm:"not null;index:idx_novel_number"`
	Title   string `json:"title"`
}

func (Chapter) TableName() string {
	return "chapters"
}
