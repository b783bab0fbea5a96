package models

// NovelGenre is the novels<->genres join table, declared explicitly (with
// its own surrogate id) so AutoMigrate creates it instead of gorm's implicit
// composite-key table.
type NovelGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID int64 `json:"novel_id" gorm:"index;not null"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
}

func (NovelGenre) TableName() string {
	return "novel_genres"
}
