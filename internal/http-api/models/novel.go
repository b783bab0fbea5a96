package models

import "time"

// NovelStatus is a closed enumeration of publication states. The data layer
// only ever stores one of these values; any free-text labels coming from
// upstream catalog feeds are translated at the ingestion edge.
type NovelStatus string

const (
	StatusOngoing   NovelStatus = "ongoing"
	StatusCompleted NovelStatus = "completed"
	StatusHiatus    NovelStatus = "hiatus"
	StatusDropped   NovelStatus = "dropped"
)

// Valid reports whether s is a known publication state.
func (s NovelStatus) Valid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusDropped:
		return true
	}
	return false
}

// Novel is catalog data owned by the catalog service. This core only reads
// it (chapter resolution, genre/author joins); it never writes novels.
type Novel struct {
	ID            int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug          *string     `json:"slug,omitempty" gorm:"uniqueIndex;size:200"`
	Title         string      `json:"title" gorm:"not null"`
	Author        string      `json:"author" gorm:"index;not null"`
	Status        NovelStatus `json:"status" gorm:"type:text;default:'ongoing'"`
	ChapterCount  int         `json:"chapter_count" gorm:"not null;default:0"`
	AverageRating *float64    `json:"average_rating,omitempty" gorm:"type:decimal(3,2)"`
	CreatedAt     time.Time   `json:"created_at" gorm:"autoCreateTime"`

	// association
	Genres []Genre `json:"genres,omitempty" gorm:"many2many:novel_genres;constraint:OnDelete:CASCADE;"`
}

func (Novel) TableName() string {
	return "novels"
}
