package dto

type ChapterURI struct {
	ChapterID int64 `uri:"chapter_id" binding:"required"`
}

type NovelURI struct {
	NovelID int64 `uri:"novel_id" binding:"required"`
}

type RecordProgressRequest struct {
	Percentage     float64 `json:"percentage"`
	CursorPosition int     `json:"cursor_position"`
	Completed      bool    `json:"completed"`
}

type LastReadResponse struct {
	NovelID         int64 `json:"novel_id"`
	LastReadChapter int   `json:"last_read_chapter"`
}
