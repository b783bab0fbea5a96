package service

import "time"

// Window is an optional half-open [From, To) scope for aggregate queries.
// A nil *Window means all-time.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// AggregateStats is the derived, recomputable summary over the history
// ledger. It is never persisted; every call recomputes it from the stores.
type AggregateStats struct {
	TotalChapters  int   `json:"total_chapters"`
	TotalNovels    int   `json:"total_novels"`
	ReadingSeconds int64 `json:"reading_seconds"`

	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	GenreBreakdown  []GenreStat  `json:"genre_breakdown"`
	AuthorBreakdown []AuthorStat `json:"author_breakdown"`
	FavoriteGenre   string       `json:"favorite_genre,omitempty"`
	FavoriteAuthor  string       `json:"favorite_author,omitempty"`

	HourlyActivity [24]int    `json:"hourly_activity"`
	DailyActivity  []DayCount `json:"daily_activity"`

	CompletionRate float64 `json:"completion_rate"`
}

type GenreStat struct {
	Genre    string  `json:"genre"`
	Chapters int     `json:"chapters"`
	Novels   int     `json:"novels"`
	Percent  float64 `json:"percent"`
}

type AuthorStat struct {
	Author        string  `json:"author"`
	Chapters      int     `json:"chapters"`
	Novels        int     `json:"novels"`
	AverageRating float64 `json:"average_rating"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
