package models

import "time"

// GoalType selects which sub-metric a reading goal counts.
type GoalType string

const (
	GoalChaptersPerDay   GoalType = "chapters_per_day"
	GoalChaptersPerWeek  GoalType = "chapters_per_week"
	GoalChaptersPerMonth GoalType = "chapters_per_month"
	GoalNovelsPerMonth   GoalType = "novels_per_month"
	GoalMinutesPerDay    GoalType = "minutes_per_day"
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalChaptersPerDay, GoalChaptersPerWeek, GoalChaptersPerMonth,
		GoalNovelsPerMonth, GoalMinutesPerDay:
		return true
	}
	return false
}

// ReadingGoal is a user-defined target within a time window. One goal per
// user; setting a new goal replaces the old one. Current/derived fields are
// computed on read, never stored.
type ReadingGoal struct {
	UserID    string    `json:"user_id" gorm:"type:uuid;primaryKey"`
	Type      GoalType  `json:"type" gorm:"type:text;not null"`
	Target    int       `json:"target" gorm:"not null"`
	StartsAt  time.Time `json:"starts_at" gorm:"not null"`
	EndsAt    time.Time `json:"ends_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ReadingGoal) TableName() string {
	return "reading_goals"
}
