package model

import "time"

const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// Problem は問題カタログの1件 (ID はカタログ上の問題番号)
type Problem struct {
	ID         int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	TitleSlug  string    `gorm:"not null;uniqueIndex" json:"title_slug"`
	Difficulty int       `gorm:"not null" json:"difficulty"`
	Topic      string    `json:"topic,omitempty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (Problem) TableName() string {
	return "problems"
}

// DifficultyLabel は難易度の表示名
func DifficultyLabel(d int) string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}
