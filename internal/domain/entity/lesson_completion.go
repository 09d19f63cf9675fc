package entity

import (
	"time"
)

// LessonCompletion фиксирует прохождение урока студентом.
// При снятии отметки запись удаляется физически.
type LessonCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_completion_user_lesson" json:"user_id"`
	LessonID    uint      `gorm:"not null;uniqueIndex:idx_completion_user_lesson;index" json:"lesson_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
	TimeSpent   int       `gorm:"not null;default:0" json:"time_spent"` // секунды
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
