package entity

import (
	"time"
)

// Enrollment представляет запись студента на курс.
// Progress - кэш, пересчитывается из lesson_completions и не является источником истины.
type Enrollment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID    uint       `gorm:"not null;uniqueIndex:idx_enrollment_user_course;index" json:"course_id"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"enrolled_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Enrollment) TableName() string {
	return "course_enrollments"
}
