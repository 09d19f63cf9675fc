package entity

import (
	"time"
)

// Course представляет учебный курс
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null;default:''" json:"description"`
	InstructorID uint      `gorm:"not null;index" json:"instructor_id"`
	Instructor   *User     `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Lessons      []Lesson  `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	Quizzes      []Quiz    `gorm:"foreignKey:CourseID" json:"quizzes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Course) TableName() string {
	return "courses"
}

// IsOwnedBy проверяет, является ли пользователь автором курса
func (c *Course) IsOwnedBy(userID uint) bool {
	return c.InstructorID == userID
}

// Lesson представляет урок внутри курса
type Lesson struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Order     int       `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Lesson) TableName() string {
	return "lessons"
}
