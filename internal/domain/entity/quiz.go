package entity

import (
	"time"
)

// Quiz представляет тест, привязанный к курсу
type Quiz struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	CourseID           uint       `gorm:"not null;index" json:"course_id"`
	LessonID           *uint      `gorm:"index" json:"lesson_id,omitempty"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"type:text;not null;default:''" json:"description"`
	PassingScore       int        `gorm:"not null;default:70" json:"passing_score"`        // 0..100
	TimeLimit          *int       `json:"time_limit,omitempty"`                            // минуты
	ShuffleQuestions   bool       `gorm:"not null;default:false" json:"shuffle_questions"`
	ShowCorrectAnswers bool       `gorm:"not null;default:true" json:"show_correct_answers"`
	AllowRetake        bool       `gorm:"not null;default:true" json:"allow_retake"`
	Questions          []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// IsPassingScore проверяет, достаточно ли баллов для прохождения теста
func (q *Quiz) IsPassingScore(score float64) bool {
	return score >= float64(q.PassingScore)
}

// QuestionByID ищет вопрос теста по идентификатору
func (q *Quiz) QuestionByID(id uint) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}
