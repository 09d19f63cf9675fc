package entity

import (
	"time"
)

// QuestionType - закрытый набор типов вопросов
type QuestionType string

const (
	// QuestionTypeSingleChoice - ровно один правильный ответ
	QuestionTypeSingleChoice QuestionType = "multiple_choice"
	// QuestionTypeMultiSelect - один или несколько правильных ответов
	QuestionTypeMultiSelect QuestionType = "multiple_select"
	// QuestionTypeTrueFalse - ровно два варианта, один правильный
	QuestionTypeTrueFalse QuestionType = "true_false"
)

// IsKnown проверяет, что тип вопроса входит в поддерживаемый набор
func (t QuestionType) IsKnown() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultiSelect, QuestionTypeTrueFalse:
		return true
	}
	return false
}

// AllowsMultipleAnswers возвращает true, если студент может выбрать больше одного ответа
func (t QuestionType) AllowsMultipleAnswers() bool {
	return t == QuestionTypeMultiSelect
}

// Question представляет вопрос теста
type Question struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	QuizID    uint         `gorm:"not null;index" json:"quiz_id"`
	Text      string       `gorm:"column:question_text;type:text;not null" json:"question_text"`
	Type      QuestionType `gorm:"column:question_type;size:20;not null" json:"question_type"`
	Points    int          `gorm:"not null;default:1" json:"points"` // хранится, но в процент не входит
	Order     int          `gorm:"column:order;not null;default:0" json:"order"`
	Answers   []Answer     `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectAnswerIDs возвращает идентификаторы всех правильных ответов
func (q *Question) CorrectAnswerIDs() []uint {
	ids := make([]uint, 0, 1)
	for _, a := range q.Answers {
		if a.IsCorrect {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// HasAnswer проверяет, принадлежит ли ответ вопросу
func (q *Question) HasAnswer(answerID uint) bool {
	for _, a := range q.Answers {
		if a.ID == answerID {
			return true
		}
	}
	return false
}

// Answer представляет вариант ответа на вопрос
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Text       string    `gorm:"column:answer_text;type:text;not null" json:"answer_text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"-"` // Скрыто от клиента
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}
