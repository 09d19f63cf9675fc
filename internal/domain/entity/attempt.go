package entity

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionResult - результат проверки одного вопроса в попытке
type QuestionResult struct {
	QuestionID         uint   `json:"question_id"`
	IsCorrect          bool   `json:"is_correct"`
	CorrectAnswerIDs   []uint `json:"correct_answer_ids"`
	SubmittedAnswerIDs []uint `json:"submitted_answer_ids"`
}

// Attempt представляет попытку прохождения теста.
// Запись неизменяема: создаётся один раз на отправку и больше не обновляется.
type Attempt struct {
	ID        uint                                `gorm:"primaryKey" json:"id"`
	QuizID    uint                                `gorm:"not null;index:idx_attempt_user_quiz,priority:2" json:"quiz_id"`
	UserID    uint                                `gorm:"not null;index:idx_attempt_user_quiz,priority:1" json:"user_id"`
	Score     float64                             `gorm:"type:numeric(5,2);not null" json:"score"`
	Passed    bool                                `gorm:"not null" json:"passed"`
	Results   datatypes.JSONType[[]QuestionResult] `gorm:"column:answers;type:jsonb;not null" json:"results"`
	Quiz      *Quiz                               `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	User      *User                               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time                           `gorm:"not null" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "quiz_attempts"
}

// QuestionResults возвращает сохранённые результаты по вопросам
func (a *Attempt) QuestionResults() []QuestionResult {
	results := a.Results.Data()
	if results == nil {
		return []QuestionResult{}
	}
	return results
}
