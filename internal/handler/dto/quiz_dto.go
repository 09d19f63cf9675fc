package dto

import (
	"time"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/service"
	"github.com/yourusername/learning-api/internal/service/grading"
)

// AnswerResponse - вариант ответа без признака правильности
type AnswerResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"answer_text"`
}

// QuestionResponse представляет вопрос в формате для прохождения теста
type QuestionResponse struct {
	ID      uint             `json:"id"`
	Text    string           `json:"question_text"`
	Type    string           `json:"question_type"`
	Points  int              `json:"points"`
	Order   int              `json:"order"`
	Answers []AnswerResponse `json:"answers"`
}

// AttemptSummaryResponse - краткая информация о попытке
type AttemptSummaryResponse struct {
	ID        uint      `json:"id"`
	QuizID    uint      `json:"quiz_id"`
	Score     float64   `json:"score"`
	Passed    bool      `json:"passed"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizResponse представляет тест для студента вместе с его прошлыми попытками
type QuizResponse struct {
	ID                 uint                     `json:"id"`
	CourseID           uint                     `json:"course_id"`
	LessonID           *uint                    `json:"lesson_id,omitempty"`
	Title              string                   `json:"title"`
	Description        string                   `json:"description,omitempty"`
	PassingScore       int                      `json:"passing_score"`
	TimeLimit          *int                     `json:"time_limit,omitempty"`
	ShuffleQuestions   bool                     `json:"shuffle_questions"`
	ShowCorrectAnswers bool                     `json:"show_correct_answers"`
	AllowRetake        bool                     `json:"allow_retake"`
	QuestionCount      int                      `json:"question_count"`
	Questions          []QuestionResponse       `json:"questions"`
	Attempts           []AttemptSummaryResponse `json:"attempts"`
}

// QuestionResultResponse - результат по одному вопросу
type QuestionResultResponse struct {
	QuestionID         uint   `json:"question_id"`
	IsCorrect          bool   `json:"is_correct"`
	CorrectAnswerIDs   []uint `json:"correct_answer_ids"`
	SubmittedAnswerIDs []uint `json:"submitted_answer_ids"`
}

// AttemptResponse - проверенная попытка
type AttemptResponse struct {
	ID             uint                     `json:"id"`
	QuizID         uint                     `json:"quiz_id"`
	Score          float64                  `json:"score"`
	Passed         bool                     `json:"passed"`
	CorrectAnswers int                      `json:"correct_answers"`
	TotalQuestions int                      `json:"total_questions"`
	Results        []QuestionResultResponse `json:"results"`
	CreatedAt      time.Time                `json:"created_at"`
}

// SubmittedAnswerRequest - ответ на один вопрос
type SubmittedAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerIDs  []uint `json:"answer_ids" binding:"omitempty,dive,required"`
}

// SubmitAttemptRequest - тело запроса на отправку попытки.
// Пустой список допустим: все вопросы считаются оставленными без ответа.
type SubmitAttemptRequest struct {
	Answers []SubmittedAnswerRequest `json:"answers" binding:"required,dive"`
}

// ToSubmittedAnswers преобразует запрос в вход для проверки
func (r *SubmitAttemptRequest) ToSubmittedAnswers() []grading.SubmittedAnswer {
	answers := make([]grading.SubmittedAnswer, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, grading.SubmittedAnswer{QuestionID: a.QuestionID, AnswerIDs: a.AnswerIDs})
	}
	return answers
}

// NewQuestionResponse создает DTO для вопроса, скрывая правильные ответы
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	answers := make([]AnswerResponse, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, AnswerResponse{ID: a.ID, Text: a.Text})
	}
	return QuestionResponse{
		ID:      q.ID,
		Text:    q.Text,
		Type:    string(q.Type),
		Points:  q.Points,
		Order:   q.Order,
		Answers: answers,
	}
}

// NewAttemptSummaryResponse создает краткий DTO попытки
func NewAttemptSummaryResponse(a *entity.Attempt) AttemptSummaryResponse {
	return AttemptSummaryResponse{
		ID:        a.ID,
		QuizID:    a.QuizID,
		Score:     a.Score,
		Passed:    a.Passed,
		CreatedAt: a.CreatedAt,
	}
}

// NewAttemptSummaryList создает список кратких DTO попыток
func NewAttemptSummaryList(attempts []entity.Attempt) []AttemptSummaryResponse {
	list := make([]AttemptSummaryResponse, 0, len(attempts))
	for i := range attempts {
		list = append(list, NewAttemptSummaryResponse(&attempts[i]))
	}
	return list
}

// NewQuizResponse создает DTO теста для студента
func NewQuizResponse(lq *service.LearnerQuiz) *QuizResponse {
	quiz := lq.Quiz
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, NewQuestionResponse(&quiz.Questions[i]))
	}
	return &QuizResponse{
		ID:                 quiz.ID,
		CourseID:           quiz.CourseID,
		LessonID:           quiz.LessonID,
		Title:              quiz.Title,
		Description:        quiz.Description,
		PassingScore:       quiz.PassingScore,
		TimeLimit:          quiz.TimeLimit,
		ShuffleQuestions:   quiz.ShuffleQuestions,
		ShowCorrectAnswers: quiz.ShowCorrectAnswers,
		AllowRetake:        quiz.AllowRetake,
		QuestionCount:      len(questions),
		Questions:          questions,
		Attempts:           NewAttemptSummaryList(lq.Attempts),
	}
}

// NewAttemptResponse создает DTO проверенной попытки
func NewAttemptResponse(r *service.AttemptResult) *AttemptResponse {
	resp := &AttemptResponse{
		ID:             r.Attempt.ID,
		QuizID:         r.Attempt.QuizID,
		Score:          r.Attempt.Score,
		Passed:         r.Attempt.Passed,
		CorrectAnswers: r.CorrectAnswers,
		TotalQuestions: r.TotalQuestions,
		CreatedAt:      r.Attempt.CreatedAt,
	}
	if r.Results != nil {
		resp.Results = make([]QuestionResultResponse, 0, len(r.Results))
		for _, qr := range r.Results {
			resp.Results = append(resp.Results, QuestionResultResponse(qr))
		}
	}
	return resp
}
