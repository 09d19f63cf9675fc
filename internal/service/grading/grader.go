// Package grading содержит чистую (без I/O) логику проверки попыток прохождения теста.
package grading

import (
	"fmt"
	"sort"

	"github.com/yourusername/learning-api/internal/domain/entity"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// Submission - ответы студента: вопрос -> множество выбранных вариантов.
// Вопросы, отсутствующие в карте, считаются оставленными без ответа.
type Submission map[uint]AnswerSet

// SubmittedAnswer - одна запись из тела запроса
type SubmittedAnswer struct {
	QuestionID uint
	AnswerIDs  []uint
}

// Outcome - результат проверки попытки
type Outcome struct {
	Score          float64
	Passed         bool
	CorrectCount   int
	TotalQuestions int
	Results        []entity.QuestionResult
}

// rule - правило проверки для конкретного типа вопроса
type rule struct {
	// maxSelected - сколько различных вариантов можно выбрать (0 = без ограничения)
	maxSelected int
}

// ruleFor возвращает правило для типа вопроса.
// Неизвестный тип проверяется по общему правилу (множественный выбор), без паники.
func ruleFor(t entity.QuestionType) rule {
	if !t.IsKnown() || t.AllowsMultipleAnswers() {
		return rule{maxSelected: 0}
	}
	return rule{maxSelected: 1}
}

// BuildSubmission проверяет ответы из запроса против определения теста и
// собирает типизированную Submission. Любая ссылка на чужой вопрос или ответ,
// повтор вопроса или лишние варианты для вопроса с одним ответом - ошибка валидации.
func BuildSubmission(quiz *entity.Quiz, answers []SubmittedAnswer) (Submission, error) {
	submission := make(Submission, len(answers))

	for _, a := range answers {
		question, ok := quiz.QuestionByID(a.QuestionID)
		if !ok {
			return nil, fmt.Errorf("%w: question %d does not belong to quiz %d", apperrors.ErrValidation, a.QuestionID, quiz.ID)
		}
		if _, dup := submission[a.QuestionID]; dup {
			return nil, fmt.Errorf("%w: question %d submitted more than once", apperrors.ErrValidation, a.QuestionID)
		}

		selected := NewAnswerSet(a.AnswerIDs...)
		for _, id := range selected.Sorted() {
			if !question.HasAnswer(id) {
				return nil, fmt.Errorf("%w: answer %d does not belong to question %d", apperrors.ErrValidation, id, question.ID)
			}
		}

		if r := ruleFor(question.Type); r.maxSelected > 0 && selected.Len() > r.maxSelected {
			return nil, fmt.Errorf("%w: question %d (%s) accepts at most %d answer(s), got %d",
				apperrors.ErrValidation, question.ID, question.Type, r.maxSelected, selected.Len())
		}

		submission[a.QuestionID] = selected
	}

	return submission, nil
}

// Grade проверяет попытку. Функция тотальна для провалидированного ввода:
// вопрос считается верным только при точном совпадении множеств ответов.
func Grade(quiz *entity.Quiz, submission Submission) Outcome {
	questions := orderedQuestions(quiz.Questions)

	outcome := Outcome{
		TotalQuestions: len(questions),
		Results:        make([]entity.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		correct := NewAnswerSet(q.CorrectAnswerIDs()...)
		submitted := submission[q.ID] // nil-набор для неотвеченного вопроса

		isCorrect := correct.Equal(submitted)
		if isCorrect {
			outcome.CorrectCount++
		}

		outcome.Results = append(outcome.Results, entity.QuestionResult{
			QuestionID:         q.ID,
			IsCorrect:          isCorrect,
			CorrectAnswerIDs:   correct.Sorted(),
			SubmittedAnswerIDs: submitted.Sorted(),
		})
	}

	outcome.Score = Score(outcome.CorrectCount, outcome.TotalQuestions)
	outcome.Passed = quiz.IsPassingScore(outcome.Score)
	return outcome
}

// Score возвращает процент правильных ответов, округлённый до сотых (half-up).
// Считается в целых сотых, чтобы избежать погрешности float.
// Вес вопроса (points) намеренно не учитывается.
func Score(correct, total int) float64 {
	if total <= 0 || correct <= 0 {
		return 0
	}
	hundredths := (int64(correct)*10000*2 + int64(total)) / (int64(total) * 2)
	return float64(hundredths) / 100
}

// orderedQuestions возвращает копию вопросов, отсортированную по order, затем по id
func orderedQuestions(questions []entity.Question) []entity.Question {
	ordered := make([]entity.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
