// Package analytics содержит чистые расчёты прогресса, статистики тестов и серий активности.
// Функции пакета не обращаются к хранилищу: им передаются уже загруженные записи.
package analytics

import (
	"math"
	"time"

	"github.com/yourusername/learning-api/internal/domain/entity"
)

// TrendDateLayout - формат даты в тренде результатов ("Jan 02")
const TrendDateLayout = "Jan 02"

// DefaultTrendSize - сколько последних попыток попадает в тренд
const DefaultTrendSize = 10

// LessonSummary - прогресс по урокам
type LessonSummary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// TimeSummary - время, затраченное на уроки
type TimeSummary struct {
	TotalSeconds int     `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
	AvgPerLesson int     `json:"avg_per_lesson"`
}

// TrendPoint - одна попытка в тренде результатов
type TrendPoint struct {
	QuizID    uint   `json:"quiz_id"`
	QuizTitle string `json:"quiz_title"`
	Score     int    `json:"score"`
	Passed    bool   `json:"passed"`
	Date      string `json:"date"`
}

// QuizSummary - результаты по тестам
type QuizSummary struct {
	Taken    int          `json:"taken"`
	Total    int          `json:"total"`
	Passed   int          `json:"passed"`
	AvgScore int          `json:"avg_score"`
	Trend    []TrendPoint `json:"trend"`
}

// Percentage возвращает completed/total*100, округлённое до целого (half-up).
// При total == 0 возвращает 0.
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return (completed*200 + total) / (total * 2)
}

// SummarizeLessons считает прогресс по урокам курса
func SummarizeLessons(completed, total int) LessonSummary {
	return LessonSummary{
		Completed:  completed,
		Total:      total,
		Percentage: Percentage(completed, total),
	}
}

// SummarizeTime суммирует время по отметкам о прохождении
func SummarizeTime(completions []entity.LessonCompletion) TimeSummary {
	summary := TimeSummary{}
	for _, c := range completions {
		if c.TimeSpent > 0 {
			summary.TotalSeconds += c.TimeSpent
		}
	}
	summary.TotalHours = roundTo(float64(summary.TotalSeconds)/3600, 1)
	if len(completions) > 0 {
		summary.AvgPerLesson = int(math.Round(float64(summary.TotalSeconds) / float64(len(completions))))
	}
	return summary
}

// SummarizeQuizzes считает результаты по тестам.
// attempts должны идти от новых к старым; titles - названия тестов по id.
func SummarizeQuizzes(attempts []entity.Attempt, totalQuizzes int, titles map[uint]string, trendSize int, loc *time.Location) QuizSummary {
	if trendSize <= 0 {
		trendSize = DefaultTrendSize
	}
	if loc == nil {
		loc = time.UTC
	}

	taken := make(map[uint]struct{})
	passed := make(map[uint]struct{})
	var sum float64

	for _, a := range attempts {
		taken[a.QuizID] = struct{}{}
		if a.Passed {
			passed[a.QuizID] = struct{}{}
		}
		sum += a.Score
	}

	summary := QuizSummary{
		Taken:  len(taken),
		Total:  totalQuizzes,
		Passed: len(passed),
		Trend:  make([]TrendPoint, 0, min(trendSize, len(attempts))),
	}
	if len(attempts) > 0 {
		summary.AvgScore = int(math.Round(sum / float64(len(attempts))))
	}

	for i := 0; i < len(attempts) && i < trendSize; i++ {
		a := attempts[i]
		title := titles[a.QuizID]
		if title == "" && a.Quiz != nil {
			title = a.Quiz.Title
		}
		summary.Trend = append(summary.Trend, TrendPoint{
			QuizID:    a.QuizID,
			QuizTitle: title,
			Score:     int(math.Round(a.Score)),
			Passed:    a.Passed,
			Date:      a.CreatedAt.In(loc).Format(TrendDateLayout),
		})
	}

	return summary
}

// ActivityTimes объединяет даты прохождения уроков и попыток тестов
func ActivityTimes(completions []time.Time, attempts []time.Time) []time.Time {
	all := make([]time.Time, 0, len(completions)+len(attempts))
	all = append(all, completions...)
	return append(all, attempts...)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
