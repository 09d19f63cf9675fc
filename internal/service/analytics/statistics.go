package analytics

import (
	"github.com/yourusername/learning-api/internal/domain/entity"
)

// QuizStatistics - агрегированная статистика попыток по тесту (для преподавателя)
type QuizStatistics struct {
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	PassRate      float64 `json:"pass_rate"`
	HighestScore  float64 `json:"highest_score"`
	LowestScore   float64 `json:"lowest_score"`
}

// ComputeQuizStatistics считает статистику по всем попыткам теста.
// Средний балл и процент сдачи округляются до сотых.
func ComputeQuizStatistics(attempts []entity.Attempt) QuizStatistics {
	stats := QuizStatistics{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return stats
	}

	var sum float64
	passed := 0
	stats.HighestScore = attempts[0].Score
	stats.LowestScore = attempts[0].Score

	for _, a := range attempts {
		sum += a.Score
		if a.Passed {
			passed++
		}
		stats.HighestScore = max(stats.HighestScore, a.Score)
		stats.LowestScore = min(stats.LowestScore, a.Score)
	}

	n := float64(len(attempts))
	stats.AverageScore = roundTo(sum/n, 2)
	stats.PassRate = roundTo(float64(passed)/n*100, 2)
	return stats
}
