package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/learning-api/internal/domain/entity"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 -> 13
		{3, 3, 100},
		{5, 3, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestSummarizeTime(t *testing.T) {
	completions := []entity.LessonCompletion{
		{TimeSpent: 1800},
		{TimeSpent: 3600},
		{TimeSpent: 0},
	}

	summary := SummarizeTime(completions)

	assert.Equal(t, 5400, summary.TotalSeconds)
	assert.Equal(t, 1.5, summary.TotalHours)
	assert.Equal(t, 1800, summary.AvgPerLesson)

	assert.Equal(t, TimeSummary{}, SummarizeTime(nil))
}

func TestSummarizeQuizzes(t *testing.T) {
	base := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	// От новых к старым
	attempts := []entity.Attempt{
		{QuizID: 1, Score: 90, Passed: true, CreatedAt: base},
		{QuizID: 2, Score: 40.5, Passed: false, CreatedAt: base.Add(-24 * time.Hour)},
		{QuizID: 1, Score: 50, Passed: false, CreatedAt: base.Add(-48 * time.Hour)},
	}
	titles := map[uint]string{1: "Basics", 2: "Advanced"}

	summary := SummarizeQuizzes(attempts, 3, titles, 2, time.UTC)

	assert.Equal(t, 2, summary.Taken)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 60, summary.AvgScore) // (90+40.5+50)/3 = 60.17
	require.Len(t, summary.Trend, 2)
	assert.Equal(t, TrendPoint{QuizID: 1, QuizTitle: "Basics", Score: 90, Passed: true, Date: "Mar 15"}, summary.Trend[0])
	assert.Equal(t, TrendPoint{QuizID: 2, QuizTitle: "Advanced", Score: 41, Passed: false, Date: "Mar 14"}, summary.Trend[1])
}

func TestSummarizeQuizzes_NoAttempts(t *testing.T) {
	summary := SummarizeQuizzes(nil, 4, nil, 0, nil)

	assert.Equal(t, 0, summary.Taken)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 0, summary.AvgScore)
	assert.NotNil(t, summary.Trend)
	assert.Empty(t, summary.Trend)
}

func TestComputeQuizStatistics(t *testing.T) {
	attempts := []entity.Attempt{
		{Score: 100, Passed: true},
		{Score: 33.33, Passed: false},
		{Score: 66.67, Passed: true},
	}

	stats := ComputeQuizStatistics(attempts)

	assert.Equal(t, 3, stats.TotalAttempts)
	assert.Equal(t, 66.67, stats.AverageScore)
	assert.Equal(t, 66.67, stats.PassRate)
	assert.Equal(t, 100.0, stats.HighestScore)
	assert.Equal(t, 33.33, stats.LowestScore)
}

func TestComputeQuizStatistics_Empty(t *testing.T) {
	assert.Equal(t, QuizStatistics{}, ComputeQuizStatistics(nil))
}
