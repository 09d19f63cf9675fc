package repository

import (
	"context"
	"time"

	"github.com/yourusername/learning-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками прохождения тестов.
// Попытки только добавляются: методов обновления и удаления нет.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *entity.Attempt) error
	GetByID(ctx context.Context, id uint) (*entity.Attempt, error)
	ListByUserAndQuiz(ctx context.Context, userID, quizID uint) ([]entity.Attempt, error)
	CountByUserAndQuiz(ctx context.Context, userID, quizID uint) (int64, error)
	// ListByUserAndQuizzes возвращает попытки пользователя по набору тестов, новые первыми
	ListByUserAndQuizzes(ctx context.Context, userID uint, quizIDs []uint) ([]entity.Attempt, error)
	// GetBestByUserAndQuizzes возвращает лучшую (по score) попытку на каждый тест
	GetBestByUserAndQuizzes(ctx context.Context, userID uint, quizIDs []uint) (map[uint]entity.Attempt, error)
	ListByQuiz(ctx context.Context, quizID uint) ([]entity.Attempt, error)
	// ListActivityTimes возвращает времена создания всех попыток пользователя
	ListActivityTimes(ctx context.Context, userID uint) ([]time.Time, error)
}
