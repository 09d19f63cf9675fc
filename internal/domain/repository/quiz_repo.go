package repository

import (
	"context"

	"github.com/yourusername/learning-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с тестами
type QuizRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Quiz, error)
	// GetWithQuestions возвращает тест вместе с вопросами (по order) и вариантами ответов
	GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error)
	ListByCourse(ctx context.Context, courseID uint) ([]entity.Quiz, error)
	ListByCourses(ctx context.Context, courseIDs []uint) ([]entity.Quiz, error)
}
