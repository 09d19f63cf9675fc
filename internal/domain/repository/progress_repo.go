package repository

import (
	"context"
	"time"

	"github.com/yourusername/learning-api/internal/domain/entity"
)

// CompletionRepository определяет методы для работы с отметками о прохождении уроков
type CompletionRepository interface {
	Create(ctx context.Context, completion *entity.LessonCompletion) error
	// Delete удаляет отметку; возвращает количество удалённых строк
	Delete(ctx context.Context, userID, lessonID uint) (int64, error)
	CountByUserAndLessons(ctx context.Context, userID uint, lessonIDs []uint) (int64, error)
	ListByUserAndLessons(ctx context.Context, userID uint, lessonIDs []uint) ([]entity.LessonCompletion, error)
	ListActivityTimes(ctx context.Context, userID uint) ([]time.Time, error)
}

// EnrollmentRepository определяет методы для работы с записями на курсы
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	Get(ctx context.Context, userID, courseID uint) (*entity.Enrollment, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID uint, progress int) error
}
