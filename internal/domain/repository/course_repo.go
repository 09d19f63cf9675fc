package repository

import (
	"context"

	"github.com/yourusername/learning-api/internal/domain/entity"
)

// CourseRepository определяет методы для работы с курсами и уроками
type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Course, error)
	// GetWithInstructor возвращает курс вместе с автором (для документа сертификата)
	GetWithInstructor(ctx context.Context, id uint) (*entity.Course, error)
	GetLesson(ctx context.Context, courseID, lessonID uint) (*entity.Lesson, error)
	GetLessonIDs(ctx context.Context, courseID uint) ([]uint, error)
	ListLessonsByCourses(ctx context.Context, courseIDs []uint) ([]entity.Lesson, error)
}
