package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/learning-api/internal/domain/entity"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// CourseRepo реализует repository.CourseRepository
type CourseRepo struct {
	db *gorm.DB
}

// NewCourseRepo создает новый репозиторий курсов
func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// GetByID возвращает курс по ID
func (r *CourseRepo) GetByID(ctx context.Context, id uint) (*entity.Course, error) {
	var course entity.Course
	err := r.db.WithContext(ctx).First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course #%d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &course, nil
}

// GetWithInstructor возвращает курс вместе с автором
func (r *CourseRepo) GetWithInstructor(ctx context.Context, id uint) (*entity.Course, error) {
	var course entity.Course
	err := r.db.WithContext(ctx).Preload("Instructor").First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course #%d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &course, nil
}

// GetLesson возвращает урок, только если он принадлежит курсу
func (r *CourseRepo) GetLesson(ctx context.Context, courseID, lessonID uint) (*entity.Lesson, error) {
	var lesson entity.Lesson
	err := r.db.WithContext(ctx).Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lesson #%d in course #%d", apperrors.ErrNotFound, lessonID, courseID)
		}
		return nil, err
	}
	return &lesson, nil
}

// GetLessonIDs возвращает идентификаторы уроков курса в порядке прохождения
func (r *CourseRepo) GetLessonIDs(ctx context.Context, courseID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := r.db.WithContext(ctx).Model(&entity.Lesson{}).
		Where("course_id = ?", courseID).
		Order(`"order" ASC, id ASC`).
		Pluck("id", &ids).Error
	return ids, err
}

// ListLessonsByCourses возвращает уроки нескольких курсов
func (r *CourseRepo) ListLessonsByCourses(ctx context.Context, courseIDs []uint) ([]entity.Lesson, error) {
	lessons := make([]entity.Lesson, 0)
	if len(courseIDs) == 0 {
		return lessons, nil
	}
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order(`course_id ASC, "order" ASC, id ASC`).
		Find(&lessons).Error
	return lessons, err
}
