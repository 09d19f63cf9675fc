package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/domain/repository"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// CompletionRepo реализует repository.CompletionRepository
type CompletionRepo struct {
	db *gorm.DB
}

// NewCompletionRepo создает новый репозиторий отметок о прохождении уроков
func NewCompletionRepo(db *gorm.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// Create сохраняет отметку; повторная отметка того же урока возвращает ErrLessonAlreadyCompleted
func (r *CompletionRepo) Create(ctx context.Context, completion *entity.LessonCompletion) error {
	if err := r.db.WithContext(ctx).Create(completion).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lesson #%d", repository.ErrLessonAlreadyCompleted, completion.LessonID)
		}
		return err
	}
	return nil
}

// Delete физически удаляет отметку о прохождении урока
func (r *CompletionRepo) Delete(ctx context.Context, userID, lessonID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Delete(&entity.LessonCompletion{})
	return result.RowsAffected, result.Error
}

// CountByUserAndLessons возвращает количество пройденных уроков из набора
func (r *CompletionRepo) CountByUserAndLessons(ctx context.Context, userID uint, lessonIDs []uint) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.LessonCompletion{}).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Distinct("lesson_id").
		Count(&count).Error
	return count, err
}

// ListByUserAndLessons возвращает отметки пользователя по набору уроков
func (r *CompletionRepo) ListByUserAndLessons(ctx context.Context, userID uint, lessonIDs []uint) ([]entity.LessonCompletion, error) {
	completions := make([]entity.LessonCompletion, 0)
	if len(lessonIDs) == 0 {
		return completions, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Order("completed_at DESC").
		Find(&completions).Error
	return completions, err
}

// ListActivityTimes возвращает времена прохождения всех уроков пользователя
func (r *CompletionRepo) ListActivityTimes(ctx context.Context, userID uint) ([]time.Time, error) {
	times := make([]time.Time, 0)
	err := r.db.WithContext(ctx).Model(&entity.LessonCompletion{}).
		Where("user_id = ?", userID).
		Pluck("completed_at", &times).Error
	return times, err
}

// EnrollmentRepo реализует repository.EnrollmentRepository
type EnrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo создает новый репозиторий записей на курсы
func NewEnrollmentRepo(db *gorm.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// Create записывает пользователя на курс; повторная запись возвращает ErrAlreadyEnrolled
func (r *EnrollmentRepo) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: course #%d", repository.ErrAlreadyEnrolled, enrollment.CourseID)
		}
		return err
	}
	return nil
}

// Get возвращает запись пользователя на курс
func (r *EnrollmentRepo) Get(ctx context.Context, userID, courseID uint) (*entity.Enrollment, error) {
	var enrollment entity.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// ListByUser возвращает все записи пользователя вместе с курсами
func (r *EnrollmentRepo) ListByUser(ctx context.Context, userID uint) ([]entity.Enrollment, error) {
	enrollments := make([]entity.Enrollment, 0)
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&enrollments).Error
	return enrollments, err
}

// UpdateProgress перезаписывает кэшированный процент прохождения.
// При 100% фиксируется дата окончания курса, при откате она сбрасывается.
func (r *EnrollmentRepo) UpdateProgress(ctx context.Context, userID, courseID uint, progress int) error {
	updates := map[string]interface{}{
		"progress":     progress,
		"completed_at": nil,
	}
	if progress >= 100 {
		updates["completed_at"] = gorm.Expr("COALESCE(completed_at, NOW())")
	}

	result := r.db.WithContext(ctx).Model(&entity.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: enrollment of user #%d in course #%d", apperrors.ErrNotFound, userID, courseID)
	}
	return nil
}
