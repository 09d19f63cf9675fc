package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/learning-api/internal/domain/entity"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий тестов
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// GetByID возвращает тест по ID (без вопросов)
func (r *QuizRepo) GetByID(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz #%d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает тест вместе с вопросами и вариантами ответов
func (r *QuizRepo) GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC, id ASC`)
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz #%d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &quiz, nil
}

// ListByCourse возвращает тесты курса
func (r *QuizRepo) ListByCourse(ctx context.Context, courseID uint) ([]entity.Quiz, error) {
	quizzes := make([]entity.Quiz, 0)
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

// ListByCourses возвращает тесты нескольких курсов
func (r *QuizRepo) ListByCourses(ctx context.Context, courseIDs []uint) ([]entity.Quiz, error) {
	quizzes := make([]entity.Quiz, 0)
	if len(courseIDs) == 0 {
		return quizzes, nil
	}
	err := r.db.WithContext(ctx).Where("course_id IN ?", courseIDs).Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}
