package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/learning-api/internal/domain/entity"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create сохраняет новую попытку
func (r *AttemptRepo) Create(ctx context.Context, attempt *entity.Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

// GetByID возвращает попытку по ID
func (r *AttemptRepo) GetByID(ctx context.Context, id uint) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.WithContext(ctx).First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt #%d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &attempt, nil
}

// ListByUserAndQuiz возвращает попытки пользователя по тесту, новые первыми
func (r *AttemptRepo) ListByUserAndQuiz(ctx context.Context, userID, quizID uint) ([]entity.Attempt, error) {
	attempts := make([]entity.Attempt, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

// CountByUserAndQuiz возвращает количество попыток пользователя по тесту
func (r *AttemptRepo) CountByUserAndQuiz(ctx context.Context, userID, quizID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Attempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

// ListByUserAndQuizzes возвращает попытки пользователя по набору тестов, новые первыми
func (r *AttemptRepo) ListByUserAndQuizzes(ctx context.Context, userID uint, quizIDs []uint) ([]entity.Attempt, error) {
	attempts := make([]entity.Attempt, 0)
	if len(quizIDs) == 0 {
		return attempts, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id IN ?", userID, quizIDs).
		Order("created_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

// GetBestByUserAndQuizzes возвращает лучшую попытку на каждый тест.
// При равном score берётся более ранняя попытка.
func (r *AttemptRepo) GetBestByUserAndQuizzes(ctx context.Context, userID uint, quizIDs []uint) (map[uint]entity.Attempt, error) {
	best := make(map[uint]entity.Attempt, len(quizIDs))
	if len(quizIDs) == 0 {
		return best, nil
	}

	var attempts []entity.Attempt
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (quiz_id) *
		FROM quiz_attempts
		WHERE user_id = ? AND quiz_id IN ?
		ORDER BY quiz_id, score DESC, id ASC`, userID, quizIDs).
		Scan(&attempts).Error
	if err != nil {
		return nil, err
	}

	for _, a := range attempts {
		best[a.QuizID] = a
	}
	return best, nil
}

// ListByQuiz возвращает все попытки по тесту вместе с пользователями
func (r *AttemptRepo) ListByQuiz(ctx context.Context, quizID uint) ([]entity.Attempt, error) {
	attempts := make([]entity.Attempt, 0)
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("quiz_id = ?", quizID).
		Order("created_at ASC, id ASC").
		Find(&attempts).Error
	return attempts, err
}

// ListActivityTimes возвращает времена всех попыток пользователя
func (r *AttemptRepo) ListActivityTimes(ctx context.Context, userID uint) ([]time.Time, error) {
	times := make([]time.Time, 0)
	err := r.db.WithContext(ctx).Model(&entity.Attempt{}).
		Where("user_id = ?", userID).
		Pluck("created_at", &times).Error
	return times, err
}
