package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/datatypes"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/domain/repository"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
	"github.com/yourusername/learning-api/internal/service/analytics"
	"github.com/yourusername/learning-api/internal/service/grading"
)

// QuizService отвечает за выдачу тестов студентам, приём и проверку попыток
type QuizService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	access      courseAccess
	cache       *AnalyticsCache

	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

// NewQuizService создает новый сервис тестов
func NewQuizService(
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	enrollmentRepo repository.EnrollmentRepository,
	cache *AnalyticsCache,
) *QuizService {
	return &QuizService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		access:      courseAccess{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo},
		cache:       cache,
		now:         time.Now,
		shuffle:     rand.Shuffle,
	}
}

// LearnerQuiz - тест для прохождения вместе с прошлыми попытками студента
type LearnerQuiz struct {
	Quiz     *entity.Quiz
	Attempts []entity.Attempt
}

// AttemptResult - результат попытки в том виде, в котором его видит студент.
// Results == nil, если тест скрывает правильные ответы.
type AttemptResult struct {
	Attempt        *entity.Attempt
	CorrectAnswers int
	TotalQuestions int
	Results        []entity.QuestionResult
}

// loadQuiz загружает тест с вопросами и проверяет, что он принадлежит курсу
func (s *QuizService) loadQuiz(ctx context.Context, courseID, quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return quiz, checkQuizCourse(quiz, courseID)
}

// quizInCourse загружает тест без вопросов и проверяет, что он принадлежит курсу
func (s *QuizService) quizInCourse(ctx context.Context, courseID, quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return quiz, checkQuizCourse(quiz, courseID)
}

func checkQuizCourse(quiz *entity.Quiz, courseID uint) error {
	if quiz.CourseID != courseID {
		return fmt.Errorf("%w: quiz #%d is not part of course #%d", apperrors.ErrNotFound, quiz.ID, courseID)
	}
	return nil
}

// GetQuizForLearner возвращает тест для прохождения.
// При shuffle_questions вопросы перемешиваются на каждый запрос.
func (s *QuizService) GetQuizForLearner(ctx context.Context, actor Actor, courseID, quizID uint) (*LearnerQuiz, error) {
	if _, err := s.access.requireEnrollment(ctx, actor, courseID, true); err != nil {
		return nil, err
	}

	quiz, err := s.loadQuiz(ctx, courseID, quizID)
	if err != nil {
		return nil, err
	}

	if quiz.ShuffleQuestions && len(quiz.Questions) > 1 {
		s.shuffle(len(quiz.Questions), func(i, j int) {
			quiz.Questions[i], quiz.Questions[j] = quiz.Questions[j], quiz.Questions[i]
		})
	}

	attempts, err := s.attemptRepo.ListByUserAndQuiz(ctx, actor.UserID, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	return &LearnerQuiz{Quiz: quiz, Attempts: attempts}, nil
}

// SubmitAttempt проверяет ответы студента и сохраняет новую попытку.
// Ввод валидируется до любых изменений: ссылка на чужой вопрос или ответ отклоняется целиком.
func (s *QuizService) SubmitAttempt(ctx context.Context, actor Actor, courseID, quizID uint, answers []grading.SubmittedAnswer) (*AttemptResult, error) {
	if _, err := s.access.requireEnrollment(ctx, actor, courseID, false); err != nil {
		return nil, err
	}

	quiz, err := s.loadQuiz(ctx, courseID, quizID)
	if err != nil {
		return nil, err
	}

	if !quiz.AllowRetake {
		count, err := s.attemptRepo.CountByUserAndQuiz(ctx, actor.UserID, quiz.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count attempts: %w", err)
		}
		if count > 0 {
			return nil, ErrRetakeNotAllowed
		}
	}

	submission, err := grading.BuildSubmission(quiz, answers)
	if err != nil {
		return nil, err
	}

	outcome := grading.Grade(quiz, submission)

	attempt := &entity.Attempt{
		QuizID:    quiz.ID,
		UserID:    actor.UserID,
		Score:     outcome.Score,
		Passed:    outcome.Passed,
		Results:   datatypes.NewJSONType(outcome.Results),
		CreatedAt: s.now(),
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	s.cache.Invalidate(actor.UserID, courseID)

	log.Printf("[QuizService] Пользователь #%d прошел тест #%d: %.2f%% (%d/%d), passed=%t",
		actor.UserID, quiz.ID, outcome.Score, outcome.CorrectCount, outcome.TotalQuestions, outcome.Passed)

	result := &AttemptResult{
		Attempt:        attempt,
		CorrectAnswers: outcome.CorrectCount,
		TotalQuestions: outcome.TotalQuestions,
	}
	if quiz.ShowCorrectAnswers {
		result.Results = outcome.Results
	}
	return result, nil
}

// ListAttempts возвращает попытки студента по тесту, новые первыми
func (s *QuizService) ListAttempts(ctx context.Context, actor Actor, courseID, quizID uint) ([]entity.Attempt, error) {
	if _, err := s.access.requireEnrollment(ctx, actor, courseID, true); err != nil {
		return nil, err
	}
	if _, err := s.quizInCourse(ctx, courseID, quizID); err != nil {
		return nil, err
	}
	return s.attemptRepo.ListByUserAndQuiz(ctx, actor.UserID, quizID)
}

// GetAttempt возвращает сохранённую попытку. Результаты читаются как есть, без перепроверки.
func (s *QuizService) GetAttempt(ctx context.Context, actor Actor, courseID, quizID, attemptID uint) (*AttemptResult, error) {
	course, err := s.access.requireEnrollment(ctx, actor, courseID, true)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizInCourse(ctx, courseID, quizID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.QuizID != quizID {
		return nil, fmt.Errorf("%w: attempt #%d does not belong to quiz #%d", apperrors.ErrNotFound, attemptID, quizID)
	}
	if attempt.UserID != actor.UserID && !actor.canManage(course) {
		return nil, fmt.Errorf("%w: attempt #%d belongs to another user", apperrors.ErrForbidden, attemptID)
	}

	stored := attempt.QuestionResults()
	result := &AttemptResult{
		Attempt:        attempt,
		TotalQuestions: len(stored),
	}
	for _, r := range stored {
		if r.IsCorrect {
			result.CorrectAnswers++
		}
	}
	if quiz.ShowCorrectAnswers || actor.canManage(course) {
		result.Results = stored
	}
	return result, nil
}

// GetQuizStatistics возвращает статистику попыток по тесту (автор курса или админ)
func (s *QuizService) GetQuizStatistics(ctx context.Context, actor Actor, courseID, quizID uint) (*analytics.QuizStatistics, error) {
	quiz, attempts, err := s.ListQuizAttempts(ctx, actor, courseID, quizID)
	if err != nil {
		return nil, err
	}

	stats := analytics.ComputeQuizStatistics(attempts)
	log.Printf("[QuizService] Статистика теста #%d: %d попыток", quiz.ID, stats.TotalAttempts)
	return &stats, nil
}

// ListQuizAttempts возвращает все попытки по тесту вместе с пользователями (для статистики и экспорта)
func (s *QuizService) ListQuizAttempts(ctx context.Context, actor Actor, courseID, quizID uint) (*entity.Quiz, []entity.Attempt, error) {
	if _, err := s.access.requireManager(ctx, actor, courseID); err != nil {
		return nil, nil, err
	}
	quiz, err := s.quizInCourse(ctx, courseID, quizID)
	if err != nil {
		return nil, nil, err
	}

	attempts, err := s.attemptRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load quiz attempts: %w", err)
	}
	return quiz, attempts, nil
}
