package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/domain/repository"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
	"github.com/yourusername/learning-api/internal/service/analytics"
)

// ProgressConfig - настройки расчёта прогресса и аналитики
type ProgressConfig struct {
	// Location - часовой пояс, по которому время активности режется на календарные дни
	Location  *time.Location
	TrendSize int
}

// ProgressService отвечает за запись на курсы, отметки уроков, прогресс и аналитику студента
type ProgressService struct {
	courseRepo     repository.CourseRepository
	quizRepo       repository.QuizRepository
	attemptRepo    repository.AttemptRepository
	completionRepo repository.CompletionRepository
	enrollmentRepo repository.EnrollmentRepository
	access         courseAccess
	cache          *AnalyticsCache
	config         ProgressConfig

	now func() time.Time
}

// NewProgressService создает новый сервис прогресса
func NewProgressService(
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	completionRepo repository.CompletionRepository,
	enrollmentRepo repository.EnrollmentRepository,
	cache *AnalyticsCache,
	config ProgressConfig,
) *ProgressService {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.TrendSize <= 0 {
		config.TrendSize = analytics.DefaultTrendSize
	}
	return &ProgressService{
		courseRepo:     courseRepo,
		quizRepo:       quizRepo,
		attemptRepo:    attemptRepo,
		completionRepo: completionRepo,
		enrollmentRepo: enrollmentRepo,
		access:         courseAccess{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo},
		cache:          cache,
		config:         config,
		now:            time.Now,
	}
}

// Enroll записывает студента на курс
func (s *ProgressService) Enroll(ctx context.Context, actor Actor, courseID uint) (*entity.Enrollment, error) {
	if !actor.IsStudent() {
		return nil, ErrStudentsOnly
	}
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment := &entity.Enrollment{
		UserID:   actor.UserID,
		CourseID: course.ID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(actor.UserID, course.ID)
	log.Printf("[ProgressService] Пользователь #%d записан на курс #%d", actor.UserID, course.ID)
	return enrollment, nil
}

// MarkLessonComplete отмечает урок пройденным и пересчитывает прогресс по курсу
func (s *ProgressService) MarkLessonComplete(ctx context.Context, actor Actor, courseID, lessonID uint, timeSpent int) (*analytics.CourseProgress, error) {
	if !actor.IsStudent() {
		return nil, ErrStudentsOnly
	}
	if timeSpent < 0 {
		return nil, fmt.Errorf("%w: time_spent must not be negative", apperrors.ErrValidation)
	}

	course, err := s.access.requireEnrollment(ctx, actor, courseID, false)
	if err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetLesson(ctx, course.ID, lessonID); err != nil {
		return nil, err
	}

	completion := &entity.LessonCompletion{
		UserID:      actor.UserID,
		LessonID:    lessonID,
		CompletedAt: s.now(),
		TimeSpent:   timeSpent,
	}
	if err := s.completionRepo.Create(ctx, completion); err != nil {
		return nil, err
	}

	s.cache.Invalidate(actor.UserID, course.ID)
	return s.recomputeProgress(ctx, actor.UserID, course)
}

// MarkLessonIncomplete снимает отметку о прохождении урока (запись удаляется)
func (s *ProgressService) MarkLessonIncomplete(ctx context.Context, actor Actor, courseID, lessonID uint) (*analytics.CourseProgress, error) {
	course, err := s.access.requireEnrollment(ctx, actor, courseID, false)
	if err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetLesson(ctx, course.ID, lessonID); err != nil {
		return nil, err
	}

	deleted, err := s.completionRepo.Delete(ctx, actor.UserID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete lesson completion: %w", err)
	}
	if deleted == 0 {
		return nil, ErrLessonNotCompleted
	}

	s.cache.Invalidate(actor.UserID, course.ID)
	return s.recomputeProgress(ctx, actor.UserID, course)
}

// ComputeCourseProgress пересчитывает процент прохождения курса по отметкам уроков
func (s *ProgressService) ComputeCourseProgress(ctx context.Context, actor Actor, courseID uint) (*analytics.CourseProgress, error) {
	course, err := s.access.requireEnrollment(ctx, actor, courseID, false)
	if err != nil {
		return nil, err
	}
	return s.recomputeProgress(ctx, actor.UserID, course)
}

// recomputeProgress всегда считает прогресс заново и перезаписывает кэш в записи на курс
func (s *ProgressService) recomputeProgress(ctx context.Context, userID uint, course *entity.Course) (*analytics.CourseProgress, error) {
	lessonIDs, err := s.courseRepo.GetLessonIDs(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}

	completed := int64(0)
	if len(lessonIDs) > 0 {
		completed, err = s.completionRepo.CountByUserAndLessons(ctx, userID, lessonIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to count completed lessons: %w", err)
		}
	}

	progress := &analytics.CourseProgress{
		CourseID:         course.ID,
		Title:            course.Title,
		CompletedLessons: int(completed),
		TotalLessons:     len(lessonIDs),
		Progress:         analytics.Percentage(int(completed), len(lessonIDs)),
	}

	if err := s.enrollmentRepo.UpdateProgress(ctx, userID, course.ID, progress.Progress); err != nil {
		log.Printf("[ProgressService] Не удалось обновить прогресс пользователя #%d по курсу #%d: %v", userID, course.ID, err)
	}
	return progress, nil
}

// ComputeLearningStreak считает серию дней активности по урокам и попыткам тестов
func (s *ProgressService) ComputeLearningStreak(ctx context.Context, userID uint) (analytics.Streak, error) {
	completions, err := s.completionRepo.ListActivityTimes(ctx, userID)
	if err != nil {
		return analytics.Streak{}, fmt.Errorf("failed to load lesson activity: %w", err)
	}
	attempts, err := s.attemptRepo.ListActivityTimes(ctx, userID)
	if err != nil {
		return analytics.Streak{}, fmt.Errorf("failed to load quiz activity: %w", err)
	}
	return analytics.ComputeStreak(analytics.ActivityTimes(completions, attempts), s.now(), s.config.Location), nil
}

// GetCourseAnalytics возвращает аналитику студента по курсу
func (s *ProgressService) GetCourseAnalytics(ctx context.Context, actor Actor, courseID uint) (*analytics.CourseAnalytics, error) {
	course, err := s.access.requireEnrollment(ctx, actor, courseID, false)
	if err != nil {
		return nil, err
	}

	// Серия считается по активности во всех курсах, поэтому в кэш не попадает
	// и пересчитывается на каждом чтении.
	key := courseAnalyticsKey(actor.UserID, course.ID)
	var cached analytics.CourseAnalytics
	if s.cache.get(key, &cached) {
		if cached.Streak, err = s.ComputeLearningStreak(ctx, actor.UserID); err != nil {
			return nil, err
		}
		return &cached, nil
	}

	lessonIDs, err := s.courseRepo.GetLessonIDs(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	completions, err := s.listCompletions(ctx, actor.UserID, lessonIDs)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quizzes: %w", err)
	}
	quizSummary, err := s.summarizeQuizzes(ctx, actor.UserID, quizzes)
	if err != nil {
		return nil, err
	}

	result := &analytics.CourseAnalytics{
		CourseID: course.ID,
		Lessons:  analytics.SummarizeLessons(len(completions), len(lessonIDs)),
		Time:     analytics.SummarizeTime(completions),
		Quizzes:  quizSummary,
	}
	s.cache.set(key, result)

	if result.Streak, err = s.ComputeLearningStreak(ctx, actor.UserID); err != nil {
		return nil, err
	}
	return result, nil
}

// GetOverallAnalytics возвращает аналитику студента по всем курсам, на которые он записан
func (s *ProgressService) GetOverallAnalytics(ctx context.Context, actor Actor) (*analytics.OverallAnalytics, error) {
	key := overallAnalyticsKey(actor.UserID)
	var cached analytics.OverallAnalytics
	if s.cache.get(key, &cached) {
		streak, err := s.ComputeLearningStreak(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		cached.Streak = streak
		return &cached, nil
	}

	enrollments, err := s.enrollmentRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	var lessons []entity.Lesson
	var quizzes []entity.Quiz
	if len(courseIDs) > 0 {
		if lessons, err = s.courseRepo.ListLessonsByCourses(ctx, courseIDs); err != nil {
			return nil, fmt.Errorf("failed to load lessons: %w", err)
		}
		if quizzes, err = s.quizRepo.ListByCourses(ctx, courseIDs); err != nil {
			return nil, fmt.Errorf("failed to load quizzes: %w", err)
		}
	}

	lessonCourse := make(map[uint]uint, len(lessons))
	lessonIDs := make([]uint, 0, len(lessons))
	totalByCourse := make(map[uint]int)
	for _, l := range lessons {
		lessonCourse[l.ID] = l.CourseID
		lessonIDs = append(lessonIDs, l.ID)
		totalByCourse[l.CourseID]++
	}

	completions, err := s.listCompletions(ctx, actor.UserID, lessonIDs)
	if err != nil {
		return nil, err
	}
	completedByCourse := make(map[uint]int)
	for _, c := range completions {
		completedByCourse[lessonCourse[c.LessonID]]++
	}

	quizSummary, err := s.summarizeQuizzes(ctx, actor.UserID, quizzes)
	if err != nil {
		return nil, err
	}

	result := &analytics.OverallAnalytics{
		Courses: make([]analytics.CourseProgress, 0, len(enrollments)),
		Lessons: analytics.SummarizeLessons(len(completions), len(lessonIDs)),
		Time:    analytics.SummarizeTime(completions),
		Quizzes: quizSummary,
	}
	for _, e := range enrollments {
		row := analytics.CourseProgress{
			CourseID:         e.CourseID,
			CompletedLessons: completedByCourse[e.CourseID],
			TotalLessons:     totalByCourse[e.CourseID],
		}
		if e.Course != nil {
			row.Title = e.Course.Title
		}
		row.Progress = analytics.Percentage(row.CompletedLessons, row.TotalLessons)
		result.Courses = append(result.Courses, row)
	}

	s.cache.set(key, result)

	if result.Streak, err = s.ComputeLearningStreak(ctx, actor.UserID); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ProgressService) listCompletions(ctx context.Context, userID uint, lessonIDs []uint) ([]entity.LessonCompletion, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	completions, err := s.completionRepo.ListByUserAndLessons(ctx, userID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson completions: %w", err)
	}
	return completions, nil
}

func (s *ProgressService) summarizeQuizzes(ctx context.Context, userID uint, quizzes []entity.Quiz) (analytics.QuizSummary, error) {
	titles := make(map[uint]string, len(quizzes))
	quizIDs := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		titles[q.ID] = q.Title
		quizIDs = append(quizIDs, q.ID)
	}

	var attempts []entity.Attempt
	if len(quizIDs) > 0 {
		var err error
		attempts, err = s.attemptRepo.ListByUserAndQuizzes(ctx, userID, quizIDs)
		if err != nil {
			return analytics.QuizSummary{}, fmt.Errorf("failed to load attempts: %w", err)
		}
	}

	return analytics.SummarizeQuizzes(attempts, len(quizzes), titles, s.config.TrendSize, s.config.Location), nil
}
