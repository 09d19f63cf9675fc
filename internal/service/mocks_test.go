package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/learning-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) GetByID(ctx context.Context, id uint) (*entity.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseRepo) GetWithInstructor(ctx context.Context, id uint) (*entity.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseRepo) GetLesson(ctx context.Context, courseID, lessonID uint) (*entity.Lesson, error) {
	args := m.Called(ctx, courseID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lesson), args.Error(1)
}

func (m *MockCourseRepo) GetLessonIDs(ctx context.Context, courseID uint) ([]uint, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockCourseRepo) ListLessonsByCourses(ctx context.Context, courseIDs []uint) ([]entity.Lesson, error) {
	args := m.Called(ctx, courseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lesson), args.Error(1)
}

type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) GetByID(ctx context.Context, id uint) (*entity.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) ListByCourse(ctx context.Context, courseID uint) ([]entity.Quiz, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) ListByCourses(ctx context.Context, courseIDs []uint) ([]entity.Quiz, error) {
	args := m.Called(ctx, courseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

type MockAttemptRepo struct {
	mock.Mock
}

func (m *MockAttemptRepo) Create(ctx context.Context, attempt *entity.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepo) GetByID(ctx context.Context, id uint) (*entity.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) ListByUserAndQuiz(ctx context.Context, userID, quizID uint) ([]entity.Attempt, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) CountByUserAndQuiz(ctx context.Context, userID, quizID uint) (int64, error) {
	args := m.Called(ctx, userID, quizID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepo) ListByUserAndQuizzes(ctx context.Context, userID uint, quizIDs []uint) ([]entity.Attempt, error) {
	args := m.Called(ctx, userID, quizIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) GetBestByUserAndQuizzes(ctx context.Context, userID uint, quizIDs []uint) (map[uint]entity.Attempt, error) {
	args := m.Called(ctx, userID, quizIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) ListByQuiz(ctx context.Context, quizID uint) ([]entity.Attempt, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepo) ListActivityTimes(ctx context.Context, userID uint) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Create(ctx context.Context, completion *entity.LessonCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockCompletionRepo) Delete(ctx context.Context, userID, lessonID uint) (int64, error) {
	args := m.Called(ctx, userID, lessonID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompletionRepo) CountByUserAndLessons(ctx context.Context, userID uint, lessonIDs []uint) (int64, error) {
	args := m.Called(ctx, userID, lessonIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompletionRepo) ListByUserAndLessons(ctx context.Context, userID uint, lessonIDs []uint) ([]entity.LessonCompletion, error) {
	args := m.Called(ctx, userID, lessonIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LessonCompletion), args.Error(1)
}

func (m *MockCompletionRepo) ListActivityTimes(ctx context.Context, userID uint) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepo) Get(ctx context.Context, userID, courseID uint) (*entity.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepo) ListByUser(ctx context.Context, userID uint) ([]entity.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepo) UpdateProgress(ctx context.Context, userID, courseID uint, progress int) error {
	args := m.Called(ctx, userID, courseID, progress)
	return args.Error(0)
}

type MockCertificateRepo struct {
	mock.Mock
}

func (m *MockCertificateRepo) Create(ctx context.Context, certificate *entity.Certificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

func (m *MockCertificateRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entity.Certificate, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Certificate), args.Error(1)
}

func (m *MockCertificateRepo) GetByID(ctx context.Context, id uint) (*entity.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Certificate), args.Error(1)
}

func (m *MockCertificateRepo) GetByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Certificate), args.Error(1)
}

func (m *MockCertificateRepo) ListByUser(ctx context.Context, userID uint) ([]entity.Certificate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Certificate), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Delete(keys ...string) error {
	args := m.Called(keys)
	return args.Error(0)
}

func (m *MockCacheRepo) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepo) Expire(key string, expiration time.Duration) error {
	args := m.Called(key, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) TTL(key string) (time.Duration, error) {
	args := m.Called(key)
	return args.Get(0).(time.Duration), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendCertificateIssued(ctx context.Context, msg CertificateEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
