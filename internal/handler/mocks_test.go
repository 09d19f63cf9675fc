package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/service"
	"github.com/yourusername/learning-api/internal/service/analytics"
	"github.com/yourusername/learning-api/internal/service/grading"
)

type MockQuizUseCase struct{ mock.Mock }

func (m *MockQuizUseCase) GetQuizForLearner(ctx context.Context, actor service.Actor, courseID, quizID uint) (*service.LearnerQuiz, error) {
	args := m.Called(ctx, actor, courseID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LearnerQuiz), args.Error(1)
}

func (m *MockQuizUseCase) SubmitAttempt(ctx context.Context, actor service.Actor, courseID, quizID uint, answers []grading.SubmittedAnswer) (*service.AttemptResult, error) {
	args := m.Called(ctx, actor, courseID, quizID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttemptResult), args.Error(1)
}

func (m *MockQuizUseCase) ListAttempts(ctx context.Context, actor service.Actor, courseID, quizID uint) ([]entity.Attempt, error) {
	args := m.Called(ctx, actor, courseID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

func (m *MockQuizUseCase) GetAttempt(ctx context.Context, actor service.Actor, courseID, quizID, attemptID uint) (*service.AttemptResult, error) {
	args := m.Called(ctx, actor, courseID, quizID, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttemptResult), args.Error(1)
}

type MockInstructorUseCase struct{ mock.Mock }

func (m *MockInstructorUseCase) GetQuizStatistics(ctx context.Context, actor service.Actor, courseID, quizID uint) (*analytics.QuizStatistics, error) {
	args := m.Called(ctx, actor, courseID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.QuizStatistics), args.Error(1)
}

func (m *MockInstructorUseCase) ListQuizAttempts(ctx context.Context, actor service.Actor, courseID, quizID uint) (*entity.Quiz, []entity.Attempt, error) {
	args := m.Called(ctx, actor, courseID, quizID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Quiz), args.Get(1).([]entity.Attempt), args.Error(2)
}

type MockProgressUseCase struct{ mock.Mock }

func (m *MockProgressUseCase) Enroll(ctx context.Context, actor service.Actor, courseID uint) (*entity.Enrollment, error) {
	args := m.Called(ctx, actor, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Enrollment), args.Error(1)
}

func (m *MockProgressUseCase) MarkLessonComplete(ctx context.Context, actor service.Actor, courseID, lessonID uint, timeSpent int) (*analytics.CourseProgress, error) {
	args := m.Called(ctx, actor, courseID, lessonID, timeSpent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.CourseProgress), args.Error(1)
}

func (m *MockProgressUseCase) MarkLessonIncomplete(ctx context.Context, actor service.Actor, courseID, lessonID uint) (*analytics.CourseProgress, error) {
	args := m.Called(ctx, actor, courseID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.CourseProgress), args.Error(1)
}

func (m *MockProgressUseCase) ComputeCourseProgress(ctx context.Context, actor service.Actor, courseID uint) (*analytics.CourseProgress, error) {
	args := m.Called(ctx, actor, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.CourseProgress), args.Error(1)
}

func (m *MockProgressUseCase) GetCourseAnalytics(ctx context.Context, actor service.Actor, courseID uint) (*analytics.CourseAnalytics, error) {
	args := m.Called(ctx, actor, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.CourseAnalytics), args.Error(1)
}

func (m *MockProgressUseCase) GetOverallAnalytics(ctx context.Context, actor service.Actor) (*analytics.OverallAnalytics, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.OverallAnalytics), args.Error(1)
}

type MockCertificateUseCase struct{ mock.Mock }

func (m *MockCertificateUseCase) CheckCertificate(ctx context.Context, actor service.Actor, courseID uint) (*service.CertificateCheck, error) {
	args := m.Called(ctx, actor, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CertificateCheck), args.Error(1)
}

func (m *MockCertificateUseCase) ListCertificates(ctx context.Context, actor service.Actor) ([]entity.Certificate, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Certificate), args.Error(1)
}

func (m *MockCertificateUseCase) GetCertificate(ctx context.Context, actor service.Actor, id uint) (*entity.Certificate, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Certificate), args.Error(1)
}

func (m *MockCertificateUseCase) GetCertificateDocument(ctx context.Context, actor service.Actor, id uint) (*service.CertificateDocument, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CertificateDocument), args.Error(1)
}

func (m *MockCertificateUseCase) VerifyCertificate(ctx context.Context, code string) (*service.CertificateVerification, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CertificateVerification), args.Error(1)
}
