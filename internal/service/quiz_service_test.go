package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/learning-api/internal/domain/entity"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
	"github.com/yourusername/learning-api/internal/service/grading"
)

const (
	testCourseID   uint = 3
	testQuizID     uint = 11
	testStudentID  uint = 7
	testInstructor uint = 50
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type quizServiceMocks struct {
	courses     *MockCourseRepo
	quizzes     *MockQuizRepo
	attempts    *MockAttemptRepo
	enrollments *MockEnrollmentRepo
	cache       *MockCacheRepo
}

func newQuizServiceForTest() (*QuizService, *quizServiceMocks) {
	m := &quizServiceMocks{
		courses:     new(MockCourseRepo),
		quizzes:     new(MockQuizRepo),
		attempts:    new(MockAttemptRepo),
		enrollments: new(MockEnrollmentRepo),
		cache:       new(MockCacheRepo),
	}
	svc := NewQuizService(m.courses, m.quizzes, m.attempts, m.enrollments, NewAnalyticsCache(m.cache, time.Minute))
	svc.now = func() time.Time { return testNow }
	return svc, m
}

func testCourse() *entity.Course {
	return &entity.Course{ID: testCourseID, Title: "Go Basics", InstructorID: testInstructor}
}

// singleChoiceQuiz: один вопрос, ответ 100 верный, 101 неверный
func singleChoiceQuiz(showCorrect, allowRetake bool) *entity.Quiz {
	return &entity.Quiz{
		ID:                 testQuizID,
		CourseID:           testCourseID,
		Title:              "Quiz",
		PassingScore:       70,
		ShowCorrectAnswers: showCorrect,
		AllowRetake:        allowRetake,
		Questions: []entity.Question{
			{ID: 10, QuizID: testQuizID, Type: entity.QuestionTypeSingleChoice, Answers: []entity.Answer{
				{ID: 100, QuestionID: 10, IsCorrect: true},
				{ID: 101, QuestionID: 10},
			}},
		},
	}
}

func student() Actor {
	return Actor{UserID: testStudentID, Role: entity.RoleStudent}
}

func (m *quizServiceMocks) expectEnrolled() {
	m.courses.On("GetByID", mock.Anything, testCourseID).Return(testCourse(), nil)
	m.enrollments.On("Get", mock.Anything, testStudentID, testCourseID).
		Return(&entity.Enrollment{UserID: testStudentID, CourseID: testCourseID}, nil)
}

func (m *quizServiceMocks) expectInvalidate() {
	m.cache.On("Delete", []string{"analytics:user:7:course:3", "analytics:user:7:overall"}).Return(nil)
}

func TestQuizService_SubmitAttempt_Correct(t *testing.T) {
	// Arrange
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	m.expectInvalidate()
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(singleChoiceQuiz(true, true), nil)

	var saved *entity.Attempt
	m.attempts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Attempt")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Attempt) }).
		Return(nil)

	// Act
	result, err := svc.SubmitAttempt(context.Background(), student(), testCourseID, testQuizID,
		[]grading.SubmittedAnswer{{QuestionID: 10, AnswerIDs: []uint{100}}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Attempt.Score)
	assert.True(t, result.Attempt.Passed)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 1, result.TotalQuestions)
	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].IsCorrect)

	require.NotNil(t, saved, "попытка должна быть сохранена")
	assert.Equal(t, testStudentID, saved.UserID)
	assert.Equal(t, testQuizID, saved.QuizID)
	assert.Equal(t, testNow, saved.CreatedAt)
	assert.Equal(t, result.Results, saved.QuestionResults())

	m.attempts.AssertNumberOfCalls(t, "Create", 1)
	m.cache.AssertExpectations(t)
}

func TestQuizService_SubmitAttempt_HidesResultsButStoresThem(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	m.expectInvalidate()
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(singleChoiceQuiz(false, true), nil)

	var saved *entity.Attempt
	m.attempts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Attempt")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Attempt) }).
		Return(nil)

	result, err := svc.SubmitAttempt(context.Background(), student(), testCourseID, testQuizID,
		[]grading.SubmittedAnswer{{QuestionID: 10, AnswerIDs: []uint{101}}})

	require.NoError(t, err)
	assert.Nil(t, result.Results, "подробные результаты скрыты")
	assert.Equal(t, 0.0, result.Attempt.Score)
	assert.False(t, result.Attempt.Passed)
	require.NotNil(t, saved)
	require.Len(t, saved.QuestionResults(), 1, "результаты сохраняются всегда")
	assert.False(t, saved.QuestionResults()[0].IsCorrect)
}

func TestQuizService_SubmitAttempt_ValidationRejectedBeforeSave(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(singleChoiceQuiz(true, true), nil)

	_, err := svc.SubmitAttempt(context.Background(), student(), testCourseID, testQuizID,
		[]grading.SubmittedAnswer{{QuestionID: 10, AnswerIDs: []uint{999}}})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	m.attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.cache.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestQuizService_SubmitAttempt_NotEnrolled(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.courses.On("GetByID", mock.Anything, testCourseID).Return(testCourse(), nil)
	m.enrollments.On("Get", mock.Anything, testStudentID, testCourseID).Return(nil, apperrors.ErrNotFound)

	_, err := svc.SubmitAttempt(context.Background(), student(), testCourseID, testQuizID, nil)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, err, ErrNotEnrolled)
	m.quizzes.AssertNotCalled(t, "GetWithQuestions", mock.Anything, mock.Anything)
}

func TestQuizService_SubmitAttempt_QuizFromAnotherCourse(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	quiz := singleChoiceQuiz(true, true)
	quiz.CourseID = 99
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(quiz, nil)

	_, err := svc.SubmitAttempt(context.Background(), student(), testCourseID, testQuizID, nil)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	m.attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizService_SubmitAttempt_RetakeNotAllowed(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(singleChoiceQuiz(true, false), nil)
	m.attempts.On("CountByUserAndQuiz", mock.Anything, testStudentID, testQuizID).Return(int64(1), nil)

	_, err := svc.SubmitAttempt(context.Background(), student(), testCourseID, testQuizID,
		[]grading.SubmittedAnswer{{QuestionID: 10, AnswerIDs: []uint{100}}})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	m.attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizService_GetAttempt_ReproducesStoredResults(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	m.expectInvalidate()
	quiz := singleChoiceQuiz(true, true)
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(quiz, nil)
	m.quizzes.On("GetByID", mock.Anything, testQuizID).Return(quiz, nil)

	var saved *entity.Attempt
	m.attempts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Attempt")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.Attempt)
			saved.ID = 501
		}).
		Return(nil)

	submitted, err := svc.SubmitAttempt(context.Background(), student(), testCourseID, testQuizID,
		[]grading.SubmittedAnswer{{QuestionID: 10, AnswerIDs: []uint{100, 100}}})
	require.NoError(t, err)

	m.attempts.On("GetByID", mock.Anything, uint(501)).Return(saved, nil)

	fetched, err := svc.GetAttempt(context.Background(), student(), testCourseID, testQuizID, 501)

	require.NoError(t, err)
	assert.Equal(t, submitted.CorrectAnswers, fetched.CorrectAnswers)
	assert.Equal(t, submitted.TotalQuestions, fetched.TotalQuestions)
	require.Len(t, fetched.Results, len(submitted.Results))
	for i := range submitted.Results {
		assert.Equal(t, submitted.Results[i].IsCorrect, fetched.Results[i].IsCorrect)
	}
}

func TestQuizService_GetAttempt_OtherUsersAttempt(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	m.quizzes.On("GetByID", mock.Anything, testQuizID).Return(singleChoiceQuiz(true, true), nil)
	m.attempts.On("GetByID", mock.Anything, uint(9)).Return(&entity.Attempt{ID: 9, QuizID: testQuizID, UserID: 1234}, nil)

	_, err := svc.GetAttempt(context.Background(), student(), testCourseID, testQuizID, 9)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestQuizService_GetQuizForLearner_Shuffles(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.expectEnrolled()
	quiz := &entity.Quiz{ID: testQuizID, CourseID: testCourseID, ShuffleQuestions: true, Questions: []entity.Question{
		{ID: 1}, {ID: 2}, {ID: 3},
	}}
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(quiz, nil)
	m.attempts.On("ListByUserAndQuiz", mock.Anything, testStudentID, testQuizID).Return([]entity.Attempt{}, nil)

	shuffled := false
	svc.shuffle = func(n int, swap func(i, j int)) {
		shuffled = true
		swap(0, n-1)
	}

	got, err := svc.GetQuizForLearner(context.Background(), student(), testCourseID, testQuizID)

	require.NoError(t, err)
	assert.True(t, shuffled)
	assert.Equal(t, uint(3), got.Quiz.Questions[0].ID)
	assert.Equal(t, uint(1), got.Quiz.Questions[2].ID)
	assert.Empty(t, got.Attempts)
}

func TestQuizService_GetQuizForLearner_InstructorBypassesEnrollment(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.courses.On("GetByID", mock.Anything, testCourseID).Return(testCourse(), nil)
	m.quizzes.On("GetWithQuestions", mock.Anything, testQuizID).Return(singleChoiceQuiz(true, true), nil)
	m.attempts.On("ListByUserAndQuiz", mock.Anything, testInstructor, testQuizID).Return([]entity.Attempt{}, nil)

	_, err := svc.GetQuizForLearner(context.Background(), Actor{UserID: testInstructor, Role: entity.RoleInstructor}, testCourseID, testQuizID)

	require.NoError(t, err)
	m.enrollments.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizService_GetQuizStatistics(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.courses.On("GetByID", mock.Anything, testCourseID).Return(testCourse(), nil)
	m.quizzes.On("GetByID", mock.Anything, testQuizID).Return(singleChoiceQuiz(true, true), nil)
	m.attempts.On("ListByQuiz", mock.Anything, testQuizID).Return([]entity.Attempt{
		{Score: 100, Passed: true},
		{Score: 50, Passed: false},
	}, nil)

	stats, err := svc.GetQuizStatistics(context.Background(), Actor{UserID: testInstructor, Role: entity.RoleInstructor}, testCourseID, testQuizID)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAttempts)
	assert.Equal(t, 75.0, stats.AverageScore)
	assert.Equal(t, 50.0, stats.PassRate)
	assert.Equal(t, 100.0, stats.HighestScore)
	assert.Equal(t, 50.0, stats.LowestScore)
}

func TestQuizService_GetQuizStatistics_ForeignInstructor(t *testing.T) {
	svc, m := newQuizServiceForTest()
	m.courses.On("GetByID", mock.Anything, testCourseID).Return(testCourse(), nil)

	_, err := svc.GetQuizStatistics(context.Background(), Actor{UserID: 999, Role: entity.RoleInstructor}, testCourseID, testQuizID)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	m.attempts.AssertNotCalled(t, "ListByQuiz", mock.Anything, mock.Anything)
}
