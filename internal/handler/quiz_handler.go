package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/handler/dto"
	"github.com/yourusername/learning-api/internal/service"
	"github.com/yourusername/learning-api/internal/service/grading"
)

// QuizUseCase - операции прохождения тестов
type QuizUseCase interface {
	GetQuizForLearner(ctx context.Context, actor service.Actor, courseID, quizID uint) (*service.LearnerQuiz, error)
	SubmitAttempt(ctx context.Context, actor service.Actor, courseID, quizID uint, answers []grading.SubmittedAnswer) (*service.AttemptResult, error)
	ListAttempts(ctx context.Context, actor service.Actor, courseID, quizID uint) ([]entity.Attempt, error)
	GetAttempt(ctx context.Context, actor service.Actor, courseID, quizID, attemptID uint) (*service.AttemptResult, error)
}

// QuizHandler обрабатывает запросы студентов к тестам курса
type QuizHandler struct {
	quizService QuizUseCase
}

// NewQuizHandler создает новый обработчик тестов
func NewQuizHandler(quizService QuizUseCase) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetQuiz возвращает тест для прохождения (без правильных ответов)
// GET /api/courses/:courseId/quizzes/:quizId
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	quizID := c.MustGet(QuizIDKey).(uint)

	lq, err := h.quizService.GetQuizForLearner(c.Request.Context(), actorFromContext(c), courseID, quizID)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(lq))
}

// SubmitAttempt принимает ответы студента и возвращает результат проверки
// POST /api/courses/:courseId/quizzes/:quizId/submit
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	quizID := c.MustGet(QuizIDKey).(uint)

	var req dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	result, err := h.quizService.SubmitAttempt(c.Request.Context(), actorFromContext(c), courseID, quizID, req.ToSubmittedAnswers())
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAttemptResponse(result))
}

// ListAttempts возвращает попытки студента по тесту
// GET /api/courses/:courseId/quizzes/:quizId/attempts
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	quizID := c.MustGet(QuizIDKey).(uint)

	attempts, err := h.quizService.ListAttempts(c.Request.Context(), actorFromContext(c), courseID, quizID)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": dto.NewAttemptSummaryList(attempts)})
}

// GetAttempt возвращает сохраненную попытку
// GET /api/courses/:courseId/quizzes/:quizId/attempts/:attemptId
func (h *QuizHandler) GetAttempt(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	quizID := c.MustGet(QuizIDKey).(uint)
	attemptID := c.MustGet(AttemptIDKey).(uint)

	result, err := h.quizService.GetAttempt(c.Request.Context(), actorFromContext(c), courseID, quizID, attemptID)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAttemptResponse(result))
}
