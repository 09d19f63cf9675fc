package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/handler/dto"
	"github.com/yourusername/learning-api/internal/service"
	"github.com/yourusername/learning-api/internal/service/analytics"
)

// ProgressUseCase - запись на курсы, отметки уроков и аналитика
type ProgressUseCase interface {
	Enroll(ctx context.Context, actor service.Actor, courseID uint) (*entity.Enrollment, error)
	MarkLessonComplete(ctx context.Context, actor service.Actor, courseID, lessonID uint, timeSpent int) (*analytics.CourseProgress, error)
	MarkLessonIncomplete(ctx context.Context, actor service.Actor, courseID, lessonID uint) (*analytics.CourseProgress, error)
	ComputeCourseProgress(ctx context.Context, actor service.Actor, courseID uint) (*analytics.CourseProgress, error)
	GetCourseAnalytics(ctx context.Context, actor service.Actor, courseID uint) (*analytics.CourseAnalytics, error)
	GetOverallAnalytics(ctx context.Context, actor service.Actor) (*analytics.OverallAnalytics, error)
}

// ProgressHandler обрабатывает запросы прогресса обучения
type ProgressHandler struct {
	progressService ProgressUseCase
}

// NewProgressHandler создает новый обработчик прогресса
func NewProgressHandler(progressService ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Enroll записывает студента на курс
// POST /api/courses/:courseId/enroll
func (h *ProgressHandler) Enroll(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)

	enrollment, err := h.progressService.Enroll(c.Request.Context(), actorFromContext(c), courseID)
	if err != nil {
		handleServiceError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEnrollmentResponse(enrollment))
}

// GetProgress пересчитывает и возвращает прогресс по курсу
// GET /api/courses/:courseId/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)

	progress, err := h.progressService.ComputeCourseProgress(c.Request.Context(), actorFromContext(c), courseID)
	if err != nil {
		handleServiceError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// CompleteLesson отмечает урок пройденным
// POST /api/courses/:courseId/lessons/:lessonId/complete
func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	lessonID := c.MustGet(LessonIDKey).(uint)

	// Тело необязательно: без него time_spent = 0
	var req dto.LessonCompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handleBindError(c, err)
			return
		}
	}

	progress, err := h.progressService.MarkLessonComplete(c.Request.Context(), actorFromContext(c), courseID, lessonID, req.TimeSpent)
	if err != nil {
		handleServiceError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusCreated, progress)
}

// UncompleteLesson снимает отметку о прохождении урока
// DELETE /api/courses/:courseId/lessons/:lessonId/complete
func (h *ProgressHandler) UncompleteLesson(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)
	lessonID := c.MustGet(LessonIDKey).(uint)

	progress, err := h.progressService.MarkLessonIncomplete(c.Request.Context(), actorFromContext(c), courseID, lessonID)
	if err != nil {
		handleServiceError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetOverallAnalytics возвращает аналитику по всем курсам студента
// GET /api/progress/analytics
func (h *ProgressHandler) GetOverallAnalytics(c *gin.Context) {
	report, err := h.progressService.GetOverallAnalytics(c.Request.Context(), actorFromContext(c))
	if err != nil {
		handleServiceError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCourseAnalytics возвращает аналитику по одному курсу
// GET /api/progress/courses/:courseId/analytics
func (h *ProgressHandler) GetCourseAnalytics(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)

	report, err := h.progressService.GetCourseAnalytics(c.Request.Context(), actorFromContext(c), courseID)
	if err != nil {
		handleServiceError(c, "ProgressHandler", err)
		return
	}

	c.JSON(http.StatusOK, report)
}
