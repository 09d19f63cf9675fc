package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/learning-api/internal/middleware"
	"github.com/yourusername/learning-api/internal/service"
)

// Ключи контекста, под которыми ExtractUintParam сохраняет параметры URL
const (
	CourseIDKey      = "courseID"
	QuizIDKey        = "quizID"
	AttemptIDKey     = "attemptID"
	LessonIDKey      = "lessonID"
	CertificateIDKey = "certificateID"
)

// actorFromContext возвращает пользователя, установленного RequireAuth
func actorFromContext(c *gin.Context) service.Actor {
	return service.Actor{
		UserID: c.MustGet(middleware.ContextUserID).(uint),
		Role:   c.GetString(middleware.ContextRole),
	}
}
