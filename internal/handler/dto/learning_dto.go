package dto

import (
	"time"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/service"
)

// LessonCompleteRequest - тело запроса на отметку урока
type LessonCompleteRequest struct {
	TimeSpent int `json:"time_spent" binding:"min=0"` // секунды
}

// EnrollmentResponse представляет запись на курс
type EnrollmentResponse struct {
	ID          uint       `json:"id"`
	CourseID    uint       `json:"course_id"`
	Progress    int        `json:"progress"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewEnrollmentResponse создает DTO записи на курс
func NewEnrollmentResponse(e *entity.Enrollment) *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:          e.ID,
		CourseID:    e.CourseID,
		Progress:    e.Progress,
		EnrolledAt:  e.CreatedAt,
		CompletedAt: e.CompletedAt,
	}
}

// CertificateResponse представляет выданный сертификат
type CertificateResponse struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	CourseTitle string    `json:"course_title,omitempty"`
	Code        string    `json:"certificate_code"`
	IssuedAt    time.Time `json:"issued_at"`
}

// NewCertificateResponse создает DTO сертификата
func NewCertificateResponse(c *entity.Certificate) *CertificateResponse {
	resp := &CertificateResponse{
		ID:       c.ID,
		CourseID: c.CourseID,
		Code:     c.Code,
		IssuedAt: c.IssuedAt,
	}
	if c.Course != nil {
		resp.CourseTitle = c.Course.Title
	}
	return resp
}

// NewCertificateList создает список DTO сертификатов
func NewCertificateList(certificates []entity.Certificate) []*CertificateResponse {
	list := make([]*CertificateResponse, 0, len(certificates))
	for i := range certificates {
		list = append(list, NewCertificateResponse(&certificates[i]))
	}
	return list
}

// CertificateProgress - счетчики, по которым принималось решение о выдаче
type CertificateProgress struct {
	CompletedLessons int `json:"completed_lessons"`
	TotalLessons     int `json:"total_lessons"`
	PassedQuizzes    int `json:"passed_quizzes"`
	TotalQuizzes     int `json:"total_quizzes"`
}

// CertificateCheckResponse - результат проверки права на сертификат
type CertificateCheckResponse struct {
	Eligible    bool                 `json:"eligible"`
	NewlyIssued bool                 `json:"newly_issued"`
	Reason      string               `json:"reason,omitempty"`
	Certificate *CertificateResponse `json:"certificate,omitempty"`
	Completed   int                  `json:"completed"` // пройдено уроков
	Total       int                  `json:"total"`     // всего уроков
	Progress    CertificateProgress  `json:"progress"`
}

// NewCertificateCheckResponse создает DTO проверки сертификата
func NewCertificateCheckResponse(check *service.CertificateCheck) *CertificateCheckResponse {
	resp := &CertificateCheckResponse{
		Eligible:    check.Eligible,
		NewlyIssued: check.NewlyIssued,
		Reason:      check.Reason,
		Completed:   check.CompletedLessons,
		Total:       check.TotalLessons,
		Progress: CertificateProgress{
			CompletedLessons: check.CompletedLessons,
			TotalLessons:     check.TotalLessons,
			PassedQuizzes:    check.PassedQuizzes,
			TotalQuizzes:     check.TotalQuizzes,
		},
	}
	if check.Certificate != nil {
		resp.Certificate = NewCertificateResponse(check.Certificate)
	}
	return resp
}
