package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/handler/dto"
	"github.com/yourusername/learning-api/internal/service"
)

// CertificateUseCase - проверка права на сертификат и выдача
type CertificateUseCase interface {
	CheckCertificate(ctx context.Context, actor service.Actor, courseID uint) (*service.CertificateCheck, error)
	ListCertificates(ctx context.Context, actor service.Actor) ([]entity.Certificate, error)
	GetCertificate(ctx context.Context, actor service.Actor, id uint) (*entity.Certificate, error)
	GetCertificateDocument(ctx context.Context, actor service.Actor, id uint) (*service.CertificateDocument, error)
	VerifyCertificate(ctx context.Context, code string) (*service.CertificateVerification, error)
}

// CertificateHandler обрабатывает запросы сертификатов
type CertificateHandler struct {
	certificateService CertificateUseCase
}

// NewCertificateHandler создает новый обработчик сертификатов
func NewCertificateHandler(certificateService CertificateUseCase) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

// CheckCertificate проверяет условия окончания курса и при выполнении выдает сертификат
// GET /api/courses/:courseId/certificate/check
func (h *CertificateHandler) CheckCertificate(c *gin.Context) {
	courseID := c.MustGet(CourseIDKey).(uint)

	check, err := h.certificateService.CheckCertificate(c.Request.Context(), actorFromContext(c), courseID)
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCertificateCheckResponse(check))
}

// ListCertificates возвращает сертификаты текущего пользователя
// GET /api/certificates
func (h *CertificateHandler) ListCertificates(c *gin.Context) {
	certificates, err := h.certificateService.ListCertificates(c.Request.Context(), actorFromContext(c))
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"certificates": dto.NewCertificateList(certificates)})
}

// GetCertificate возвращает сертификат по ID
// GET /api/certificates/:id
func (h *CertificateHandler) GetCertificate(c *gin.Context) {
	id := c.MustGet(CertificateIDKey).(uint)

	certificate, err := h.certificateService.GetCertificate(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCertificateResponse(certificate))
}

// GetCertificateDocument возвращает данные для печатной формы сертификата
// GET /api/certificates/:id/document
func (h *CertificateHandler) GetCertificateDocument(c *gin.Context) {
	id := c.MustGet(CertificateIDKey).(uint)

	doc, err := h.certificateService.GetCertificateDocument(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// VerifyCertificate публично проверяет сертификат по коду
// GET /api/certificates/verify/:code
func (h *CertificateHandler) VerifyCertificate(c *gin.Context) {
	verification, err := h.certificateService.VerifyCertificate(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	c.JSON(http.StatusOK, verification)
}
