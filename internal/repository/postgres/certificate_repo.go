package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/domain/repository"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// CertificateRepo реализует repository.CertificateRepository
type CertificateRepo struct {
	db *gorm.DB
}

// NewCertificateRepo создает новый репозиторий сертификатов
func NewCertificateRepo(db *gorm.DB) *CertificateRepo {
	return &CertificateRepo{db: db}
}

// Create вставляет сертификат. Уникальность (user_id, course_id) обеспечивает индекс,
// поэтому параллельные вставки не создадут второй сертификат.
func (r *CertificateRepo) Create(ctx context.Context, certificate *entity.Certificate) error {
	if err := r.db.WithContext(ctx).Create(certificate).Error; err != nil {
		return certificateInsertError(err, certificate)
	}
	return nil
}

// certificateInsertError переводит нарушение уникальности в доменную ошибку по имени индекса
func certificateInsertError(err error, certificate *entity.Certificate) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case entity.CertificateCodeIndex:
		return fmt.Errorf("%w: %s", repository.ErrCertificateCodeTaken, certificate.Code)
	case entity.CertificateUserCourseIndex:
	default:
		// Имя индекса не пришло (или неожиданное) - считаем, что сертификат уже выдан; сервис перечитает его
		log.Printf("[CertificateRepo] Unique violation on unexpected constraint %q for user #%d course #%d",
			constraint, certificate.UserID, certificate.CourseID)
	}
	return fmt.Errorf("%w: user #%d course #%d", repository.ErrCertificateAlreadyIssued, certificate.UserID, certificate.CourseID)
}

// GetByUserAndCourse возвращает сертификат пользователя по курсу
func (r *CertificateRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entity.Certificate, error) {
	var certificate entity.Certificate
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&certificate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &certificate, nil
}

// GetByID возвращает сертификат по ID
func (r *CertificateRepo) GetByID(ctx context.Context, id uint) (*entity.Certificate, error) {
	var certificate entity.Certificate
	err := r.db.WithContext(ctx).Preload("Course").First(&certificate, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificate #%d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &certificate, nil
}

// GetByCode возвращает сертификат по коду вместе с владельцем и курсом
func (r *CertificateRepo) GetByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	var certificate entity.Certificate
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("certificate_code = ?", code).
		First(&certificate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificate %s", apperrors.ErrNotFound, code)
		}
		return nil, err
	}
	return &certificate, nil
}

// ListByUser возвращает сертификаты пользователя, новые первыми
func (r *CertificateRepo) ListByUser(ctx context.Context, userID uint) ([]entity.Certificate, error) {
	certificates := make([]entity.Certificate, 0)
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("issued_at DESC, id DESC").
		Find(&certificates).Error
	return certificates, err
}
