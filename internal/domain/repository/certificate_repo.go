package repository

import (
	"context"

	"github.com/yourusername/learning-api/internal/domain/entity"
)

// CertificateRepository определяет методы для работы с сертификатами
type CertificateRepository interface {
	// Create вставляет сертификат. Нарушение уникальности (user, course) возвращает
	// ErrCertificateAlreadyIssued, коллизия кода - ErrCertificateCodeTaken.
	Create(ctx context.Context, certificate *entity.Certificate) error
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entity.Certificate, error)
	GetByID(ctx context.Context, id uint) (*entity.Certificate, error)
	GetByCode(ctx context.Context, code string) (*entity.Certificate, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Certificate, error)
}
