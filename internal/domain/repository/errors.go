package repository

import (
	"fmt"

	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

var (
	// ErrCertificateAlreadyIssued означает, что сертификат для пары (user, course) уже существует.
	ErrCertificateAlreadyIssued = fmt.Errorf("%w: certificate already issued", apperrors.ErrConflict)
	// ErrCertificateCodeTaken означает коллизию человекочитаемого кода сертификата.
	ErrCertificateCodeTaken = fmt.Errorf("%w: certificate code already taken", apperrors.ErrConflict)
	// ErrAlreadyEnrolled означает, что студент уже записан на курс.
	ErrAlreadyEnrolled = fmt.Errorf("%w: already enrolled in this course", apperrors.ErrConflict)
	// ErrLessonAlreadyCompleted означает, что урок уже отмечен как пройденный.
	ErrLessonAlreadyCompleted = fmt.Errorf("%w: lesson already marked as complete", apperrors.ErrConflict)
)
