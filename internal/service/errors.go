package service

import (
	"fmt"

	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// Ошибки сервисного уровня. Все оборачивают общие категории из internal/pkg/errors,
// поэтому обработчики классифицируют их через errors.Is.
var (
	ErrNotEnrolled        = fmt.Errorf("%w: not enrolled in this course", apperrors.ErrForbidden)
	ErrStudentsOnly       = fmt.Errorf("%w: only students can perform this action", apperrors.ErrForbidden)
	ErrNotCourseOwner     = fmt.Errorf("%w: not the instructor of this course", apperrors.ErrForbidden)
	ErrRetakeNotAllowed   = fmt.Errorf("%w: retakes are not allowed for this quiz", apperrors.ErrConflict)
	ErrLessonNotCompleted = fmt.Errorf("%w: lesson is not marked as complete", apperrors.ErrNotFound)
)
