package service

import (
	"context"
	"errors"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/domain/repository"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// Actor - аутентифицированный пользователь, от имени которого выполняется операция
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsStudent() bool {
	return a.Role == entity.RoleStudent
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// canManage - админ или автор курса
func (a Actor) canManage(course *entity.Course) bool {
	return a.IsAdmin() || course.IsOwnedBy(a.UserID)
}

// courseAccess проверяет доступ пользователя к курсу
type courseAccess struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

// requireEnrollment возвращает курс, если actor на него записан.
// allowStaff пропускает админа и автора курса без записи.
func (a courseAccess) requireEnrollment(ctx context.Context, actor Actor, courseID uint, allowStaff bool) (*entity.Course, error) {
	course, err := a.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if allowStaff && actor.canManage(course) {
		return course, nil
	}

	if _, err := a.enrollmentRepo.Get(ctx, actor.UserID, courseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return course, nil
}

// requireManager возвращает курс, если actor - его автор или админ
func (a courseAccess) requireManager(ctx context.Context, actor Actor, courseID uint) (*entity.Course, error) {
	course, err := a.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(course) {
		return nil, ErrNotCourseOwner
	}
	return course, nil
}
