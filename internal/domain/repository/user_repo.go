package repository

import (
	"context"

	"github.com/yourusername/learning-api/internal/domain/entity"
)

// UserRepository определяет методы для чтения пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.User, error)
}
