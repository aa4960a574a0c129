package repositories

import (
	"context"

	"pointbank/internal/models"
)

// UserRepository is the user directory consumed by the transfer and ledger
// services, plus profile CRUD for the HTTP surface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, int64, error)
}
