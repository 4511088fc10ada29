package accounts

import (
	"context"

	"github.com/google/uuid"
	"github.com/portobook/portobook/internal/models"
)

// Repository persists Account rows beneath their owning user.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	ByOwner(ctx context.Context, owner uuid.UUID) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, owner uuid.UUID) error
}
