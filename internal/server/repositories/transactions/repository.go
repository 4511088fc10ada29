package transactions

import (
	"context"

	"github.com/google/uuid"
	"github.com/portobook/portobook/internal/models"
)

// Repository persists Transaction rows. Every transaction belongs to an
// existing account; Create rejects dangling references.
type Repository interface {
	Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ByAccount(ctx context.Context, account uuid.UUID) ([]*models.Transaction, error)
	Update(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAccount(ctx context.Context, account uuid.UUID) error
	DeleteByOwner(ctx context.Context, owner uuid.UUID) error
}
