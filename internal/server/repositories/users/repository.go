package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/portobook/portobook/internal/models"
)

// Repository persists User rows. Cascaded deletion of a user's accounts and
// transactions is orchestrated by the service layer inside one transaction;
// Delete here removes only the user row itself.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetAttempts(ctx context.Context, id uuid.UUID, attempts int, at time.Time) error
	ResetAttempts(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
