// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login with throttling, profile
// updates and full removal of a user's data.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/dbx"
	"github.com/portobook/portobook/internal/models"
	"github.com/portobook/portobook/internal/server/auth"
	"github.com/portobook/portobook/internal/server/config"
	"github.com/portobook/portobook/internal/server/repositories/repomanager"
	"github.com/portobook/portobook/internal/server/validation"
)

// UserService provides account-holder operations:
//   - Register: create users
//   - Login: verify credentials under the failed-attempt throttle
//   - UpdateUsername / UpdatePassword: profile changes
//   - Delete: remove the user and everything they own
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        auth.Hasher
	attemptLimit  int
	attemptWindow time.Duration

	// now is a seam for tests exercising the throttle window.
	now func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		hasher:        hasher,
		attemptLimit:  cfg.LoginAttemptLimit,
		attemptWindow: cfg.LoginAttemptWindow,
		now:           time.Now,
	}
}

// Register creates a new user with the given credentials.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validation.CheckRegistration(username, password); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Password: hash}
	return s.repomanager.Users(s.db).Create(ctx, user)
}

// Exists reports whether a username is already taken.
func (s *UserService) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.repomanager.Users(s.db).ByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login verifies the credentials and returns the user on success. A user
// with attemptLimit failed attempts inside the window is rejected with
// ErrLoginThrottled before the password is even checked; a wrong password
// extends the throttle state. An unknown username and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.ByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	attempts := EffectiveAttempts(user.Attempts, user.LoginAt, now, s.attemptWindow)
	if attempts >= s.attemptLimit {
		return nil, common.ErrLoginThrottled
	}

	if !s.hasher.Compare(user.Password, password) {
		if err := repo.SetAttempts(ctx, user.ID, attempts+1, now); err != nil {
			return nil, err
		}
		return nil, common.ErrBadCredentials
	}

	if err := repo.ResetAttempts(ctx, user.ID); err != nil {
		return nil, err
	}
	user.Attempts = 0
	user.LoginAt = time.Time{}
	return user, nil
}

// UpdateUsername renames the user.
func (s *UserService) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	if err := validation.CheckUsername(username); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	user.Username = username
	return repo.Update(ctx, user)
}

// UpdatePassword replaces the password after re-verifying the old one.
func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if err := validation.CheckPassword(newPassword); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.Password, oldPassword) {
		return common.ErrBadCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return repo.Update(ctx, user)
}

// Delete removes the user together with their accounts, transactions and
// private assets in one transaction. The password is re-verified first.
// Deleting an already absent user succeeds.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.repomanager.Users(s.db).ByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.Password, password) {
		return common.ErrBadCredentials
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Transactions(tx).DeleteByOwner(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.Accounts(tx).DeleteByOwner(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.Assets(tx).DeleteByOwner(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
}
