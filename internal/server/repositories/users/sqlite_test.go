package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/models"
	"github.com/portobook/portobook/internal/server/repositories/repotest"
)

func TestCreateAndFetch(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Username: "alice1", Password: []byte("hash")})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	byID, err := repo.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice1", byID.Username)
	require.Equal(t, []byte("hash"), byID.Password)
	require.Zero(t, byID.Attempts)
	require.True(t, byID.LoginAt.IsZero())

	byName, err := repo.ByUsername(ctx, "alice1")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)
}

func TestCreate_RejectsPresetID(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)

	_, err := repo.Create(context.Background(), &models.User{ID: uuid.New(), Username: "bob123"})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Username: "alice1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Username: "alice1"})
	require.ErrorIs(t, err, common.ErrStore)
}

func TestByUsername_NotFound(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)

	_, err := repo.ByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Username: "alice1", Password: []byte("old")})
	require.NoError(t, err)

	created.Username = "alice2"
	created.Password = []byte("new")
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice2", got.Username)
	require.Equal(t, []byte("new"), got.Password)
}

func TestUpdate_NotFound(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)

	err := repo.Update(context.Background(), &models.User{ID: uuid.New(), Username: "ghost1"})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestAttempts(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Username: "alice1"})
	require.NoError(t, err)

	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, repo.SetAttempts(ctx, created.ID, 2, at))

	got, err := repo.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Attempts)
	require.True(t, got.LoginAt.Equal(at))

	require.NoError(t, repo.ResetAttempts(ctx, created.ID))

	got, err = repo.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.Zero(t, got.Attempts)
	require.True(t, got.LoginAt.IsZero())
}

func TestDelete_Idempotent(t *testing.T) {
	db := repotest.OpenDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Username: "alice1"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.ByID(ctx, created.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	// a second delete of the same row is a no-op
	require.NoError(t, repo.Delete(ctx, created.ID))
}
