package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/portobook/portobook/internal/models"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	account := &models.Account{ID: uuid.New(), Owner: owner}

	require.True(t, Authorize(owner, account))
	require.False(t, Authorize(uuid.New(), account))
	require.False(t, Authorize(uuid.Nil, account))
	require.False(t, Authorize(owner, nil))
}

func TestAuthorizeAsset(t *testing.T) {
	owner := uuid.New()
	private := &models.Asset{ID: uuid.New(), Owner: &owner}
	global := &models.Asset{ID: uuid.New()}

	require.True(t, AuthorizeAsset(owner, private))
	require.False(t, AuthorizeAsset(uuid.New(), private))
	require.False(t, AuthorizeAsset(owner, global))
	require.False(t, AuthorizeAsset(uuid.Nil, private))
	require.False(t, AuthorizeAsset(owner, nil))
}

func TestReadable(t *testing.T) {
	owner := uuid.New()
	private := &models.Asset{ID: uuid.New(), Owner: &owner}
	global := &models.Asset{ID: uuid.New()}

	require.True(t, Readable(owner, global))
	require.True(t, Readable(uuid.Nil, global))
	require.True(t, Readable(owner, private))
	require.False(t, Readable(uuid.New(), private))
	require.False(t, Readable(owner, nil))
}
