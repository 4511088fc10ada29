package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portobook/portobook/internal/server/config"
	"github.com/portobook/portobook/internal/server/repositories/repomanager"
	"github.com/portobook/portobook/internal/server/repositories/repotest"
)

// testEnv bundles the collaborators every service test needs.
type testEnv struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rm, err := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &testEnv{db: repotest.OpenDB(t), rm: rm, cfg: cfg}
}
