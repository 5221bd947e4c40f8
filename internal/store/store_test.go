package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cadet-trb/pkg/config"
)

func testConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "trb_test.db"),
		BusyTimeoutMS: 5000,
		WALEnabled:    true,
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	var count int
	err = s.DB().Get(&count,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'cadet_profile'")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testConfig(t)

	s1, err := Open(cfg)
	require.NoError(t, err)
	_, err = s1.DB().Exec(
		"INSERT INTO vessel (id, name, created_at, updated_at) VALUES ('v1', 'MV Test', '2024-01-01', '2024-01-01')")
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening the same file must keep existing rows.
	s2, err := Open(cfg)
	require.NoError(t, err)
	defer s2.Close()

	var count int
	require.NoError(t, s2.DB().Get(&count, "SELECT COUNT(*) FROM vessel"))
	assert.Equal(t, 1, count)
}

func TestOpenBadPath(t *testing.T) {
	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "missing", "sub", "trb.db")}
	s, err := Open(cfg)
	if s != nil {
		s.Close()
	}
	require.Error(t, err)
}

func TestWithTxCommit(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	err = WithTx(context.Background(), s.DB(), func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO vessel (id, name, created_at, updated_at) VALUES ('v1', 'MV Test', '2024-01-01', '2024-01-01')")
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, s.DB().Get(&count, "SELECT COUNT(*) FROM vessel"))
	assert.Equal(t, 1, count)
}

func TestWithTxRollbackOnError(t *testing.T) {
	s, err := Open(testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	err = WithTx(context.Background(), s.DB(), func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vessel (id, name, created_at, updated_at) VALUES ('v1', 'MV Test', '2024-01-01', '2024-01-01')"); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	var count int
	require.NoError(t, s.DB().Get(&count, "SELECT COUNT(*) FROM vessel"))
	assert.Equal(t, 0, count)
}
