package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "full_name", "date_of_birth", "stream", "discharge_book_no",
		"passport_no", "academy_name", "academy_id", "next_of_kin_name", "next_of_kin_contact",
		"created_at", "updated_at"})
}

func TestProfileRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM cadet_profile WHERE id").
		WithArgs("cadet-001").
		WillReturnRows(profileRows())

	profile, err := repo.FindByID(context.Background(), "cadet-001")
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryUpsertInserts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM cadet_profile WHERE id").
		WithArgs("cadet-001").
		WillReturnRows(profileRows())
	mock.ExpectExec("INSERT INTO cadet_profile").
		WillReturnResult(sqlmock.NewResult(1, 1))

	profile := &models.CadetProfile{ID: "cadet-001", FullName: "A. Cadet", Stream: models.StreamDeck}
	require.NoError(t, repo.Upsert(context.Background(), profile))
	assert.NotEmpty(t, profile.CreatedAt)
	assert.Equal(t, profile.CreatedAt, profile.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryUpsertUpdatesExisting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM cadet_profile WHERE id").
		WithArgs("cadet-001").
		WillReturnRows(profileRows().
			AddRow("cadet-001", "A. Cadet", nil, "DECK", nil, nil, nil, nil, nil, nil,
				"2024-01-01T00:00:00.000Z", "2024-01-01T00:00:00.000Z"))
	mock.ExpectExec("UPDATE cadet_profile SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	profile := &models.CadetProfile{ID: "cadet-001", FullName: "A. Cadet Jr", Stream: models.StreamDeck}
	require.NoError(t, repo.Upsert(context.Background(), profile))
	assert.Equal(t, "2024-01-01T00:00:00.000Z", profile.CreatedAt)
	assert.NotEqual(t, profile.CreatedAt, profile.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryUpsertRejectsEmptyName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	err := repo.Upsert(context.Background(), &models.CadetProfile{ID: "cadet-001", FullName: "  ", Stream: models.StreamDeck})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	// No storage interaction happened before the rejection.
	assert.NoError(t, mock.ExpectationsWereMet())
}
