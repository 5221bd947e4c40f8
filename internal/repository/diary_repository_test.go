package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

func TestDiaryRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDiaryRepository(db)

	mock.ExpectExec("INSERT INTO diary_entry").
		WillReturnResult(sqlmock.NewResult(1, 1))

	summary := "Assisted 3/O with chart corrections"
	entry := &models.DiaryEntry{
		CadetID:   "cadet-001",
		Date:      "2024-03-05",
		EntryType: models.EntryDaily,
		Summary:   &summary,
	}
	require.NoError(t, repo.Insert(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiaryRepositoryInsertRejectsMissingDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDiaryRepository(db)

	err := repo.Insert(context.Background(), &models.DiaryEntry{
		CadetID:   "cadet-001",
		EntryType: models.EntryDaily,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiaryRepositoryUpdateWithAuditIsTransactional(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDiaryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO diary_entry_audit").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE diary_entry SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	prior := &models.DiaryEntry{ID: "e1", CadetID: "cadet-001", Date: "2024-03-05", EntryType: models.EntryDaily}
	updated := *prior
	summary := "Corrected summary"
	updated.Summary = &summary

	require.NoError(t, repo.UpdateWithAudit(context.Background(), &updated, prior))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiaryRepositoryUpdateWithAuditRollsBackOnMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDiaryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO diary_entry_audit").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE diary_entry SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	prior := &models.DiaryEntry{ID: "gone", CadetID: "cadet-001", Date: "2024-03-05", EntryType: models.EntryDaily}
	updated := *prior

	err := repo.UpdateWithAudit(context.Background(), &updated, prior)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
