package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

type diaryRepoStub struct {
	entries map[string]*models.DiaryEntry
	audits  []models.DiaryEntryAudit
}

func newDiaryRepoStub() *diaryRepoStub {
	return &diaryRepoStub{entries: map[string]*models.DiaryEntry{}}
}

func (s *diaryRepoStub) FindByID(ctx context.Context, id string) (*models.DiaryEntry, error) {
	if entry, ok := s.entries[id]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, nil
}

func (s *diaryRepoStub) ListForCadet(ctx context.Context, cadetID string) ([]models.DiaryEntry, error) {
	result := []models.DiaryEntry{}
	for _, entry := range s.entries {
		if entry.CadetID == cadetID {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func (s *diaryRepoStub) Insert(ctx context.Context, entry *models.DiaryEntry) error {
	if entry.ID == "" {
		entry.ID = "entry-1"
	}
	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

func (s *diaryRepoStub) UpdateWithAudit(ctx context.Context, entry, prior *models.DiaryEntry) error {
	s.audits = append(s.audits, models.DiaryEntryAudit{DiaryEntryID: prior.ID})
	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

func (s *diaryRepoStub) ListAuditsForEntry(ctx context.Context, diaryEntryID string) ([]models.DiaryEntryAudit, error) {
	result := []models.DiaryEntryAudit{}
	for _, audit := range s.audits {
		if audit.DiaryEntryID == diaryEntryID {
			result = append(result, audit)
		}
	}
	return result, nil
}

func TestDiaryServiceCreateDailyEntry(t *testing.T) {
	repo := newDiaryRepoStub()
	svc := NewDiaryService(repo, nil, nil)

	entry, err := svc.Create(context.Background(), deckSession, DiaryEntryRequest{
		EntryType: string(models.EntryDaily),
		Date:      "2024-03-10",
		Summary:   "Assisted with mooring stations fore and aft.",
	})
	require.NoError(t, err)
	require.NotNil(t, entry.Summary)
	assert.Nil(t, entry.TimeStart)
}

func TestDiaryServiceDailyEntryRejectsWatchTimes(t *testing.T) {
	svc := NewDiaryService(newDiaryRepoStub(), nil, nil)

	_, err := svc.Create(context.Background(), deckSession, DiaryEntryRequest{
		EntryType: string(models.EntryDaily),
		Date:      "2024-03-10",
		Summary:   "A day at sea.",
		TimeStart: "08:00",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDiaryServiceDailyEntryRequiresSummary(t *testing.T) {
	svc := NewDiaryService(newDiaryRepoStub(), nil, nil)

	_, err := svc.Create(context.Background(), deckSession, DiaryEntryRequest{
		EntryType: string(models.EntryDaily),
		Date:      "2024-03-10",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDiaryServiceBridgeWatchEncodesPosition(t *testing.T) {
	repo := newDiaryRepoStub()
	svc := NewDiaryService(repo, nil, nil)

	entry, err := svc.Create(context.Background(), deckSession, DiaryEntryRequest{
		EntryType:     string(models.EntryBridgeWatch),
		Date:          "2024-03-10",
		TimeStart:     "04:00",
		TimeEnd:       "08:00",
		LatBody:       "1217.8",
		LatHemisphere: "N",
		LonBody:       "07750.2",
		LonHemisphere: "E",
	})
	require.NoError(t, err)
	require.NotNil(t, entry.PositionLat)
	assert.Equal(t, "12°17.8'N", *entry.PositionLat)
	require.NotNil(t, entry.PositionLon)
	assert.Equal(t, "077°50.2'E", *entry.PositionLon)
}

func TestDiaryServiceBridgeWatchRejectsBadLatitude(t *testing.T) {
	svc := NewDiaryService(newDiaryRepoStub(), nil, nil)

	_, err := svc.Create(context.Background(), deckSession, DiaryEntryRequest{
		EntryType:     string(models.EntryBridgeWatch),
		Date:          "2024-03-10",
		TimeStart:     "04:00",
		TimeEnd:       "08:00",
		LatBody:       "9517.8",
		LatHemisphere: "N",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDiaryServiceWatchRequiresBothTimes(t *testing.T) {
	svc := NewDiaryService(newDiaryRepoStub(), nil, nil)

	_, err := svc.Create(context.Background(), deckSession, DiaryEntryRequest{
		EntryType: string(models.EntryEngineWatch),
		Date:      "2024-03-10",
		TimeStart: "04:00",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDiaryServiceUpdateSnapshotsPrior(t *testing.T) {
	repo := newDiaryRepoStub()
	summary := "Original summary."
	repo.entries["entry-1"] = &models.DiaryEntry{
		ID:        "entry-1",
		CadetID:   "cadet-001",
		Date:      "2024-03-10",
		EntryType: models.EntryDaily,
		Summary:   &summary,
	}
	svc := NewDiaryService(repo, nil, nil)

	entry, err := svc.Update(context.Background(), deckSession, "entry-1", DiaryEntryRequest{
		EntryType: string(models.EntryDaily),
		Date:      "2024-03-10",
		Summary:   "Corrected summary.",
	})
	require.NoError(t, err)
	assert.Equal(t, "entry-1", entry.ID)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, "entry-1", repo.audits[0].DiaryEntryID)
}

func TestDiaryServiceUpdateForeignEntryNotFound(t *testing.T) {
	repo := newDiaryRepoStub()
	summary := "Someone else's day."
	repo.entries["entry-9"] = &models.DiaryEntry{
		ID:        "entry-9",
		CadetID:   "cadet-999",
		Date:      "2024-03-10",
		EntryType: models.EntryDaily,
		Summary:   &summary,
	}
	svc := NewDiaryService(repo, nil, nil)

	_, err := svc.Update(context.Background(), deckSession, "entry-9", DiaryEntryRequest{
		EntryType: string(models.EntryDaily),
		Date:      "2024-03-10",
		Summary:   "hijack",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDiaryServiceHoursSummary(t *testing.T) {
	repo := newDiaryRepoStub()
	svc := NewDiaryService(repo, nil, nil)

	entries := []models.DiaryEntry{
		{ID: "e1", CadetID: "cadet-001", EntryType: models.EntryBridgeWatch, TimeStart: strPtr("04:00"), TimeEnd: strPtr("08:00")},
		{ID: "e2", CadetID: "cadet-001", EntryType: models.EntryEngineWatch, TimeStart: strPtr("20:00"), TimeEnd: strPtr("00:00")},
		{ID: "e3", CadetID: "cadet-001", EntryType: models.EntryDaily},
	}
	for i := range entries {
		clone := entries[i]
		repo.entries[clone.ID] = &clone
	}

	summary, err := svc.HoursSummary(context.Background(), deckSession)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, summary.BridgeHours, 0.001)
	assert.InDelta(t, 4.0, summary.EngineHours, 0.001)
}

func strPtr(s string) *string { return &s }
