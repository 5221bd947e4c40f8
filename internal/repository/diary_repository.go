package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cadet-trb/internal/models"
	"github.com/noah-isme/cadet-trb/internal/store"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

// DiaryRepository manages diary and watchkeeping entries plus their
// append-only audit snapshots.
type DiaryRepository struct {
	db *sqlx.DB
}

// NewDiaryRepository constructs a DiaryRepository.
func NewDiaryRepository(db *sqlx.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

const diaryColumns = `id, cadet_id, deployment_id, date, entry_type, time_start, time_end, summary,
    position_lat, position_lon, course_over_ground_deg, speed_over_ground_knots, weather_summary,
    role, steering_minutes, machinery_monitored, remarks, created_at, updated_at`

// FindByID fetches an entry by id, returning nil when none exists.
func (r *DiaryRepository) FindByID(ctx context.Context, id string) (*models.DiaryEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM diary_entry WHERE id = ?", diaryColumns)
	var entry models.DiaryEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find diary entry: %w", err)
	}
	return &entry, nil
}

// ListForCadet returns the cadet's entries, newest date first.
func (r *DiaryRepository) ListForCadet(ctx context.Context, cadetID string) ([]models.DiaryEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM diary_entry WHERE cadet_id = ? ORDER BY date DESC, created_at DESC", diaryColumns)
	entries := []models.DiaryEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, cadetID); err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return entries, nil
}

// Insert stores a new diary entry.
func (r *DiaryRepository) Insert(ctx context.Context, entry *models.DiaryEntry) error {
	if strings.TrimSpace(entry.CadetID) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "diary entry cadet id is required")
	}
	if strings.TrimSpace(entry.Date) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "diary entry date is required")
	}
	if !entry.EntryType.Valid() {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown diary entry type %q", entry.EntryType))
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := nowISO()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	const query = `INSERT INTO diary_entry (id, cadet_id, deployment_id, date, entry_type, time_start,
        time_end, summary, position_lat, position_lon, course_over_ground_deg, speed_over_ground_knots,
        weather_summary, role, steering_minutes, machinery_monitored, remarks, created_at, updated_at)
        VALUES (:id, :cadet_id, :deployment_id, :date, :entry_type, :time_start, :time_end, :summary,
        :position_lat, :position_lon, :course_over_ground_deg, :speed_over_ground_knots,
        :weather_summary, :role, :steering_minutes, :machinery_monitored, :remarks, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "create diary entry")
	}
	return nil
}

// UpdateWithAudit snapshots the prior entry state and rewrites the row in
// one transaction, so the audit row and the update are never observed
// independently.
func (r *DiaryRepository) UpdateWithAudit(ctx context.Context, entry, prior *models.DiaryEntry) error {
	snapshot, err := json.Marshal(prior)
	if err != nil {
		return fmt.Errorf("marshal diary snapshot: %w", err)
	}
	audit := &models.DiaryEntryAudit{
		ID:           uuid.NewString(),
		DiaryEntryID: prior.ID,
		CadetID:      prior.CadetID,
		SnapshotJSON: snapshot,
		ChangeType:   models.DiaryChangeUpdate,
		ChangedAt:    nowISO(),
	}
	entry.UpdatedAt = nowISO()

	err = store.WithTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		const auditQuery = `INSERT INTO diary_entry_audit (id, diary_entry_id, cadet_id, snapshot_json, change_type, changed_at)
            VALUES (:id, :diary_entry_id, :cadet_id, :snapshot_json, :change_type, :changed_at)`
		if _, err := tx.NamedExecContext(ctx, auditQuery, audit); err != nil {
			return fmt.Errorf("insert diary audit: %w", err)
		}

		const updateQuery = `UPDATE diary_entry SET deployment_id = :deployment_id, date = :date,
            entry_type = :entry_type, time_start = :time_start, time_end = :time_end, summary = :summary,
            position_lat = :position_lat, position_lon = :position_lon,
            course_over_ground_deg = :course_over_ground_deg,
            speed_over_ground_knots = :speed_over_ground_knots, weather_summary = :weather_summary,
            role = :role, steering_minutes = :steering_minutes,
            machinery_monitored = :machinery_monitored, remarks = :remarks, updated_at = :updated_at
            WHERE id = :id`
		result, err := tx.NamedExecContext(ctx, updateQuery, entry)
		if err != nil {
			return fmt.Errorf("update diary entry: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update diary entry rows affected: %w", err)
		}
		if affected == 0 {
			return apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("diary entry %s not found", entry.ID))
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "update diary entry")
	}
	return nil
}

// ListAuditsForEntry returns the audit snapshots of one entry, newest
// first.
func (r *DiaryRepository) ListAuditsForEntry(ctx context.Context, diaryEntryID string) ([]models.DiaryEntryAudit, error) {
	const query = `SELECT id, diary_entry_id, cadet_id, snapshot_json, change_type, changed_at
        FROM diary_entry_audit WHERE diary_entry_id = ? ORDER BY changed_at DESC`
	audits := []models.DiaryEntryAudit{}
	if err := r.db.SelectContext(ctx, &audits, query, diaryEntryID); err != nil {
		return nil, fmt.Errorf("list diary audits: %w", err)
	}
	return audits, nil
}
