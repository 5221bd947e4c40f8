package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

// TaskRepository manages training task templates, cadet progress rows and
// evidence records.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs a TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ---- Templates ----

const templateColumns = `id, section_code, title, description, stream, is_mandatory`

// ListTemplates returns the templates for a stream ordered by section and
// title.
func (r *TaskRepository) ListTemplates(ctx context.Context, stream models.CadetStream) ([]models.TrainingTaskTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM training_task_template WHERE stream = ? ORDER BY section_code ASC, title ASC", templateColumns)
	templates := []models.TrainingTaskTemplate{}
	if err := r.db.SelectContext(ctx, &templates, query, stream); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// FindTemplate fetches one template by id, returning nil when none exists.
func (r *TaskRepository) FindTemplate(ctx context.Context, id string) (*models.TrainingTaskTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM training_task_template WHERE id = ?", templateColumns)
	var template models.TrainingTaskTemplate
	if err := r.db.GetContext(ctx, &template, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	return &template, nil
}

// CountTemplates returns the total number of seeded templates.
func (r *TaskRepository) CountTemplates(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM training_task_template"); err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}

// InsertTemplate stores one task template (used by seeding only; templates
// are immutable reference data afterwards).
func (r *TaskRepository) InsertTemplate(ctx context.Context, template *models.TrainingTaskTemplate) error {
	if strings.TrimSpace(template.Title) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "template title is required")
	}
	if !template.Stream.Valid() {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown cadet stream %q", template.Stream))
	}
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	const query = `INSERT INTO training_task_template (id, section_code, title, description, stream, is_mandatory)
        VALUES (:id, :section_code, :title, :description, :stream, :is_mandatory)`
	if _, err := r.db.NamedExecContext(ctx, query, template); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "create template")
	}
	return nil
}

// ---- Progress ----

const progressColumns = `id, cadet_id, template_id, status, last_status_change_at, reflection_text,
    verified_by_id, verified_by_name, verified_at, approved_by_master_id, approved_by_master_name,
    approved_at, created_at, updated_at`

// FindProgress looks up the progress row for a (cadet, template) pair. The
// result is explicit about absence: a missing row means the task is still
// PENDING.
func (r *TaskRepository) FindProgress(ctx context.Context, cadetID, templateID string) (models.ProgressLookup, error) {
	query := fmt.Sprintf("SELECT %s FROM training_task_progress WHERE cadet_id = ? AND template_id = ?", progressColumns)
	var progress models.TrainingTaskProgress
	if err := r.db.GetContext(ctx, &progress, query, cadetID, templateID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ProgressLookup{}, nil
		}
		return models.ProgressLookup{}, fmt.Errorf("find progress: %w", err)
	}
	return models.ProgressLookup{Found: true, Progress: &progress}, nil
}

// ListProgressForCadet returns all progress rows of a cadet.
func (r *TaskRepository) ListProgressForCadet(ctx context.Context, cadetID string) ([]models.TrainingTaskProgress, error) {
	query := fmt.Sprintf("SELECT %s FROM training_task_progress WHERE cadet_id = ?", progressColumns)
	rows := []models.TrainingTaskProgress{}
	if err := r.db.SelectContext(ctx, &rows, query, cadetID); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return rows, nil
}

// CountProgressForCadet returns the number of progress rows for a cadet.
func (r *TaskRepository) CountProgressForCadet(ctx context.Context, cadetID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM training_task_progress WHERE cadet_id = ?", cadetID); err != nil {
		return 0, fmt.Errorf("count progress: %w", err)
	}
	return count, nil
}

// InsertProgress stores a new progress row.
func (r *TaskRepository) InsertProgress(ctx context.Context, progress *models.TrainingTaskProgress) error {
	if strings.TrimSpace(progress.CadetID) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "progress cadet id is required")
	}
	if strings.TrimSpace(progress.TemplateID) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "progress template id is required")
	}
	if !progress.Status.Valid() {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown task status %q", progress.Status))
	}

	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	now := nowISO()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	const query = `INSERT INTO training_task_progress (id, cadet_id, template_id, status,
        last_status_change_at, reflection_text, verified_by_id, verified_by_name, verified_at,
        approved_by_master_id, approved_by_master_name, approved_at, created_at, updated_at)
        VALUES (:id, :cadet_id, :template_id, :status, :last_status_change_at, :reflection_text,
        :verified_by_id, :verified_by_name, :verified_at, :approved_by_master_id,
        :approved_by_master_name, :approved_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "create progress")
	}
	return nil
}

// UpdateProgress rewrites a progress row, failing with NotFound when the
// id is unknown.
func (r *TaskRepository) UpdateProgress(ctx context.Context, progress *models.TrainingTaskProgress) error {
	progress.UpdatedAt = nowISO()
	const query = `UPDATE training_task_progress SET status = :status,
        last_status_change_at = :last_status_change_at, reflection_text = :reflection_text,
        verified_by_id = :verified_by_id, verified_by_name = :verified_by_name, verified_at = :verified_at,
        approved_by_master_id = :approved_by_master_id, approved_by_master_name = :approved_by_master_name,
        approved_at = :approved_at, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, progress)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "update progress")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("progress %s not found", progress.ID))
	}
	return nil
}

// UpsertProgress inserts the row when the (cadet, template) pair has none
// and updates the existing row otherwise.
func (r *TaskRepository) UpsertProgress(ctx context.Context, progress *models.TrainingTaskProgress) error {
	lookup, err := r.FindProgress(ctx, progress.CadetID, progress.TemplateID)
	if err != nil {
		return err
	}
	if !lookup.Found {
		return r.InsertProgress(ctx, progress)
	}
	progress.ID = lookup.Progress.ID
	progress.CreatedAt = lookup.Progress.CreatedAt
	return r.UpdateProgress(ctx, progress)
}

// ---- Evidence ----

// InsertEvidence stores an evidence metadata record for a progress row.
func (r *TaskRepository) InsertEvidence(ctx context.Context, evidence *models.TaskEvidence) error {
	if strings.TrimSpace(evidence.TaskProgressID) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "evidence progress id is required")
	}
	if strings.TrimSpace(evidence.LocalURI) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "evidence local uri is required")
	}
	if evidence.ID == "" {
		evidence.ID = uuid.NewString()
	}
	evidence.CreatedAt = nowISO()

	const query = `INSERT INTO task_evidence (id, task_progress_id, local_uri, mime_type, file_size_bytes, created_at)
        VALUES (:id, :task_progress_id, :local_uri, :mime_type, :file_size_bytes, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, evidence); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "create evidence")
	}
	return nil
}

// ListEvidenceForProgress returns the evidence records of one progress row,
// oldest first.
func (r *TaskRepository) ListEvidenceForProgress(ctx context.Context, taskProgressID string) ([]models.TaskEvidence, error) {
	const query = `SELECT id, task_progress_id, local_uri, mime_type, file_size_bytes, created_at
        FROM task_evidence WHERE task_progress_id = ? ORDER BY created_at ASC`
	evidence := []models.TaskEvidence{}
	if err := r.db.SelectContext(ctx, &evidence, query, taskProgressID); err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	return evidence, nil
}
