package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

type taskRepository interface {
	ListTemplates(ctx context.Context, stream models.CadetStream) ([]models.TrainingTaskTemplate, error)
	FindTemplate(ctx context.Context, id string) (*models.TrainingTaskTemplate, error)
	FindProgress(ctx context.Context, cadetID, templateID string) (models.ProgressLookup, error)
	ListProgressForCadet(ctx context.Context, cadetID string) ([]models.TrainingTaskProgress, error)
	InsertProgress(ctx context.Context, progress *models.TrainingTaskProgress) error
	UpdateProgress(ctx context.Context, progress *models.TrainingTaskProgress) error
	InsertEvidence(ctx context.Context, evidence *models.TaskEvidence) error
	ListEvidenceForProgress(ctx context.Context, taskProgressID string) ([]models.TaskEvidence, error)
}

// AttachEvidenceRequest records one attachment against a task.
type AttachEvidenceRequest struct {
	LocalURI      string  `json:"local_uri" validate:"required"`
	MimeType      *string `json:"mime_type,omitempty"`
	FileSizeBytes *int64  `json:"file_size_bytes,omitempty"`
}

// TaskService handles training-task use-cases on the cadet's side of the
// approval chain.
type TaskService struct {
	repo      taskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs the task service.
func NewTaskService(repo taskRepository, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, validator: validate, logger: logger}
}

// ListTasks returns every template of the cadet's stream paired with the
// effective progress status. Templates without a progress row show as
// PENDING.
func (s *TaskService) ListTasks(ctx context.Context, session models.Session) ([]models.TaskWithProgress, error) {
	templates, err := s.repo.ListTemplates(ctx, session.Stream)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list templates")
	}
	progress, err := s.repo.ListProgressForCadet(ctx, session.CadetID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list progress")
	}

	byTemplate := make(map[string]*models.TrainingTaskProgress, len(progress))
	for i := range progress {
		byTemplate[progress[i].TemplateID] = &progress[i]
	}

	tasks := make([]models.TaskWithProgress, 0, len(templates))
	for _, template := range templates {
		task := models.TaskWithProgress{Template: template, Status: models.TaskPending}
		if p, ok := byTemplate[template.ID]; ok {
			task.Status = p.Status
			task.Progress = p
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ToggleSubmission flips a task between PENDING and SUBMITTED. Tasks that
// an officer has already verified or the Master approved are read-only
// and reject the toggle without touching the row.
func (s *TaskService) ToggleSubmission(ctx context.Context, session models.Session, templateID string) (*models.TrainingTaskProgress, error) {
	progress, err := s.loadOrCreateProgress(ctx, session, templateID)
	if err != nil {
		return nil, err
	}
	if !progress.Status.CadetMutable() {
		return nil, apperrors.Clone(apperrors.ErrState,
			fmt.Sprintf("task is %s and can no longer be changed by the cadet", progress.Status))
	}

	if progress.Status == models.TaskPending {
		progress.Status = models.TaskSubmitted
	} else {
		progress.Status = models.TaskPending
	}
	changedAt := time.Now().UTC().Format(time.RFC3339)
	progress.LastStatusChangeAt = &changedAt

	if err := s.repo.UpdateProgress(ctx, progress); err != nil {
		return nil, apperrors.FromError(err)
	}

	s.logger.Info("task status toggled",
		zap.String("template_id", templateID),
		zap.String("status", string(progress.Status)))
	return progress, nil
}

// SaveReflection writes the cadet's free-text reflection. The row is
// created lazily at PENDING when missing; writing a reflection never
// changes the status. Verified and approved tasks are read-only.
func (s *TaskService) SaveReflection(ctx context.Context, session models.Session, templateID, text string) (*models.TrainingTaskProgress, error) {
	progress, err := s.loadOrCreateProgress(ctx, session, templateID)
	if err != nil {
		return nil, err
	}
	if !progress.Status.CadetMutable() {
		return nil, apperrors.Clone(apperrors.ErrState,
			fmt.Sprintf("task is %s and its reflection can no longer be edited", progress.Status))
	}

	progress.ReflectionText = &text
	if err := s.repo.UpdateProgress(ctx, progress); err != nil {
		return nil, apperrors.FromError(err)
	}
	return progress, nil
}

// AttachEvidence records an attachment against a task, creating the
// progress row lazily when missing.
func (s *TaskService) AttachEvidence(ctx context.Context, session models.Session, templateID string, req AttachEvidenceRequest) (*models.TaskEvidence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, apperrors.ErrValidation.Code, "invalid evidence payload")
	}
	progress, err := s.loadOrCreateProgress(ctx, session, templateID)
	if err != nil {
		return nil, err
	}

	evidence := &models.TaskEvidence{
		TaskProgressID: progress.ID,
		LocalURI:       req.LocalURI,
		MimeType:       req.MimeType,
		FileSizeBytes:  req.FileSizeBytes,
	}
	if err := s.repo.InsertEvidence(ctx, evidence); err != nil {
		return nil, apperrors.FromError(err)
	}
	return evidence, nil
}

// ListEvidence returns the attachments recorded for a task.
func (s *TaskService) ListEvidence(ctx context.Context, session models.Session, templateID string) ([]models.TaskEvidence, error) {
	lookup, err := s.repo.FindProgress(ctx, session.CadetID, templateID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load progress")
	}
	if !lookup.Found {
		return []models.TaskEvidence{}, nil
	}
	evidence, err := s.repo.ListEvidenceForProgress(ctx, lookup.Progress.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list evidence")
	}
	return evidence, nil
}

// loadOrCreateProgress resolves the progress row for a template, creating
// it at PENDING when the cadet has none yet.
func (s *TaskService) loadOrCreateProgress(ctx context.Context, session models.Session, templateID string) (*models.TrainingTaskProgress, error) {
	template, err := s.repo.FindTemplate(ctx, templateID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load template")
	}
	if template == nil {
		return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("task template %s not found", templateID))
	}

	lookup, err := s.repo.FindProgress(ctx, session.CadetID, templateID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load progress")
	}
	if lookup.Found {
		return lookup.Progress, nil
	}

	progress := &models.TrainingTaskProgress{
		CadetID:    session.CadetID,
		TemplateID: templateID,
		Status:     models.TaskPending,
	}
	if err := s.repo.InsertProgress(ctx, progress); err != nil {
		return nil, apperrors.FromError(err)
	}
	return progress, nil
}
