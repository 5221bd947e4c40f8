// Package bootstrap populates the store with the default task catalogue
// and sample data on first run. Every entry point is guarded by a
// count==0 check and safe to call on each app start.
package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

type seederTaskRepository interface {
	CountTemplates(ctx context.Context) (int, error)
	ListTemplates(ctx context.Context, stream models.CadetStream) ([]models.TrainingTaskTemplate, error)
	InsertTemplate(ctx context.Context, template *models.TrainingTaskTemplate) error
	CountProgressForCadet(ctx context.Context, cadetID string) (int, error)
	InsertProgress(ctx context.Context, progress *models.TrainingTaskProgress) error
}

type seederVesselRepository interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, vessel *models.Vessel) error
}

type seederDeploymentRepository interface {
	CountForCadet(ctx context.Context, cadetID string) (int, error)
	Insert(ctx context.Context, deployment *models.SeaServiceDeployment) error
}

// Seeder runs the idempotent first-run population steps.
type Seeder struct {
	tasks       seederTaskRepository
	vessels     seederVesselRepository
	deployments seederDeploymentRepository
	logger      *zap.Logger
}

// NewSeeder constructs a Seeder.
func NewSeeder(tasks seederTaskRepository, vessels seederVesselRepository, deployments seederDeploymentRepository, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{tasks: tasks, vessels: vessels, deployments: deployments, logger: logger}
}

// EnsureDefaultTaskTemplates inserts the fixed TRB task catalogue for
// every stream when the template table is empty.
func (s *Seeder) EnsureDefaultTaskTemplates(ctx context.Context) error {
	count, err := s.tasks.CountTemplates(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to count templates")
	}
	if count > 0 {
		return nil
	}

	for i := range defaultTemplates {
		if err := s.tasks.InsertTemplate(ctx, &defaultTemplates[i]); err != nil {
			return apperrors.FromError(err)
		}
	}
	s.logger.Info("seeded default task templates", zap.Int("count", len(defaultTemplates)))
	return nil
}

// EnsureProgressRows creates one PENDING progress row per template of the
// cadet's stream when the cadet has none yet.
func (s *Seeder) EnsureProgressRows(ctx context.Context, session models.Session) error {
	count, err := s.tasks.CountProgressForCadet(ctx, session.CadetID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to count progress")
	}
	if count > 0 {
		return nil
	}

	templates, err := s.tasks.ListTemplates(ctx, session.Stream)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list templates")
	}
	for _, template := range templates {
		progress := &models.TrainingTaskProgress{
			CadetID:    session.CadetID,
			TemplateID: template.ID,
			Status:     models.TaskPending,
		}
		if err := s.tasks.InsertProgress(ctx, progress); err != nil {
			return apperrors.FromError(err)
		}
	}
	s.logger.Info("seeded progress rows",
		zap.String("cadet_id", session.CadetID),
		zap.Int("count", len(templates)))
	return nil
}

// EnsureSampleVesselAndDeployment stores one demo vessel and an open
// deployment so first-run screens are not empty.
func (s *Seeder) EnsureSampleVesselAndDeployment(ctx context.Context, session models.Session) error {
	count, err := s.vessels.Count(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to count vessels")
	}
	if count > 0 {
		return nil
	}

	vessel := sampleVessel()
	if err := s.vessels.Insert(ctx, vessel); err != nil {
		return apperrors.FromError(err)
	}

	deployed, err := s.deployments.CountForCadet(ctx, session.CadetID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to count deployments")
	}
	if deployed == 0 {
		deployment := sampleDeployment(session.CadetID, vessel.ID)
		if err := s.deployments.Insert(ctx, deployment); err != nil {
			return apperrors.FromError(err)
		}
	}

	s.logger.Info("seeded sample vessel and deployment", zap.String("vessel", vessel.Name))
	return nil
}

// Run executes every seeding step in order.
func (s *Seeder) Run(ctx context.Context, session models.Session) error {
	if err := s.EnsureDefaultTaskTemplates(ctx); err != nil {
		return err
	}
	if err := s.EnsureProgressRows(ctx, session); err != nil {
		return err
	}
	return s.EnsureSampleVesselAndDeployment(ctx, session)
}
