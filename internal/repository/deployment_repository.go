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

// DeploymentRepository manages persistence for sea-service deployments.
type DeploymentRepository struct {
	db *sqlx.DB
}

// NewDeploymentRepository constructs a DeploymentRepository.
func NewDeploymentRepository(db *sqlx.DB) *DeploymentRepository {
	return &DeploymentRepository{db: db}
}

const deploymentColumns = `id, cadet_id, vessel_id, role, sign_on_date, sign_off_date, sign_on_port,
    sign_off_port, total_days_onboard, total_sea_days, total_port_days, voyage_summary, master_name,
    master_id, chief_engineer_name, chief_engineer_id, dsto_name, dsto_id, testimonial_text,
    testimonial_signed_at, created_at, updated_at`

// FindByID fetches a deployment by id, returning nil when none exists.
func (r *DeploymentRepository) FindByID(ctx context.Context, id string) (*models.SeaServiceDeployment, error) {
	query := fmt.Sprintf("SELECT %s FROM sea_service_deployment WHERE id = ?", deploymentColumns)
	var deployment models.SeaServiceDeployment
	if err := r.db.GetContext(ctx, &deployment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find deployment: %w", err)
	}
	return &deployment, nil
}

// ListForCadet returns the cadet's deployments decorated with vessel
// identity, newest sign-on first. This is the one read-time join in the
// data layer.
func (r *DeploymentRepository) ListForCadet(ctx context.Context, cadetID string) ([]models.DeploymentDetail, error) {
	const query = `SELECT d.id, d.cadet_id, d.vessel_id, d.role, d.sign_on_date, d.sign_off_date,
        d.sign_on_port, d.sign_off_port, d.total_days_onboard, d.total_sea_days, d.total_port_days,
        d.voyage_summary, d.master_name, d.master_id, d.chief_engineer_name, d.chief_engineer_id,
        d.dsto_name, d.dsto_id, d.testimonial_text, d.testimonial_signed_at, d.created_at, d.updated_at,
        v.name AS vessel_name, v.vessel_type AS vessel_type_name, v.flag_state AS vessel_flag_state
        FROM sea_service_deployment d
        LEFT JOIN vessel v ON v.id = d.vessel_id
        WHERE d.cadet_id = ?
        ORDER BY d.sign_on_date DESC`
	deployments := []models.DeploymentDetail{}
	if err := r.db.SelectContext(ctx, &deployments, query, cadetID); err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	return deployments, nil
}

// CountForCadet returns the number of deployments recorded for a cadet.
func (r *DeploymentRepository) CountForCadet(ctx context.Context, cadetID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sea_service_deployment WHERE cadet_id = ?", cadetID); err != nil {
		return 0, fmt.Errorf("count deployments: %w", err)
	}
	return count, nil
}

// Insert stores a new deployment created at sign-on.
func (r *DeploymentRepository) Insert(ctx context.Context, deployment *models.SeaServiceDeployment) error {
	if strings.TrimSpace(deployment.CadetID) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "deployment cadet id is required")
	}
	if strings.TrimSpace(deployment.VesselID) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "deployment vessel id is required")
	}
	if strings.TrimSpace(deployment.SignOnDate) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "deployment sign-on date is required")
	}
	if !deployment.Role.Valid() {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown sea-service role %q", deployment.Role))
	}

	if deployment.ID == "" {
		deployment.ID = uuid.NewString()
	}
	now := nowISO()
	deployment.CreatedAt = now
	deployment.UpdatedAt = now

	const query = `INSERT INTO sea_service_deployment (id, cadet_id, vessel_id, role, sign_on_date,
        sign_off_date, sign_on_port, sign_off_port, total_days_onboard, total_sea_days, total_port_days,
        voyage_summary, master_name, master_id, chief_engineer_name, chief_engineer_id, dsto_name,
        dsto_id, testimonial_text, testimonial_signed_at, created_at, updated_at)
        VALUES (:id, :cadet_id, :vessel_id, :role, :sign_on_date, :sign_off_date, :sign_on_port,
        :sign_off_port, :total_days_onboard, :total_sea_days, :total_port_days, :voyage_summary,
        :master_name, :master_id, :chief_engineer_name, :chief_engineer_id, :dsto_name, :dsto_id,
        :testimonial_text, :testimonial_signed_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, deployment); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "create deployment")
	}
	return nil
}

// Update rewrites a deployment row, failing with NotFound when the id is
// unknown.
func (r *DeploymentRepository) Update(ctx context.Context, deployment *models.SeaServiceDeployment) error {
	deployment.UpdatedAt = nowISO()
	const query = `UPDATE sea_service_deployment SET vessel_id = :vessel_id, role = :role,
        sign_on_date = :sign_on_date, sign_off_date = :sign_off_date, sign_on_port = :sign_on_port,
        sign_off_port = :sign_off_port, total_days_onboard = :total_days_onboard,
        total_sea_days = :total_sea_days, total_port_days = :total_port_days,
        voyage_summary = :voyage_summary, master_name = :master_name, master_id = :master_id,
        chief_engineer_name = :chief_engineer_name, chief_engineer_id = :chief_engineer_id,
        dsto_name = :dsto_name, dsto_id = :dsto_id, testimonial_text = :testimonial_text,
        testimonial_signed_at = :testimonial_signed_at, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, deployment)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "update deployment")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update deployment rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("deployment %s not found", deployment.ID))
	}
	return nil
}
