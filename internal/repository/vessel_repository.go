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

// VesselRepository manages persistence for vessel reference data. The
// cadet app only reads vessels; inserts exist for seeding.
type VesselRepository struct {
	db *sqlx.DB
}

// NewVesselRepository constructs a VesselRepository.
func NewVesselRepository(db *sqlx.DB) *VesselRepository {
	return &VesselRepository{db: db}
}

const vesselColumns = `id, name, imo_number, call_sign, flag_state, vessel_type, gross_tonnage,
    length_overall_m, design_draft_m, main_engine_model, main_engine_power_kw, generator_details,
    boiler_type, nav_equipment_summary, created_at, updated_at`

// FindByID fetches a vessel by id, returning nil when none exists.
func (r *VesselRepository) FindByID(ctx context.Context, id string) (*models.Vessel, error) {
	query := fmt.Sprintf("SELECT %s FROM vessel WHERE id = ?", vesselColumns)
	var vessel models.Vessel
	if err := r.db.GetContext(ctx, &vessel, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vessel: %w", err)
	}
	return &vessel, nil
}

// List returns all known vessels ordered by name.
func (r *VesselRepository) List(ctx context.Context) ([]models.Vessel, error) {
	query := fmt.Sprintf("SELECT %s FROM vessel ORDER BY name ASC", vesselColumns)
	vessels := []models.Vessel{}
	if err := r.db.SelectContext(ctx, &vessels, query); err != nil {
		return nil, fmt.Errorf("list vessels: %w", err)
	}
	return vessels, nil
}

// Count returns the number of vessel rows.
func (r *VesselRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM vessel"); err != nil {
		return 0, fmt.Errorf("count vessels: %w", err)
	}
	return count, nil
}

// Insert stores a new vessel record.
func (r *VesselRepository) Insert(ctx context.Context, vessel *models.Vessel) error {
	if strings.TrimSpace(vessel.Name) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "vessel name is required")
	}
	if vessel.VesselType != nil && !vessel.VesselType.Valid() {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown vessel type %q", *vessel.VesselType))
	}

	if vessel.ID == "" {
		vessel.ID = uuid.NewString()
	}
	now := nowISO()
	vessel.CreatedAt = now
	vessel.UpdatedAt = now

	const query = `INSERT INTO vessel (id, name, imo_number, call_sign, flag_state, vessel_type,
        gross_tonnage, length_overall_m, design_draft_m, main_engine_model, main_engine_power_kw,
        generator_details, boiler_type, nav_equipment_summary, created_at, updated_at)
        VALUES (:id, :name, :imo_number, :call_sign, :flag_state, :vessel_type, :gross_tonnage,
        :length_overall_m, :design_draft_m, :main_engine_model, :main_engine_power_kw,
        :generator_details, :boiler_type, :nav_equipment_summary, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, vessel); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "create vessel")
	}
	return nil
}
