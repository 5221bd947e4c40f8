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

// ProfileRepository manages persistence for the cadet profile.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByID fetches a profile by id, returning nil when none exists.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*models.CadetProfile, error) {
	const query = `SELECT id, full_name, date_of_birth, stream, discharge_book_no, passport_no,
        academy_name, academy_id, next_of_kin_name, next_of_kin_contact, created_at, updated_at
        FROM cadet_profile WHERE id = ?`
	var profile models.CadetProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

// Upsert inserts the profile when no row exists for its id and updates it
// otherwise, preserving created_at on update.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.CadetProfile) error {
	if strings.TrimSpace(profile.FullName) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "profile full name is required")
	}
	if !profile.Stream.Valid() {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown cadet stream %q", profile.Stream))
	}

	existing, err := r.FindByID(ctx, profile.ID)
	if err != nil {
		return err
	}

	now := nowISO()
	profile.UpdatedAt = now

	if existing == nil {
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		profile.CreatedAt = now
		const query = `INSERT INTO cadet_profile (id, full_name, date_of_birth, stream, discharge_book_no,
            passport_no, academy_name, academy_id, next_of_kin_name, next_of_kin_contact, created_at, updated_at)
            VALUES (:id, :full_name, :date_of_birth, :stream, :discharge_book_no, :passport_no,
            :academy_name, :academy_id, :next_of_kin_name, :next_of_kin_contact, :created_at, :updated_at)`
		if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
			return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "create profile")
		}
		return nil
	}

	profile.CreatedAt = existing.CreatedAt
	const query = `UPDATE cadet_profile SET full_name = :full_name, date_of_birth = :date_of_birth,
        stream = :stream, discharge_book_no = :discharge_book_no, passport_no = :passport_no,
        academy_name = :academy_name, academy_id = :academy_id, next_of_kin_name = :next_of_kin_name,
        next_of_kin_contact = :next_of_kin_contact, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "update profile")
	}
	return nil
}
