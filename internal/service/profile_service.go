// Package service implements the use-case layer the mobile shell calls
// into: validation, state-machine guards and derived-value computation
// around the repositories.
package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cadet-trb/internal/dates"
	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

type profileRepository interface {
	FindByID(ctx context.Context, id string) (*models.CadetProfile, error)
	Upsert(ctx context.Context, profile *models.CadetProfile) error
}

// SaveProfileRequest holds the editable profile fields.
type SaveProfileRequest struct {
	FullName         string  `json:"full_name" validate:"required"`
	DateOfBirth      *string `json:"date_of_birth,omitempty"`
	Stream           string  `json:"stream" validate:"required"`
	DischargeBookNo  *string `json:"discharge_book_no,omitempty"`
	PassportNo       *string `json:"passport_no,omitempty"`
	AcademyName      *string `json:"academy_name,omitempty"`
	AcademyID        *string `json:"academy_id,omitempty"`
	NextOfKinName    *string `json:"next_of_kin_name,omitempty"`
	NextOfKinContact *string `json:"next_of_kin_contact,omitempty"`
}

// ProfileService handles cadet profile use-cases.
type ProfileService struct {
	repo      profileRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(repo profileRepository, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, validator: validate, logger: logger}
}

// Get returns the session cadet's profile, or nil when none has been
// saved yet.
func (s *ProfileService) Get(ctx context.Context, session models.Session) (*models.CadetProfile, error) {
	profile, err := s.repo.FindByID(ctx, session.CadetID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load profile")
	}
	return profile, nil
}

// Save upserts the session cadet's profile: the first save creates the
// single row, later saves update it in place.
func (s *ProfileService) Save(ctx context.Context, session models.Session, req SaveProfileRequest) (*models.CadetProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, apperrors.ErrValidation.Code, "invalid profile payload")
	}
	stream := models.CadetStream(req.Stream)
	if !stream.Valid() {
		return nil, apperrors.Clone(apperrors.ErrValidation, "stream must be DECK, ENGINE or ETO")
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		if err := dates.ValidateISO(*req.DateOfBirth); err != nil {
			return nil, err
		}
	}

	profile := &models.CadetProfile{
		ID:               session.CadetID,
		FullName:         req.FullName,
		DateOfBirth:      req.DateOfBirth,
		Stream:           stream,
		DischargeBookNo:  req.DischargeBookNo,
		PassportNo:       req.PassportNo,
		AcademyName:      req.AcademyName,
		AcademyID:        req.AcademyID,
		NextOfKinName:    req.NextOfKinName,
		NextOfKinContact: req.NextOfKinContact,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, apperrors.FromError(err)
	}

	s.logger.Info("profile saved", zap.String("cadet_id", session.CadetID))
	return profile, nil
}

// EnsureSkeleton creates the profile row on first app use so later edits
// are plain updates. Calling it again is a no-op.
func (s *ProfileService) EnsureSkeleton(ctx context.Context, session models.Session, fullName string) error {
	existing, err := s.repo.FindByID(ctx, session.CadetID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load profile")
	}
	if existing != nil {
		return nil
	}
	profile := &models.CadetProfile{
		ID:       session.CadetID,
		FullName: fullName,
		Stream:   session.Stream,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return apperrors.FromError(err)
	}
	s.logger.Info("profile skeleton created", zap.String("cadet_id", session.CadetID))
	return nil
}
