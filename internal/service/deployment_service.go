package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cadet-trb/internal/dates"
	"github.com/noah-isme/cadet-trb/internal/models"
	"github.com/noah-isme/cadet-trb/internal/seaservice"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

type deploymentRepository interface {
	FindByID(ctx context.Context, id string) (*models.SeaServiceDeployment, error)
	ListForCadet(ctx context.Context, cadetID string) ([]models.DeploymentDetail, error)
	Insert(ctx context.Context, deployment *models.SeaServiceDeployment) error
	Update(ctx context.Context, deployment *models.SeaServiceDeployment) error
}

type deploymentVesselRepository interface {
	FindByID(ctx context.Context, id string) (*models.Vessel, error)
	List(ctx context.Context) ([]models.Vessel, error)
}

// SignOnRequest opens a new sea-service contract.
type SignOnRequest struct {
	VesselID          string  `json:"vessel_id" validate:"required"`
	Role              string  `json:"role" validate:"required"`
	SignOnDate        string  `json:"sign_on_date" validate:"required"`
	SignOnPort        *string `json:"sign_on_port,omitempty"`
	VoyageSummary     *string `json:"voyage_summary,omitempty"`
	MasterName        *string `json:"master_name,omitempty"`
	ChiefEngineerName *string `json:"chief_engineer_name,omitempty"`
	DSTOName          *string `json:"dsto_name,omitempty"`
}

// SignOffRequest closes an open contract and freezes its day counts.
// PortDays lets the caller record the alongside portion explicitly; when
// absent the whole span counts as sea days.
type SignOffRequest struct {
	SignOffDate string  `json:"sign_off_date" validate:"required"`
	SignOffPort *string `json:"sign_off_port,omitempty"`
	PortDays    *int    `json:"port_days,omitempty"`
}

// DeploymentService handles sea-service deployment use-cases.
type DeploymentService struct {
	repo      deploymentRepository
	vessels   deploymentVesselRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDeploymentService constructs the deployment service.
func NewDeploymentService(repo deploymentRepository, vessels deploymentVesselRepository, validate *validator.Validate, logger *zap.Logger) *DeploymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeploymentService{repo: repo, vessels: vessels, validator: validate, logger: logger}
}

// List returns the cadet's deployments with vessel decoration. Day counts
// are computed live for open contracts; frozen counts pass through
// unchanged.
func (s *DeploymentService) List(ctx context.Context, session models.Session) ([]models.DeploymentDetail, error) {
	details, err := s.repo.ListForCadet(ctx, session.CadetID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list deployments")
	}
	for i := range details {
		signOff := ""
		if details[i].SignOffDate != nil {
			signOff = *details[i].SignOffDate
		}
		details[i].TotalDaysOnboard = seaservice.DaysOnboard(details[i].SignOnDate, signOff, details[i].TotalDaysOnboard)
	}
	return details, nil
}

// ListVessels returns the vessels the cadet can sign on to. Vessels are
// reference data managed ashore; the app only reads them.
func (s *DeploymentService) ListVessels(ctx context.Context) ([]models.Vessel, error) {
	vessels, err := s.vessels.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list vessels")
	}
	return vessels, nil
}

// Get returns one deployment by id.
func (s *DeploymentService) Get(ctx context.Context, id string) (*models.SeaServiceDeployment, error) {
	deployment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load deployment")
	}
	if deployment == nil {
		return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("deployment %s not found", id))
	}
	return deployment, nil
}

// SignOn records a new deployment for the session cadet.
func (s *DeploymentService) SignOn(ctx context.Context, session models.Session, req SignOnRequest) (*models.SeaServiceDeployment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, apperrors.ErrValidation.Code, "invalid sign-on payload")
	}
	role := models.SeaServiceRole(req.Role)
	if !role.Valid() {
		return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown sea-service role %q", req.Role))
	}
	if err := dates.ValidateISO(req.SignOnDate); err != nil {
		return nil, err
	}
	vessel, err := s.vessels.FindByID(ctx, req.VesselID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load vessel")
	}
	if vessel == nil {
		return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("vessel %s not found", req.VesselID))
	}

	deployment := &models.SeaServiceDeployment{
		CadetID:           session.CadetID,
		VesselID:          req.VesselID,
		Role:              role,
		SignOnDate:        req.SignOnDate,
		SignOnPort:        req.SignOnPort,
		VoyageSummary:     req.VoyageSummary,
		MasterName:        req.MasterName,
		ChiefEngineerName: req.ChiefEngineerName,
		DSTOName:          req.DSTOName,
	}
	if err := s.repo.Insert(ctx, deployment); err != nil {
		return nil, apperrors.FromError(err)
	}

	s.logger.Info("signed on",
		zap.String("deployment_id", deployment.ID),
		zap.String("vessel", vessel.Name),
		zap.String("sign_on_date", deployment.SignOnDate))
	return deployment, nil
}

// SignOff closes an open deployment, computes the day counts once and
// freezes them. A second sign-off attempt is rejected.
func (s *DeploymentService) SignOff(ctx context.Context, id string, req SignOffRequest) (*models.SeaServiceDeployment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, apperrors.ErrValidation.Code, "invalid sign-off payload")
	}
	if err := dates.ValidateISO(req.SignOffDate); err != nil {
		return nil, err
	}

	deployment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deployment.Open() {
		return nil, apperrors.Clone(apperrors.ErrState, "deployment is already signed off")
	}
	if req.SignOffDate < deployment.SignOnDate {
		return nil, apperrors.Clone(apperrors.ErrValidation, "sign-off date must not be before sign-on date")
	}

	days := seaservice.DaysOnboard(deployment.SignOnDate, req.SignOffDate, deployment.TotalDaysOnboard)
	portDays := 0
	if req.PortDays != nil {
		portDays = *req.PortDays
		if portDays < 0 || portDays > days {
			return nil, apperrors.Clone(apperrors.ErrValidation, "port days must be between 0 and the total days onboard")
		}
	}

	deployment.SignOffDate = &req.SignOffDate
	deployment.SignOffPort = req.SignOffPort
	deployment.TotalDaysOnboard = days
	deployment.TotalPortDays = portDays
	deployment.TotalSeaDays = days - portDays

	if err := s.repo.Update(ctx, deployment); err != nil {
		return nil, apperrors.FromError(err)
	}

	s.logger.Info("signed off",
		zap.String("deployment_id", deployment.ID),
		zap.Int("total_days_onboard", days))
	return deployment, nil
}

// RecordTestimonial stores the Master/CE testimonial text and stamps the
// signing time.
func (s *DeploymentService) RecordTestimonial(ctx context.Context, id, text string) (*models.SeaServiceDeployment, error) {
	if text == "" {
		return nil, apperrors.Clone(apperrors.ErrValidation, "testimonial text is required")
	}
	deployment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	signedAt := time.Now().UTC().Format(time.RFC3339)
	deployment.TestimonialText = &text
	deployment.TestimonialSignedAt = &signedAt

	if err := s.repo.Update(ctx, deployment); err != nil {
		return nil, apperrors.FromError(err)
	}
	return deployment, nil
}
