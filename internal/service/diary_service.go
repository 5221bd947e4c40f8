package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cadet-trb/internal/dates"
	"github.com/noah-isme/cadet-trb/internal/models"
	"github.com/noah-isme/cadet-trb/internal/watchlog"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

type diaryRepository interface {
	FindByID(ctx context.Context, id string) (*models.DiaryEntry, error)
	ListForCadet(ctx context.Context, cadetID string) ([]models.DiaryEntry, error)
	Insert(ctx context.Context, entry *models.DiaryEntry) error
	UpdateWithAudit(ctx context.Context, entry, prior *models.DiaryEntry) error
	ListAuditsForEntry(ctx context.Context, diaryEntryID string) ([]models.DiaryEntryAudit, error)
}

// DiaryEntryRequest carries the form fields of a diary or watch entry.
// Position bodies are the raw DDMM.m / DDDMM.m digits the cadet typed;
// the service validates them and persists the canonical rendering.
type DiaryEntryRequest struct {
	EntryType          string   `json:"entry_type" validate:"required"`
	Date               string   `json:"date" validate:"required"`
	DeploymentID       *string  `json:"deployment_id,omitempty"`
	TimeStart          string   `json:"time_start,omitempty"`
	TimeEnd            string   `json:"time_end,omitempty"`
	Summary            string   `json:"summary,omitempty"`
	LatBody            string   `json:"lat_body,omitempty"`
	LatHemisphere      string   `json:"lat_hemisphere,omitempty"`
	LonBody            string   `json:"lon_body,omitempty"`
	LonHemisphere      string   `json:"lon_hemisphere,omitempty"`
	CourseOverGround   *float64 `json:"course_over_ground_deg,omitempty"`
	SpeedOverGround    *float64 `json:"speed_over_ground_knots,omitempty"`
	WeatherSummary     *string  `json:"weather_summary,omitempty"`
	Role               *string  `json:"role,omitempty"`
	SteeringMinutes    *int     `json:"steering_minutes,omitempty"`
	MachineryMonitored *string  `json:"machinery_monitored,omitempty"`
	Remarks            *string  `json:"remarks,omitempty"`
}

// DiaryService handles diary and watchkeeping use-cases.
type DiaryService struct {
	repo      diaryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDiaryService constructs the diary service.
func NewDiaryService(repo diaryRepository, validate *validator.Validate, logger *zap.Logger) *DiaryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiaryService{repo: repo, validator: validate, logger: logger}
}

// List returns the cadet's diary entries, newest first.
func (s *DiaryService) List(ctx context.Context, session models.Session) ([]models.DiaryEntry, error) {
	entries, err := s.repo.ListForCadet(ctx, session.CadetID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list diary entries")
	}
	return entries, nil
}

// Create validates and stores a new diary entry for the session cadet.
func (s *DiaryService) Create(ctx context.Context, session models.Session, req DiaryEntryRequest) (*models.DiaryEntry, error) {
	entry, err := s.buildEntry(session, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, apperrors.FromError(err)
	}
	s.logger.Info("diary entry created",
		zap.String("entry_id", entry.ID),
		zap.String("entry_type", string(entry.EntryType)),
		zap.String("date", entry.Date))
	return entry, nil
}

// Update rewrites an existing entry, snapshotting the prior state into the
// audit table in the same transaction.
func (s *DiaryService) Update(ctx context.Context, session models.Session, id string, req DiaryEntryRequest) (*models.DiaryEntry, error) {
	prior, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load diary entry")
	}
	if prior == nil || prior.CadetID != session.CadetID {
		return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("diary entry %s not found", id))
	}

	entry, err := s.buildEntry(session, req)
	if err != nil {
		return nil, err
	}
	entry.ID = prior.ID
	entry.CreatedAt = prior.CreatedAt

	if err := s.repo.UpdateWithAudit(ctx, entry, prior); err != nil {
		return nil, apperrors.FromError(err)
	}
	s.logger.Info("diary entry updated", zap.String("entry_id", entry.ID))
	return entry, nil
}

// History returns the audit snapshots of one entry.
func (s *DiaryService) History(ctx context.Context, session models.Session, id string) ([]models.DiaryEntryAudit, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to load diary entry")
	}
	if entry == nil || entry.CadetID != session.CadetID {
		return nil, apperrors.Clone(apperrors.ErrNotFound, fmt.Sprintf("diary entry %s not found", id))
	}
	audits, err := s.repo.ListAuditsForEntry(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, apperrors.ErrStorage.Code, "failed to list diary audits")
	}
	return audits, nil
}

// EntryHours returns the counted hours of one entry; 0 for daily notes.
func (s *DiaryService) EntryHours(entry *models.DiaryEntry) float64 {
	if entry.TimeStart == nil || entry.TimeEnd == nil {
		return 0
	}
	return watchlog.EstimateHours(*entry.TimeStart, *entry.TimeEnd)
}

// HoursSummary totals the counted bridge and engine watch hours of the
// session cadet.
func (s *DiaryService) HoursSummary(ctx context.Context, session models.Session) (models.WatchHoursSummary, error) {
	entries, err := s.List(ctx, session)
	if err != nil {
		return models.WatchHoursSummary{}, err
	}
	var summary models.WatchHoursSummary
	for i := range entries {
		hours := s.EntryHours(&entries[i])
		switch entries[i].EntryType {
		case models.EntryBridgeWatch:
			summary.BridgeHours += hours
		case models.EntryEngineWatch:
			summary.EngineHours += hours
		}
	}
	return summary, nil
}

// buildEntry validates the request and assembles the entry to persist.
func (s *DiaryService) buildEntry(session models.Session, req DiaryEntryRequest) (*models.DiaryEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, apperrors.ErrValidation.Code, "invalid diary payload")
	}
	entryType := models.DiaryEntryType(req.EntryType)
	if !entryType.Valid() {
		return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown diary entry type %q", req.EntryType))
	}
	if err := dates.ValidateISO(req.Date); err != nil {
		return nil, err
	}

	entry := &models.DiaryEntry{
		CadetID:      session.CadetID,
		DeploymentID: req.DeploymentID,
		Date:         req.Date,
		EntryType:    entryType,
		Remarks:      req.Remarks,
	}

	switch entryType {
	case models.EntryDaily:
		if req.Summary == "" {
			return nil, apperrors.Clone(apperrors.ErrValidation, "daily entries require a summary")
		}
		if req.TimeStart != "" || req.TimeEnd != "" {
			return nil, apperrors.Clone(apperrors.ErrValidation, "daily entries do not carry watch times")
		}
		entry.Summary = &req.Summary

	case models.EntryBridgeWatch, models.EntryEngineWatch:
		if req.TimeStart == "" || req.TimeEnd == "" {
			return nil, apperrors.Clone(apperrors.ErrValidation, "watch entries require start and end times")
		}
		entry.TimeStart = &req.TimeStart
		entry.TimeEnd = &req.TimeEnd
		if req.Summary != "" {
			entry.Summary = &req.Summary
		}
	}

	if entryType == models.EntryBridgeWatch {
		if req.LatBody != "" {
			lat, err := watchlog.EncodeLatitude(req.LatBody, req.LatHemisphere)
			if err != nil {
				return nil, err
			}
			entry.PositionLat = &lat
		}
		if req.LonBody != "" {
			lon, err := watchlog.EncodeLongitude(req.LonBody, req.LonHemisphere)
			if err != nil {
				return nil, err
			}
			entry.PositionLon = &lon
		}
		entry.CourseOverGroundDeg = req.CourseOverGround
		entry.SpeedOverGroundKn = req.SpeedOverGround
		entry.WeatherSummary = req.WeatherSummary
		entry.Role = req.Role
		entry.SteeringMinutes = req.SteeringMinutes
	}

	if entryType == models.EntryEngineWatch {
		entry.MachineryMonitored = req.MachineryMonitored
	}

	return entry, nil
}
