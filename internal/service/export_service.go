package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/cadet-trb/internal/export"
	"github.com/noah-isme/cadet-trb/internal/models"
	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type exportDeploymentLister interface {
	List(ctx context.Context, session models.Session) ([]models.DeploymentDetail, error)
}

type exportTaskLister interface {
	ListTasks(ctx context.Context, session models.Session) ([]models.TaskWithProgress, error)
}

// ExportService renders the sea-service record and task summary into
// printable documents, the digital stand-in for the paper record book.
type ExportService struct {
	deployments exportDeploymentLister
	tasks       exportTaskLister
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(deployments exportDeploymentLister, tasks exportTaskLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		deployments: deployments,
		tasks:       tasks,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// SeaServiceRecord renders the cadet's deployments, one row per contract
// with vessel identity and frozen day counts.
func (s *ExportService) SeaServiceRecord(ctx context.Context, session models.Session, format ExportFormat) ([]byte, error) {
	details, err := s.deployments.List(ctx, session)
	if err != nil {
		return nil, err
	}

	headers := []string{"Vessel", "Flag", "Role", "Sign-on", "Sign-off", "Days onboard", "Sea days", "Port days"}
	rows := make([]map[string]string, 0, len(details))
	for _, d := range details {
		signOff := ""
		if d.SignOffDate != nil {
			signOff = *d.SignOffDate
		}
		flag := ""
		if d.VesselFlagState != nil {
			flag = *d.VesselFlagState
		}
		rows = append(rows, map[string]string{
			"Vessel":       d.VesselName,
			"Flag":         flag,
			"Role":         string(d.Role),
			"Sign-on":      d.SignOnDate,
			"Sign-off":     signOff,
			"Days onboard": strconv.Itoa(d.TotalDaysOnboard),
			"Sea days":     strconv.Itoa(d.TotalSeaDays),
			"Port days":    strconv.Itoa(d.TotalPortDays),
		})
	}

	return s.render(export.Dataset{Headers: headers, Rows: rows}, "Sea Service Record", format)
}

// TaskSummary renders the stream's task templates with the cadet's
// effective status per task.
func (s *ExportService) TaskSummary(ctx context.Context, session models.Session, format ExportFormat) ([]byte, error) {
	tasks, err := s.tasks.ListTasks(ctx, session)
	if err != nil {
		return nil, err
	}

	headers := []string{"Section", "Task", "Mandatory", "Status"}
	rows := make([]map[string]string, 0, len(tasks))
	for _, task := range tasks {
		mandatory := "no"
		if task.Template.IsMandatory {
			mandatory = "yes"
		}
		rows = append(rows, map[string]string{
			"Section":   task.Template.SectionCode,
			"Task":      task.Template.Title,
			"Mandatory": mandatory,
			"Status":    string(task.Status),
		})
	}

	return s.render(export.Dataset{Headers: headers, Rows: rows}, "Training Task Summary", format)
}

func (s *ExportService) render(data export.Dataset, title string, format ExportFormat) ([]byte, error) {
	switch format {
	case FormatCSV:
		out, err := s.csv.Render(data)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindInternal, apperrors.ErrInternal.Code, "failed to render csv")
		}
		return out, nil
	case FormatPDF:
		out, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindInternal, apperrors.ErrInternal.Code, "failed to render pdf")
		}
		return out, nil
	default:
		return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown export format %q", format))
	}
}
