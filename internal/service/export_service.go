package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/internal/models"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
	"github.com/noah-isme/enrollment-api/pkg/export"
)

// ReportFormat selects the rendered export format.
type ReportFormat string

// Supported export formats.
const (
	FormatCSV ReportFormat = "csv"
	FormatPDF ReportFormat = "pdf"
)

type detailSearcher interface {
	SearchAll(ctx context.Context) ([]models.EnrollmentDetail, error)
}

// ExportResult carries a rendered roster document.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the assembled enrollment roster as a CSV or PDF
// download.
type ExportService struct {
	details detailSearcher
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(details detailSearcher, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		details: details,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

var rosterHeaders = []string{"student_id", "name", "course_name", "course_start_at", "course_end_at", "current_status"}

// Render builds the roster dataset and renders it in the requested
// format. Students without enrollments appear as a single row with empty
// course columns.
func (s *ExportService) Render(ctx context.Context, format ReportFormat) (*ExportResult, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+string(format))
	}
	details, err := s.details.SearchAll(ctx)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: rosterHeaders}
	for _, detail := range details {
		if len(detail.Enrollments) == 0 {
			data.Rows = append(data.Rows, map[string]string{
				"student_id": detail.Student.ID,
				"name":       detail.Student.Name,
			})
			continue
		}
		for _, enrollment := range detail.Enrollments {
			data.Rows = append(data.Rows, map[string]string{
				"student_id":      detail.Student.ID,
				"name":            detail.Student.Name,
				"course_name":     enrollment.CourseName,
				"course_start_at": enrollment.CourseStartAt.Format(time.RFC3339),
				"course_end_at":   enrollment.CourseEndAt.Format(time.RFC3339),
				"current_status":  string(currentStatus(enrollment.Statuses)),
			})
		}
	}

	var rendered []byte
	var contentType string
	switch format {
	case FormatCSV:
		rendered, err = s.csv.Render(data)
		contentType = "text/csv"
	case FormatPDF:
		rendered, err = s.pdf.Render(data, "Enrollment Roster")
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("roster exported", zap.String("format", string(format)), zap.Int("rows", len(data.Rows)))
	return &ExportResult{
		Filename:    fmt.Sprintf("enrollment-roster.%s", format),
		ContentType: contentType,
		Data:        rendered,
	}, nil
}

// currentStatus picks the most recently created status row, matching the
// store's latest-row rule.
func currentStatus(statuses []models.EnrollmentStatus) models.StatusValue {
	var current models.StatusValue
	var latest time.Time
	for _, status := range statuses {
		if current == "" || !status.CreatedAt.Before(latest) {
			current = status.Status
			latest = status.CreatedAt
		}
	}
	return current
}
