package report

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
)

// XLSXContentType is the media type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportService interface {
	// ExportCycle renders a cycle's payroll details as an xlsx workbook.
	ExportCycle(ctx context.Context, actor auth.AuthContext, cycleID string) ([]byte, error)
}
