package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	payrollservice "github.com/cmlabs-hris/timeclock-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	payrollSheet = "Payroll"
	skippedSheet = "Skipped"
)

type CycleGetter interface {
	GetByID(ctx context.Context, id string) (payroll.PayrollCycle, error)
}

type DetailLister interface {
	ListByCycle(ctx context.Context, cycleID string) ([]payroll.PayrollDetail, error)
}

type PayableEmployeeLister interface {
	ListPayable(ctx context.Context) ([]employee.Employee, error)
}

type ReportServiceImpl struct {
	cycles    CycleGetter
	details   DetailLister
	employees PayableEmployeeLister
}

func NewReportService(cycles CycleGetter, details DetailLister, employees PayableEmployeeLister) report.ReportService {
	return &ReportServiceImpl{
		cycles:    cycles,
		details:   details,
		employees: employees,
	}
}

// ExportCycle implements report.ReportService.
func (s *ReportServiceImpl) ExportCycle(ctx context.Context, actor auth.AuthContext, cycleID string) ([]byte, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if !validator.IsValidUUID(cycleID) {
		return nil, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	cycle, err := s.cycles.GetByID(ctx, cycleID)
	if err != nil {
		if errors.Is(err, payroll.ErrCycleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get payroll cycle: %w", err)
	}

	details, err := s.details.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll details: %w", err)
	}

	// Skips are not persisted, so an uncalculated cycle has none to report.
	if cycle.CalculatedAt == nil {
		return buildWorkbook(cycle, details, nil)
	}

	employees, err := s.employees.ListPayable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return buildWorkbook(cycle, details, skippedEmployees(employees, details))
}

// skippedEmployees lists payable employees without any usable rate, leaving
// out anyone who was paid in the cycle.
func skippedEmployees(employees []employee.Employee, details []payroll.PayrollDetail) []payroll.SkippedEmployee {
	paid := make(map[string]struct{}, len(details))
	for _, d := range details {
		paid[d.EmployeeID] = struct{}{}
	}

	skipped := make([]payroll.SkippedEmployee, 0)
	for _, e := range employees {
		if _, ok := paid[e.ID]; ok {
			continue
		}
		if !payrollservice.ResolveRate(e).Eligible {
			skipped = append(skipped, payroll.SkippedEmployee{
				EmployeeID:   e.ID,
				EmployeeName: e.FullName,
				Reason:       payroll.SkipReasonMissingRate,
			})
		}
	}
	return skipped
}

// buildWorkbook writes the Payroll sheet and, when skipped is non-nil, the
// Skipped sheet.
func buildWorkbook(cycle payroll.PayrollCycle, details []payroll.PayrollDetail, skipped []payroll.SkippedEmployee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Cycle", cycle.Name},
		{"Period", cycle.StartDate.Format("2006-01-02") + " - " + cycle.EndDate.Format("2006-01-02")},
		{"Status", string(cycle.Status)},
		{},
		{"Employee ID", "Employee", "Sessions", "Total Hours", "Rate Type", "Rate", "Base Pay", "Net Pay"},
	}

	totalHours, totalBase, totalNet := decimal.Zero, decimal.Zero, decimal.Zero
	for _, d := range details {
		name := ""
		if d.EmployeeName != nil {
			name = *d.EmployeeName
		}
		rows = append(rows, []interface{}{
			d.EmployeeID,
			name,
			d.SessionCount,
			d.TotalHours.InexactFloat64(),
			string(d.RateType),
			d.Rate.InexactFloat64(),
			d.BasePay.InexactFloat64(),
			d.NetPay.InexactFloat64(),
		})
		totalHours = totalHours.Add(d.TotalHours)
		totalBase = totalBase.Add(d.BasePay)
		totalNet = totalNet.Add(d.NetPay)
	}
	rows = append(rows, []interface{}{
		"Total", "", "", totalHours.InexactFloat64(), "", "", totalBase.InexactFloat64(), totalNet.InexactFloat64(),
	})

	if err := writeRows(f, payrollSheet, rows); err != nil {
		return nil, err
	}

	if skipped != nil {
		if _, err := f.NewSheet(skippedSheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		skippedRows := [][]interface{}{{"Employee ID", "Employee", "Reason"}}
		for _, sk := range skipped {
			skippedRows = append(skippedRows, []interface{}{sk.EmployeeID, sk.EmployeeName, string(sk.Reason)})
		}
		if err := writeRows(f, skippedSheet, skippedRows); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(payrollSheet, "A", "B", 38); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
