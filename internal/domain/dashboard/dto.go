package dashboard

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DashboardRequest struct {
	From string `json:"from"` // YYYY-MM-DD, defaults to first day of current month
	To   string `json:"to"`   // YYYY-MM-DD, defaults to today
}

func (r *DashboardRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if r.From != "" && !okFrom {
		errs.Add("from", "from must be in YYYY-MM-DD format")
	}
	to, okTo := validator.IsValidDate(r.To)
	if r.To != "" && !okTo {
		errs.Add("to", "to must be in YYYY-MM-DD format")
	}
	if okFrom && okTo && to.Before(from) {
		errs.Add("to", "to must not be before from")
	}

	return errs.Err()
}

// SessionTotals aggregates completed sessions in a range
type SessionTotals struct {
	Sessions   int64
	TotalHours decimal.Decimal
}

type BranchHours struct {
	BranchID   string          `json:"branch_id"`
	BranchName string          `json:"branch_name"`
	Sessions   int64           `json:"sessions"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

type DashboardResponse struct {
	From              string          `json:"from"`
	To                string          `json:"to"`
	ActiveEmployees   int64           `json:"active_employees"`
	CheckedInNow      int64           `json:"checked_in_now"`
	CompletedSessions int64           `json:"completed_sessions"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	HoursByBranch     []BranchHours   `json:"hours_by_branch"`
}
