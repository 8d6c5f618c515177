package dashboard

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns combined dashboard data using goroutines
	GetDashboard(ctx context.Context, actor auth.AuthContext, req DashboardRequest) (*DashboardResponse, error)
}
