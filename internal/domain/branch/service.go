package branch

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
)

// BranchService reads are open to any authenticated caller; writes require admin.
type BranchService interface {
	Create(ctx context.Context, actor auth.AuthContext, req CreateBranchRequest) (BranchResponse, error)
	Get(ctx context.Context, actor auth.AuthContext, id string) (BranchResponse, error)
	List(ctx context.Context, actor auth.AuthContext) ([]BranchResponse, error)
	Update(ctx context.Context, actor auth.AuthContext, req UpdateBranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, actor auth.AuthContext, id string) error
}
