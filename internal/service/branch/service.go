package branch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type branchServiceImpl struct {
	branchRepo branch.BranchRepository
}

func NewBranchService(branchRepo branch.BranchRepository) branch.BranchService {
	return &branchServiceImpl{branchRepo: branchRepo}
}

func wrap(op string, err error) error {
	if errors.Is(err, branch.ErrBranchNotFound) ||
		errors.Is(err, branch.ErrBranchNameExists) ||
		errors.Is(err, branch.ErrBranchInUse) {
		return err
	}
	return fmt.Errorf("failed to %s branch: %w", op, err)
}

func validateID(id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return nil
}

// Create implements branch.BranchService.
func (s *branchServiceImpl) Create(ctx context.Context, actor auth.AuthContext, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return branch.BranchResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.branchRepo.Create(ctx, branch.Branch{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return branch.BranchResponse{}, wrap("create", err)
	}

	slog.InfoContext(ctx, "branch created", "branch_id", created.ID, "actor", actor.UserID)
	return created.ToResponse(), nil
}

// Get implements branch.BranchService.
func (s *branchServiceImpl) Get(ctx context.Context, actor auth.AuthContext, id string) (branch.BranchResponse, error) {
	if err := validateID(id); err != nil {
		return branch.BranchResponse{}, err
	}

	b, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, wrap("get", err)
	}
	return b.ToResponse(), nil
}

// List implements branch.BranchService.
func (s *branchServiceImpl) List(ctx context.Context, actor auth.AuthContext) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, wrap("list", err)
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, b.ToResponse())
	}
	return responses, nil
}

// Update implements branch.BranchService.
func (s *branchServiceImpl) Update(ctx context.Context, actor auth.AuthContext, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return branch.BranchResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	current, err := s.branchRepo.GetByID(ctx, req.ID)
	if err != nil {
		return branch.BranchResponse{}, wrap("get", err)
	}

	updated, err := s.branchRepo.Update(ctx, req.Apply(current))
	if err != nil {
		return branch.BranchResponse{}, wrap("update", err)
	}

	slog.InfoContext(ctx, "branch updated", "branch_id", updated.ID, "actor", actor.UserID)
	return updated.ToResponse(), nil
}

// Delete implements branch.BranchService.
func (s *branchServiceImpl) Delete(ctx context.Context, actor auth.AuthContext, id string) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	if err := s.branchRepo.Delete(ctx, id); err != nil {
		return wrap("delete", err)
	}

	slog.InfoContext(ctx, "branch deleted", "branch_id", id, "actor", actor.UserID)
	return nil
}
