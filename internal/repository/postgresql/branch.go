package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (name, address, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, b.Name, b.Address, b.Latitude, b.Longitude, b.RadiusMeters).Scan(
		&b.ID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_branches_name") {
			return branch.Branch{}, branch.ErrBranchNameExists
		}
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return b, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var result branch.Branch
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.Address,
		&result.Latitude,
		&result.Longitude,
		&result.RadiusMeters,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return result, nil
}

// List implements branch.BranchRepository.
func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM branches
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	branches := make([]branch.Branch, 0)
	for rows.Next() {
		var b branch.Branch
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Address, &b.Latitude, &b.Longitude, &b.RadiusMeters, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return branches, nil
}

// Update implements branch.BranchRepository.
func (r *branchRepositoryImpl) Update(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches
		SET name = $1, address = $2, latitude = $3, longitude = $4, radius_meters = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, b.Name, b.Address, b.Latitude, b.Longitude, b.RadiusMeters, b.ID).Scan(&b.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return branch.Branch{}, branch.ErrBranchNotFound
		case isUniqueViolation(err, "uq_branches_name"):
			return branch.Branch{}, branch.ErrBranchNameExists
		}
		return branch.Branch{}, fmt.Errorf("failed to update branch: %w", err)
	}

	return b, nil
}

// Delete implements branch.BranchRepository.
func (r *branchRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err, "") {
			return branch.ErrBranchInUse
		}
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}
