package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tender-marketplace-api/internal/repo/repoerrs"
	"tender-marketplace-api/pkg/postgres"
)

type EmployeeRepo struct {
	*postgres.Postgres
}

func NewEmployeeRepo(pg *postgres.Postgres) *EmployeeRepo {
	return &EmployeeRepo{pg}
}

func (r *EmployeeRepo) GetEmployeeIDByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	q, args, err := r.Builder.
		Select("id").
		From("employee").
		Where("username = ?", username).
		ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repoerrs.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("employee by username: %w", err)
	}

	return id, nil
}

func (r *EmployeeRepo) OrganizationExists(ctx context.Context, id uuid.UUID) (bool, error) {
	q, args, err := r.Builder.
		Select("1").
		From("organization").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("organization exists: %w", err)
	}

	return true, nil
}

// IsResponsible reports whether a responsibility link exists for the exact
// (user, organization) pair. Flat ACL, no hierarchy.
func (r *EmployeeRepo) IsResponsible(ctx context.Context, userID, organizationID uuid.UUID) (bool, error) {
	q, args, err := r.Builder.
		Select("1").
		From("organization_responsible").
		Where("user_id = ?", userID).
		Where("organization_id = ?", organizationID).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("is responsible: %w", err)
	}

	return true, nil
}

func (r *EmployeeRepo) IsResponsibleForAny(ctx context.Context, userID uuid.UUID) (bool, error) {
	q, args, err := r.Builder.
		Select("1").
		From("organization_responsible").
		Where("user_id = ?", userID).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("is responsible for any: %w", err)
	}

	return true, nil
}

func (r *EmployeeRepo) ResponsibleOrganizationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	q, args, err := r.Builder.
		Select("organization_id").
		From("organization_responsible").
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("responsible organizations: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *EmployeeRepo) CountResponsibles(ctx context.Context, organizationID uuid.UUID) (int, error) {
	q, args, err := r.Builder.
		Select("count(*)").
		From("organization_responsible").
		Where("organization_id = ?", organizationID).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count responsibles: %w", err)
	}

	return n, nil
}
