package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"tender-marketplace-api/internal/common"
	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/repo/repoerrs"
	"tender-marketplace-api/pkg/postgres"
)

var tenderColumns = []string{
	"id", "name", "description", "service_type", "status",
	"organization_id", "version", "created_at",
}

type TenderRepo struct {
	*postgres.Postgres
	versioned versionedTable
}

func NewTenderRepo(pg *postgres.Postgres) *TenderRepo {
	return &TenderRepo{
		Postgres: pg,
		versioned: versionedTable{
			table:     "tender",
			history:   "tender_history",
			historyFK: "tender_id",
			columns:   []string{"name", "description", "service_type", "status"},
		},
	}
}

func (r *TenderRepo) CreateTender(ctx context.Context, input *entity.CreateTenderInput, organizationID uuid.UUID) (uuid.UUID, error) {
	q, args, err := r.Builder.
		Insert("tender").
		Columns("name", "description", "service_type", "status", "organization_id", "version").
		Values(input.Name, input.Description, input.ServiceType, common.Created, organizationID, 1).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("create tender: %w", err)
	}

	return id, nil
}

func (r *TenderRepo) GetTenderByID(ctx context.Context, id uuid.UUID) (*entity.Tender, error) {
	q, args, err := r.Builder.
		Select(tenderColumns...).
		From("tender").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, err
	}

	var t entity.Tender
	row := r.DB.QueryRowContext(ctx, q, args...)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ServiceType, &t.Status,
		&t.OrganizationID, &t.Version, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repoerrs.ErrNotFound
		}

		return nil, fmt.Errorf("get tender: %w", err)
	}

	return &t, nil
}

func (r *TenderRepo) GetPublishedTenders(ctx context.Context, serviceTypes []string, pg entity.Pagination) ([]entity.Tender, error) {
	builder := r.Builder.
		Select(tenderColumns...).
		From("tender").
		Where(squirrel.Eq{"status": common.Published})

	if len(serviceTypes) > 0 {
		builder = builder.Where(squirrel.Eq{"service_type": serviceTypes})
	}

	q, args, err := builder.
		OrderBy("name ASC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryTenders(ctx, q, args)
}

// GetUserTenders returns tenders owned by any organization the user is
// responsible for.
func (r *TenderRepo) GetUserTenders(ctx context.Context, userID uuid.UUID, pg entity.Pagination) ([]entity.Tender, error) {
	cols := make([]string, len(tenderColumns))
	for i, c := range tenderColumns {
		cols[i] = "tender." + c
	}

	q, args, err := r.Builder.
		Select(cols...).
		From("tender").
		InnerJoin("organization_responsible ON organization_responsible.organization_id = tender.organization_id").
		Where("organization_responsible.user_id = ?", userID).
		OrderBy("tender.name ASC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryTenders(ctx, q, args)
}

func (r *TenderRepo) UpdateTender(ctx context.Context, t *entity.Tender, name, description, serviceType string) error {
	return r.versioned.mutate(ctx, r.DB, r.Builder, t.ID, t.Version, map[string]interface{}{
		"name":         name,
		"description":  description,
		"service_type": serviceType,
	})
}

func (r *TenderRepo) UpdateTenderStatus(ctx context.Context, t *entity.Tender, newStatus string) error {
	return r.versioned.mutate(ctx, r.DB, r.Builder, t.ID, t.Version, map[string]interface{}{
		"status": newStatus,
	})
}

func (r *TenderRepo) RollbackTender(ctx context.Context, t *entity.Tender, version int) error {
	return r.versioned.restore(ctx, r.DB, r.Builder, t.ID, t.Version, version)
}

func (r *TenderRepo) queryTenders(ctx context.Context, q string, args []interface{}) ([]entity.Tender, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query tenders: %w", err)
	}
	defer rows.Close()

	tenders := make([]entity.Tender, 0)
	for rows.Next() {
		var t entity.Tender
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ServiceType, &t.Status,
			&t.OrganizationID, &t.Version, &t.CreatedAt); err != nil {
			return nil, err
		}
		tenders = append(tenders, t)
	}

	return tenders, rows.Err()
}
