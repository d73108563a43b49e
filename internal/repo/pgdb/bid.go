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

var bidColumns = []string{
	"id", "name", "description", "status", "tender_id",
	"author_type", "author_id", "version", "created_at",
}

type BidRepo struct {
	*postgres.Postgres
	versioned versionedTable
}

func NewBidRepo(pg *postgres.Postgres) *BidRepo {
	return &BidRepo{
		Postgres: pg,
		versioned: versionedTable{
			table:     "bid",
			history:   "bid_history",
			historyFK: "bid_id",
			columns:   []string{"name", "description", "status"},
		},
	}
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput, tenderID, authorID uuid.UUID) (uuid.UUID, error) {
	q, args, err := r.Builder.
		Insert("bid").
		Columns("name", "description", "status", "tender_id", "author_type", "author_id", "version").
		Values(input.Name, input.Description, common.Created, tenderID, input.AuthorType, authorID, 1).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("create bid: %w", err)
	}

	return id, nil
}

func (r *BidRepo) GetBidByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	q, args, err := r.Builder.
		Select(bidColumns...).
		From("bid").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, err
	}

	var b entity.Bid
	row := r.DB.QueryRowContext(ctx, q, args...)
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Status, &b.TenderID,
		&b.AuthorType, &b.AuthorID, &b.Version, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repoerrs.ErrNotFound
		}

		return nil, fmt.Errorf("get bid: %w", err)
	}

	return &b, nil
}

// GetUserBids returns bids authored directly by the user plus bids authored
// by any organization the user is responsible for.
func (r *BidRepo) GetUserBids(ctx context.Context, userID uuid.UUID, organizationIDs []uuid.UUID, pg entity.Pagination) ([]entity.Bid, error) {
	q, args, err := r.Builder.
		Select(bidColumns...).
		From("bid").
		Where(squirrel.Or{
			squirrel.Eq{"author_id": userID},
			squirrel.And{
				squirrel.Eq{"author_type": common.AuthorOrganization},
				squirrel.Eq{"author_id": organizationIDs},
			},
		}).
		OrderBy("name ASC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryBids(ctx, q, args)
}

// GetTenderBids lists a tender's bids. Responsibles of the owning
// organization see everything; everyone else sees published bids and their
// own.
func (r *BidRepo) GetTenderBids(ctx context.Context, tenderID, userID uuid.UUID, viewAll bool, pg entity.Pagination) ([]entity.Bid, error) {
	builder := r.Builder.
		Select(bidColumns...).
		From("bid").
		Where("tender_id = ?", tenderID)

	if !viewAll {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"status": common.Published},
			squirrel.Eq{"author_id": userID},
		})
	}

	q, args, err := builder.
		OrderBy("name ASC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryBids(ctx, q, args)
}

func (r *BidRepo) UpdateBid(ctx context.Context, b *entity.Bid, name, description string) error {
	return r.versioned.mutate(ctx, r.DB, r.Builder, b.ID, b.Version, map[string]interface{}{
		"name":        name,
		"description": description,
	})
}

func (r *BidRepo) UpdateBidStatus(ctx context.Context, b *entity.Bid, newStatus string) error {
	return r.versioned.mutate(ctx, r.DB, r.Builder, b.ID, b.Version, map[string]interface{}{
		"status": newStatus,
	})
}

func (r *BidRepo) RollbackBid(ctx context.Context, b *entity.Bid, version int) error {
	return r.versioned.restore(ctx, r.DB, r.Builder, b.ID, b.Version, version)
}

// SubmitDecision records a reviewer's vote and evaluates the aggregate in the
// same transaction. Any rejection on record cancels the bid outright; once
// approvals reach quorum (min(3, responsibles of the owning organization))
// the tender closes. Votes are append-only and never de-duplicated, and the
// decision-driven status flips bypass the version/history machinery.
func (r *BidRepo) SubmitDecision(ctx context.Context, b *entity.Bid, userID uuid.UUID, decision string, organizationID uuid.UUID) (entity.DecisionOutcome, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return entity.DecisionPending, err
	}
	defer tx.Rollback() //nolint:errcheck

	insertQ, args, err := r.Builder.
		Insert("bid_decision").
		Columns("bid_id", "user_id", "decision").
		Values(b.ID, userID, decision).
		ToSql()
	if err != nil {
		return entity.DecisionPending, err
	}
	if _, err := tx.ExecContext(ctx, insertQ, args...); err != nil {
		return entity.DecisionPending, fmt.Errorf("insert decision: %w", err)
	}

	rejected, err := r.countDecisions(ctx, tx, b.ID, common.RejectedDecision)
	if err != nil {
		return entity.DecisionPending, err
	}

	var approved, responsibles int
	if rejected == 0 {
		countQ, args, err := r.Builder.
			Select("count(*)").
			From("organization_responsible").
			Where("organization_id = ?", organizationID).
			ToSql()
		if err != nil {
			return entity.DecisionPending, err
		}
		if err := tx.QueryRowContext(ctx, countQ, args...).Scan(&responsibles); err != nil {
			return entity.DecisionPending, fmt.Errorf("count responsibles: %w", err)
		}

		approved, err = r.countDecisions(ctx, tx, b.ID, common.ApprovedDecision)
		if err != nil {
			return entity.DecisionPending, err
		}
	}

	switch evaluateDecisions(rejected, approved, responsibles) {
	case entity.BidCanceled:
		cancelQ, args, err := r.Builder.
			Update("bid").
			Set("status", common.Canceled).
			Set("updated_at", squirrel.Expr("now()")).
			Where("id = ?", b.ID).
			ToSql()
		if err != nil {
			return entity.DecisionPending, err
		}
		if _, err := tx.ExecContext(ctx, cancelQ, args...); err != nil {
			return entity.DecisionPending, fmt.Errorf("cancel bid: %w", err)
		}

		return entity.BidCanceled, tx.Commit()
	case entity.TenderClosed:
		closeQ, args, err := r.Builder.
			Update("tender").
			Set("status", common.Closed).
			Set("updated_at", squirrel.Expr("now()")).
			Where("id = ?", b.TenderID).
			ToSql()
		if err != nil {
			return entity.DecisionPending, err
		}
		if _, err := tx.ExecContext(ctx, closeQ, args...); err != nil {
			return entity.DecisionPending, fmt.Errorf("close tender: %w", err)
		}

		return entity.TenderClosed, tx.Commit()
	}

	return entity.DecisionPending, tx.Commit()
}

// evaluateDecisions reduces vote counts to an outcome. A single rejection
// cancels the bid regardless of approvals; otherwise approvals meeting the
// quorum close the tender.
func evaluateDecisions(rejected, approved, responsibles int) entity.DecisionOutcome {
	if rejected > 0 {
		return entity.BidCanceled
	}
	if approved >= min(common.MaxQuorum, responsibles) {
		return entity.TenderClosed
	}

	return entity.DecisionPending
}

func (r *BidRepo) countDecisions(ctx context.Context, tx *sql.Tx, bidID uuid.UUID, decision string) (int, error) {
	q, args, err := r.Builder.
		Select("count(*)").
		From("bid_decision").
		Where("bid_id = ?", bidID).
		Where("decision = ?", decision).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count decisions: %w", err)
	}

	return n, nil
}

func (r *BidRepo) SubmitFeedback(ctx context.Context, bidID, userID uuid.UUID, feedback string) error {
	q, args, err := r.Builder.
		Insert("bid_feedback").
		Columns("bid_id", "user_id", "feedback").
		Values(bidID, userID, feedback).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}

	return nil
}

// GetFeedbackForAuthor collects feedback across all bids the author ever
// submitted, regardless of tender.
func (r *BidRepo) GetFeedbackForAuthor(ctx context.Context, authorID uuid.UUID, pg entity.Pagination) ([]entity.BidFeedback, error) {
	q, args, err := r.Builder.
		Select("bid_feedback.id", "bid_feedback.bid_id", "bid_feedback.user_id",
			"bid_feedback.feedback", "bid_feedback.created_at").
		From("bid_feedback").
		InnerJoin("bid ON bid.id = bid_feedback.bid_id").
		Where("bid.author_id = ?", authorID).
		OrderBy("bid_feedback.created_at ASC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("feedback for author: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]entity.BidFeedback, 0)
	for rows.Next() {
		var f entity.BidFeedback
		if err := rows.Scan(&f.ID, &f.BidID, &f.UserID, &f.Feedback, &f.CreatedAt); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, f)
	}

	return feedbacks, rows.Err()
}

func (r *BidRepo) AuthorHasBids(ctx context.Context, authorID uuid.UUID) (bool, error) {
	q, args, err := r.Builder.
		Select("1").
		From("bid").
		Where("author_id = ?", authorID).
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

		return false, fmt.Errorf("author has bids: %w", err)
	}

	return true, nil
}

func (r *BidRepo) queryBids(ctx context.Context, q string, args []interface{}) ([]entity.Bid, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var b entity.Bid
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Status, &b.TenderID,
			&b.AuthorType, &b.AuthorID, &b.Version, &b.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}

	return bids, rows.Err()
}
