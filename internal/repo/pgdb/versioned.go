package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"tender-marketplace-api/internal/repo/repoerrs"
)

// versionedTable describes an entity whose mutable fields are mirrored into
// an append-only history table. Every mutation snapshots the pre-change row
// at its current version, then applies the change and advances the version
// counter by one. The advance is conditional on the version the caller
// loaded, so concurrent mutations of the same entity cannot both land.
type versionedTable struct {
	table     string
	history   string
	historyFK string
	columns   []string // mutable columns, present in both tables
}

// mutate snapshots the current row and applies set with version+1, in one
// transaction.
func (v versionedTable) mutate(ctx context.Context, db *sql.DB, b squirrel.StatementBuilderType, id uuid.UUID, fromVersion int, set map[string]interface{}) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := v.snapshot(ctx, tx, id); err != nil {
		return err
	}
	if err := v.advance(ctx, tx, b, id, fromVersion, set); err != nil {
		return err
	}

	return tx.Commit()
}

// restore overwrites the entity's mutable fields with the history row at
// targetVersion. The pre-rollback state is snapshotted first and the counter
// still advances: history is never deleted or renumbered.
func (v versionedTable) restore(ctx context.Context, db *sql.DB, b squirrel.StatementBuilderType, id uuid.UUID, fromVersion, targetVersion int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	set, err := v.historyValues(ctx, tx, b, id, targetVersion)
	if err != nil {
		return err
	}
	if err := v.snapshot(ctx, tx, id); err != nil {
		return err
	}
	if err := v.advance(ctx, tx, b, id, fromVersion, set); err != nil {
		return err
	}

	return tx.Commit()
}

func (v versionedTable) snapshot(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	into := append([]string{v.historyFK}, v.columns...)
	into = append(into, "version")
	from := append([]string{"id"}, v.columns...)
	from = append(from, "version")

	q, args, err := squirrel.Insert(v.history).
		Columns(into...).
		Select(squirrel.Select(from...).From(v.table).Where(squirrel.Eq{"id": id})).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repoerrs.ErrNotFound
	}

	return nil
}

func (v versionedTable) advance(ctx context.Context, tx *sql.Tx, b squirrel.StatementBuilderType, id uuid.UUID, fromVersion int, set map[string]interface{}) error {
	upd := b.Update(v.table).
		Set("version", fromVersion+1).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "version": fromVersion})
	for col, val := range set {
		upd = upd.Set(col, val)
	}

	q, args, err := upd.ToSql()
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repoerrs.ErrVersionConflict
	}

	return nil
}

func (v versionedTable) historyValues(ctx context.Context, tx *sql.Tx, b squirrel.StatementBuilderType, id uuid.UUID, version int) (map[string]interface{}, error) {
	q, args, err := b.Select(v.columns...).
		From(v.history).
		Where(squirrel.Eq{v.historyFK: id, "version": version}).
		ToSql()
	if err != nil {
		return nil, err
	}

	vals := make([]string, len(v.columns))
	dest := make([]interface{}, len(v.columns))
	for i := range vals {
		dest[i] = &vals[i]
	}

	if err := tx.QueryRowContext(ctx, q, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repoerrs.ErrNotFound
		}

		return nil, err
	}

	set := make(map[string]interface{}, len(v.columns))
	for i, col := range v.columns {
		set[col] = vals[i]
	}

	return set, nil
}
