// Package medicine implements the inventory store using PostgreSQL.
// Every operation is scoped by group id; a row of another group is treated
// as absent.
package medicine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/medicabinet-backend/internal/domain"
	"github.com/heartmarshall/medicabinet-backend/internal/fuzzy"
)

const entity = "medicine"

var columns = []string{
	"id", "group_id", "name", "quantity", "unit", "expires_at", "location",
	"created_by_id", "created_by_name", "created_at", "updated_at",
}

const returningColumns = `id, group_id, name, quantity, unit, expires_at, location,
          created_by_id, created_by_name, created_at, updated_at`

// Repo provides medicine persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new medicine repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL for writes
// ---------------------------------------------------------------------------

// Quantity accumulates; expiry and location are only overwritten by non-null
// values; unit and creator stay as first inserted.
const upsertSQL = `
INSERT INTO medicines (group_id, name, quantity, unit, expires_at, location, created_by_id, created_by_name)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (group_id, lower(name)) DO UPDATE
SET quantity   = medicines.quantity + EXCLUDED.quantity,
    expires_at = COALESCE(EXCLUDED.expires_at, medicines.expires_at),
    location   = COALESCE(EXCLUDED.location, medicines.location),
    updated_at = now()
RETURNING ` + returningColumns

const lockQuantitySQL = `SELECT quantity FROM medicines WHERE id = $1 AND group_id = $2 FOR UPDATE`

const setQuantitySQL = `
UPDATE medicines SET quantity = $3, updated_at = now()
WHERE id = $1 AND group_id = $2
RETURNING ` + returningColumns

const deleteSQL = `DELETE FROM medicines WHERE id = $1 AND group_id = $2`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert adds in.Quantity to the medicine named in.Name in the group,
// creating it when no case-insensitive match exists. Returns the resulting row.
func (r *Repo) Upsert(ctx context.Context, in domain.MedicineInput) (*domain.Medicine, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	unit := in.Unit
	if unit == "" {
		unit = domain.DefaultUnit
	}

	m, err := scanMedicine(q.QueryRow(ctx, upsertSQL,
		in.GroupID,
		domain.CollapseSpaces(in.Name),
		in.Quantity,
		unit,
		in.ExpiresAt,
		in.Location,
		in.Actor.ID,
		in.Actor.Name,
	))
	if err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}

	return &m, nil
}

// AdjustQuantity adds delta (usually negative) to the medicine's quantity.
// The row is locked for the read-modify-write, so concurrent adjusters of
// the same medicine serialize. If the result would be negative nothing is
// written and a *domain.InsufficientStockError is returned.
func (r *Repo) AdjustQuantity(ctx context.Context, id int64, delta int, groupID int64) (*domain.Medicine, error) {
	var updated domain.Medicine

	err := pgx.BeginFunc(ctx, postgres.QuerierFromCtx(ctx, r.pool), func(tx pgx.Tx) error {
		var current int
		if err := tx.QueryRow(ctx, lockQuantitySQL, id, groupID).Scan(&current); err != nil {
			return postgres.MapError(err, entity, id)
		}

		next := current + delta
		if next < 0 {
			return &domain.InsufficientStockError{Available: current, Requested: abs(delta)}
		}

		m, err := scanMedicine(tx.QueryRow(ctx, setQuantitySQL, id, groupID, next))
		if err != nil {
			return postgres.MapError(err, entity, id)
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a medicine and, by cascade, its ledger entries.
// Reports whether a row in the group was removed.
func (r *Repo) Delete(ctx context.Context, id, groupID int64) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, id, groupID)
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindExact looks a medicine up by case-insensitive name.
// Returns domain.ErrNotFound if the group has no such medicine.
func (r *Repo) FindExact(ctx context.Context, name string, groupID int64) (*domain.Medicine, error) {
	query := r.selectInGroup(groupID).
		Where(squirrel.Expr("lower(name) = lower(?)", domain.CollapseSpaces(name)))
	return r.getOne(ctx, 0, query)
}

// FindFuzzy scores every medicine of the group against name and returns the
// ones scoring at least threshold, best first. Equal scores keep insertion
// order.
func (r *Repo) FindFuzzy(ctx context.Context, name string, groupID int64, threshold int) ([]domain.MedicineMatch, error) {
	all, err := r.list(ctx, r.selectInGroup(groupID).OrderBy("id ASC"))
	if err != nil {
		return nil, err
	}

	name = domain.CollapseSpaces(name)
	matches := make([]domain.MedicineMatch, 0, len(all))
	for _, m := range all {
		if score := fuzzy.Score(name, m.Name); score >= threshold {
			matches = append(matches, domain.MedicineMatch{Medicine: m, Score: score})
		}
	}

	slices.SortStableFunc(matches, func(a, b domain.MedicineMatch) int {
		return b.Score - a.Score
	})

	return matches, nil
}

// ListAll returns every medicine of the group ordered by name.
func (r *Repo) ListAll(ctx context.Context, groupID int64) ([]domain.Medicine, error) {
	return r.list(ctx, r.selectInGroup(groupID).OrderBy("lower(name) ASC", "id ASC"))
}

// ListLowStock returns medicines with quantity strictly below threshold,
// lowest first.
func (r *Repo) ListLowStock(ctx context.Context, groupID int64, threshold int) ([]domain.Medicine, error) {
	query := r.selectInGroup(groupID).
		Where(squirrel.Lt{"quantity": threshold}).
		OrderBy("quantity ASC", "lower(name) ASC")
	return r.list(ctx, query)
}

// ListExpiringWithin returns medicines whose expiry falls on or before
// now+days, soonest first. Already expired medicines are included.
func (r *Repo) ListExpiringWithin(ctx context.Context, groupID int64, days int) ([]domain.Medicine, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, days)
	query := r.selectInGroup(groupID).
		Where(squirrel.NotEq{"expires_at": nil}).
		Where(squirrel.LtOrEq{"expires_at": cutoff}).
		OrderBy("expires_at ASC", "lower(name) ASC")
	return r.list(ctx, query)
}

// ListGroupIDs returns every group that holds at least one medicine.
func (r *Repo) ListGroupIDs(ctx context.Context) ([]int64, error) {
	sql, args, err := postgres.Builder().
		Select("DISTINCT group_id").
		From("medicines").
		OrderBy("group_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build group ids query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list group ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect group ids: %w", err)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Query helpers
// ---------------------------------------------------------------------------

func (r *Repo) selectInGroup(groupID int64) squirrel.SelectBuilder {
	return postgres.Builder().
		Select(columns...).
		From("medicines").
		Where(squirrel.Eq{"group_id": groupID})
}

func (r *Repo) getOne(ctx context.Context, id int64, query squirrel.SelectBuilder) (*domain.Medicine, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build medicine query: %w", err)
	}

	m, err := scanMedicine(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return &m, nil
}

func (r *Repo) list(ctx context.Context, query squirrel.SelectBuilder) ([]domain.Medicine, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build medicines query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query medicines: %w", err)
	}

	medicines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Medicine, error) {
		return scanMedicine(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect medicines: %w", err)
	}
	return medicines, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanMedicine(row pgx.Row) (domain.Medicine, error) {
	var m domain.Medicine
	err := row.Scan(
		&m.ID,
		&m.GroupID,
		&m.Name,
		&m.Quantity,
		&m.Unit,
		&m.ExpiresAt,
		&m.Location,
		&m.CreatedByID,
		&m.CreatedByName,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
