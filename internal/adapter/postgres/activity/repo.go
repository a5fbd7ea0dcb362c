// Package activity implements the append-only activity ledger using PostgreSQL.
package activity

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

const entity = "activity"

// Repo provides ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

// The medicine must exist in the same group, otherwise no row is inserted.
const recordSQL = `
INSERT INTO activity_log (medicine_id, group_id, action, quantity_delta, user_id, user_name)
SELECT m.id, m.group_id, $3::text::activity_action, $4::integer, $5::bigint, $6::text
FROM medicines m
WHERE m.id = $1 AND m.group_id = $2
RETURNING id, medicine_id, group_id, action::text, quantity_delta, user_id, user_name, created_at`

const countByActionSQL = `
SELECT action::text, count(*)
FROM activity_log
WHERE group_id = $1 AND created_at >= now() - make_interval(days => $2)
GROUP BY action`

const topUsersSQL = `
SELECT user_id, max(user_name), count(*) AS n
FROM activity_log
WHERE group_id = $1 AND created_at >= now() - make_interval(days => $2)
GROUP BY user_id
ORDER BY n DESC, user_id ASC
LIMIT $3`

const topMedicinesSQL = `
SELECT a.medicine_id, m.name, count(*) AS n
FROM activity_log a
JOIN medicines m ON m.id = a.medicine_id
WHERE a.group_id = $1 AND a.created_at >= now() - make_interval(days => $2) AND a.action = 'used'
GROUP BY a.medicine_id, m.name
ORDER BY n DESC, a.medicine_id ASC
LIMIT $3`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Record appends a ledger entry. Returns domain.ErrNotFound if the medicine
// does not exist in the given group.
func (r *Repo) Record(ctx context.Context, in domain.ActivityInput) (*domain.Activity, error) {
	if !in.Action.IsValid() {
		return nil, domain.NewValidationError("action", fmt.Sprintf("unknown action %q", in.Action))
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanActivity(q.QueryRow(ctx, recordSQL,
		in.MedicineID,
		in.GroupID,
		string(in.Action),
		in.QuantityDelta,
		in.Actor.ID,
		in.Actor.Name,
	))
	if err != nil {
		return nil, postgres.MapError(err, "medicine", in.MedicineID)
	}

	return &a, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// History returns up to limit entries for a medicine, newest first.
func (r *Repo) History(ctx context.Context, groupID, medicineID int64, limit int) ([]domain.Activity, error) {
	sql, args, err := postgres.Builder().
		Select("id", "medicine_id", "group_id", "action::text", "quantity_delta", "user_id", "user_name", "created_at").
		From("activity_log").
		Where(squirrel.Eq{"group_id": groupID, "medicine_id": medicineID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(max(limit, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, medicineID)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Activity, error) {
		return scanActivity(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect history: %w", err)
	}
	return entries, nil
}

// Stats aggregates the group's ledger over the trailing windowDays.
// The three aggregate queries go out as one batch.
func (r *Repo) Stats(ctx context.Context, groupID int64, windowDays int) (*domain.ActivityStats, error) {
	batch := &pgx.Batch{}
	batch.Queue(countByActionSQL, groupID, windowDays)
	batch.Queue(topUsersSQL, groupID, windowDays, domain.StatsTopN)
	batch.Queue(topMedicinesSQL, groupID, windowDays, domain.StatsTopN)

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer br.Close()

	stats := &domain.ActivityStats{
		WindowDays: windowDays,
		ByAction:   make(map[domain.ActivityAction]int),
	}

	var (
		action string
		count  int
	)
	rows, err := br.Query()
	if err != nil {
		return nil, fmt.Errorf("count by action: %w", err)
	}
	_, err = pgx.ForEachRow(rows, []any{&action, &count}, func() error {
		stats.ByAction[domain.ActivityAction(action)] = count
		stats.Total += count
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count by action: %w", err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}
	stats.TopUsers, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserActivityCount, error) {
		var u domain.UserActivityCount
		err := row.Scan(&u.UserID, &u.UserName, &u.Count)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, fmt.Errorf("top medicines: %w", err)
	}
	stats.TopMedicines, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MedicineUsageCount, error) {
		var m domain.MedicineUsageCount
		err := row.Scan(&m.MedicineID, &m.Name, &m.Count)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("top medicines: %w", err)
	}

	return stats, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanActivity(row pgx.Row) (domain.Activity, error) {
	var (
		a      domain.Activity
		action string
	)
	err := row.Scan(
		&a.ID,
		&a.MedicineID,
		&a.GroupID,
		&action,
		&a.QuantityDelta,
		&a.UserID,
		&a.UserName,
		&a.CreatedAt,
	)
	a.Action = domain.ActivityAction(action)
	return a, err
}
