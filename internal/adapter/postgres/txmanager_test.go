package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres/testhelper"
)

const insertMedicineSQL = `INSERT INTO medicines (group_id, name, quantity, created_by_id) VALUES ($1, $2, 1, 1)`

// medicineExists checks whether a medicine with the given name exists in the group.
func medicineExists(t *testing.T, pool *pgxpool.Pool, groupID int64, name string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM medicines WHERE group_id = $1 AND name = $2)`,
		groupID, name,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("medicineExists query: %v", err)
	}
	return exists
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	groupID := testhelper.NewGroupID()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx, insertMedicineSQL, groupID, "Commit")
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !medicineExists(t, pool, groupID, "Commit") {
		t.Fatal("expected medicine to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	groupID := testhelper.NewGroupID()

	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, execErr := q.Exec(ctx, insertMedicineSQL, groupID, "Rollback"); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if medicineExists(t, pool, groupID, "Rollback") {
		t.Fatal("expected medicine NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	groupID := testhelper.NewGroupID()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if medicineExists(t, pool, groupID, "Panic") {
			t.Fatal("expected medicine NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertMedicineSQL, groupID, "Panic"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	groupID := testhelper.NewGroupID()

	sentinel := errors.New("outer failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		innerErr := tm.RunInTx(ctx, func(ctx context.Context) error {
			_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertMedicineSQL, groupID, "Nested")
			return err
		})
		if innerErr != nil {
			t.Fatalf("inner RunInTx: %v", innerErr)
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if medicineExists(t, pool, groupID, "Nested") {
		t.Fatal("inner write should roll back with the outer transaction")
	}
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	groupID := testhelper.NewGroupID()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertMedicineSQL, groupID, "Visible"); err != nil {
			return err
		}

		// Visible within the transaction, not outside until commit.
		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM medicines WHERE group_id = $1)`, groupID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected medicine to be visible within the transaction")
		}
		if medicineExists(t, pool, groupID, "Visible") {
			t.Fatal("expected medicine to be invisible outside the transaction before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !medicineExists(t, pool, groupID, "Visible") {
		t.Fatal("expected medicine to exist after committed transaction")
	}
}
