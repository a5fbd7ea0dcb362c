package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// NewGroupID returns a group id no other test uses, so tests sharing the
// container never see each other's rows.
func NewGroupID() int64 {
	return -int64(uuid.New().ID()) - 1
}

// TestActor is the default actor for seeded rows.
var TestActor = domain.Actor{ID: 1001, Name: "tester"}

// SeedMedicine inserts a medicine directly, bypassing the repository.
// Returns a filled domain.Medicine.
func SeedMedicine(t *testing.T, pool *pgxpool.Pool, groupID int64, name string, quantity int) domain.Medicine {
	t.Helper()
	return SeedMedicineFull(t, pool, domain.Medicine{
		GroupID:  groupID,
		Name:     name,
		Quantity: quantity,
	})
}

// SeedMedicineFull inserts m as given. Zero Unit and creator fields get
// defaults.
func SeedMedicineFull(t *testing.T, pool *pgxpool.Pool, m domain.Medicine) domain.Medicine {
	t.Helper()
	ctx := context.Background()

	if m.Unit == "" {
		m.Unit = domain.DefaultUnit
	}
	if m.CreatedByID == 0 {
		m.CreatedByID = TestActor.ID
		m.CreatedByName = TestActor.Name
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	m.CreatedAt, m.UpdatedAt = now, now

	err := pool.QueryRow(ctx,
		`INSERT INTO medicines (group_id, name, quantity, unit, expires_at, location,
		                        created_by_id, created_by_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		m.GroupID, m.Name, m.Quantity, m.Unit, m.ExpiresAt, m.Location,
		m.CreatedByID, m.CreatedByName, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedMedicine insert: %v", err)
	}

	return m
}

// SeedActivity inserts a ledger entry at the given time.
func SeedActivity(t *testing.T, pool *pgxpool.Pool, m domain.Medicine, action domain.ActivityAction, actor domain.Actor, at time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO activity_log (medicine_id, group_id, action, user_id, user_name, created_at)
		 VALUES ($1, $2, $3::text::activity_action, $4, $5, $6)`,
		m.ID, m.GroupID, string(action), actor.ID, actor.Name, at,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActivity insert: %v", err)
	}
}

// MedicineQuantity reads the stored quantity of a medicine.
func MedicineQuantity(t *testing.T, pool *pgxpool.Pool, id int64) int {
	t.Helper()

	var qty int
	if err := pool.QueryRow(context.Background(), `SELECT quantity FROM medicines WHERE id = $1`, id).Scan(&qty); err != nil {
		t.Fatalf("testhelper: MedicineQuantity: %v", err)
	}
	return qty
}

// CountActivities returns the number of ledger entries for a medicine.
func CountActivities(t *testing.T, pool *pgxpool.Pool, medicineID int64) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM activity_log WHERE medicine_id = $1`, medicineID).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountActivities: %v", err)
	}
	return n
}
