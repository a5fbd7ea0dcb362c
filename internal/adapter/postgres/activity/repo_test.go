package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres/activity"
	"github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*activity.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return activity.New(pool), pool
}

func intPtr(n int) *int { return &n }

var (
	alice = domain.Actor{ID: 1, Name: "alice"}
	bob   = domain.Actor{ID: 2, Name: "bob"}
)

// ---------------------------------------------------------------------------
// Record tests
// ---------------------------------------------------------------------------

func TestRepo_Record_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	groupID := testhelper.NewGroupID()
	m := testhelper.SeedMedicine(t, pool, groupID, "Napa", 10)

	got, err := repo.Record(context.Background(), domain.ActivityInput{
		MedicineID:    m.ID,
		GroupID:       groupID,
		Action:        domain.ActivityUsed,
		QuantityDelta: intPtr(-2),
		Actor:         alice,
	})
	if err != nil {
		t.Fatalf("Record: unexpected error: %v", err)
	}

	if got.ID == 0 || got.MedicineID != m.ID || got.GroupID != groupID {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Action != domain.ActivityUsed {
		t.Errorf("Action: got %q, want %q", got.Action, domain.ActivityUsed)
	}
	if got.QuantityDelta == nil || *got.QuantityDelta != -2 {
		t.Errorf("QuantityDelta: got %v, want -2", got.QuantityDelta)
	}
	if got.UserID != alice.ID || got.UserName != alice.Name {
		t.Errorf("user mismatch: %d/%q", got.UserID, got.UserName)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
}

func TestRepo_Record_NilDelta(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	groupID := testhelper.NewGroupID()
	m := testhelper.SeedMedicine(t, pool, groupID, "Napa", 10)

	got, err := repo.Record(context.Background(), domain.ActivityInput{
		MedicineID: m.ID, GroupID: groupID, Action: domain.ActivitySearched, Actor: alice,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got.QuantityDelta != nil {
		t.Errorf("QuantityDelta should be nil, got %d", *got.QuantityDelta)
	}
}

func TestRepo_Record_MissingMedicine(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Record(context.Background(), domain.ActivityInput{
		MedicineID: 1 << 40, GroupID: testhelper.NewGroupID(), Action: domain.ActivityAdded, Actor: alice,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_Record_OtherGroupMedicine(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	m := testhelper.SeedMedicine(t, pool, testhelper.NewGroupID(), "Napa", 10)

	_, err := repo.Record(context.Background(), domain.ActivityInput{
		MedicineID: m.ID, GroupID: testhelper.NewGroupID(), Action: domain.ActivityAdded, Actor: alice,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if n := testhelper.CountActivities(t, pool, m.ID); n != 0 {
		t.Errorf("no entry should be written, found %d", n)
	}
}

func TestRepo_Record_InvalidAction(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	groupID := testhelper.NewGroupID()
	m := testhelper.SeedMedicine(t, pool, groupID, "Napa", 10)

	_, err := repo.Record(context.Background(), domain.ActivityInput{
		MedicineID: m.ID, GroupID: groupID, Action: "stolen", Actor: alice,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// History tests
// ---------------------------------------------------------------------------

func TestRepo_History_NewestFirstWithLimit(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	groupID := testhelper.NewGroupID()
	m := testhelper.SeedMedicine(t, pool, groupID, "Napa", 10)
	now := time.Now().UTC()

	testhelper.SeedActivity(t, pool, m, domain.ActivityAdded, alice, now.Add(-3*time.Hour))
	testhelper.SeedActivity(t, pool, m, domain.ActivityUsed, bob, now.Add(-2*time.Hour))
	testhelper.SeedActivity(t, pool, m, domain.ActivitySearched, alice, now.Add(-1*time.Hour))

	got, err := repo.History(context.Background(), groupID, m.ID, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Action != domain.ActivitySearched || got[1].Action != domain.ActivityUsed {
		t.Errorf("order: got %q,%q want searched,used", got[0].Action, got[1].Action)
	}
}

func TestRepo_History_OtherGroupEmpty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	groupID := testhelper.NewGroupID()
	m := testhelper.SeedMedicine(t, pool, groupID, "Napa", 10)
	testhelper.SeedActivity(t, pool, m, domain.ActivityAdded, alice, time.Now())

	got, err := repo.History(context.Background(), testhelper.NewGroupID(), m.ID, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries for another group, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Stats tests
// ---------------------------------------------------------------------------

func TestRepo_Stats_OneOfEach(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	groupID := testhelper.NewGroupID()
	m := testhelper.SeedMedicine(t, pool, groupID, "Napa", 10)

	for _, action := range []domain.ActivityAction{domain.ActivityAdded, domain.ActivityUsed, domain.ActivitySearched} {
		if _, err := repo.Record(ctx, domain.ActivityInput{MedicineID: m.ID, GroupID: groupID, Action: action, Actor: alice}); err != nil {
			t.Fatalf("Record %s: %v", action, err)
		}
	}

	got, err := repo.Stats(ctx, groupID, 30)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got.Total != 3 {
		t.Errorf("Total: got %d, want 3", got.Total)
	}
	for _, action := range []domain.ActivityAction{domain.ActivityAdded, domain.ActivityUsed, domain.ActivitySearched} {
		if got.ByAction[action] != 1 {
			t.Errorf("ByAction[%s]: got %d, want 1", action, got.ByAction[action])
		}
	}
	if got.WindowDays != 30 {
		t.Errorf("WindowDays: got %d, want 30", got.WindowDays)
	}
}

func TestRepo_Stats_WindowAndRankings(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	groupID := testhelper.NewGroupID()
	now := time.Now().UTC()

	napa := testhelper.SeedMedicine(t, pool, groupID, "Napa", 10)
	sergel := testhelper.SeedMedicine(t, pool, groupID, "Sergel", 10)

	testhelper.SeedActivity(t, pool, napa, domain.ActivityUsed, alice, now.Add(-time.Hour))
	testhelper.SeedActivity(t, pool, napa, domain.ActivityUsed, bob, now.Add(-time.Hour))
	testhelper.SeedActivity(t, pool, sergel, domain.ActivityUsed, alice, now.Add(-time.Hour))
	testhelper.SeedActivity(t, pool, sergel, domain.ActivityAdded, alice, now.Add(-time.Hour))
	// Outside the window.
	testhelper.SeedActivity(t, pool, sergel, domain.ActivityUsed, bob, now.AddDate(0, 0, -45))
	testhelper.SeedActivity(t, pool, sergel, domain.ActivityUsed, bob, now.AddDate(0, 0, -45))

	// Another group never leaks in.
	other := testhelper.SeedMedicine(t, pool, testhelper.NewGroupID(), "Napa", 1)
	testhelper.SeedActivity(t, pool, other, domain.ActivityUsed, bob, now)

	got, err := repo.Stats(context.Background(), groupID, 30)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if got.Total != 4 {
		t.Errorf("Total: got %d, want 4", got.Total)
	}
	if got.ByAction[domain.ActivityUsed] != 3 || got.ByAction[domain.ActivityAdded] != 1 {
		t.Errorf("ByAction: got %v", got.ByAction)
	}
	if _, ok := got.ByAction[domain.ActivityDeleted]; ok {
		t.Error("ByAction should only contain actions that occurred")
	}

	if len(got.TopUsers) != 2 || got.TopUsers[0].UserID != alice.ID || got.TopUsers[0].Count != 3 {
		t.Errorf("TopUsers: got %+v", got.TopUsers)
	}
	if got.TopUsers[0].UserName != "alice" {
		t.Errorf("TopUsers[0].UserName: got %q", got.TopUsers[0].UserName)
	}

	if len(got.TopMedicines) != 2 {
		t.Fatalf("TopMedicines: got %+v", got.TopMedicines)
	}
	if got.TopMedicines[0].MedicineID != napa.ID || got.TopMedicines[0].Count != 2 || got.TopMedicines[0].Name != "Napa" {
		t.Errorf("TopMedicines[0]: got %+v", got.TopMedicines[0])
	}
	if got.TopMedicines[1].MedicineID != sergel.ID || got.TopMedicines[1].Count != 1 {
		t.Errorf("TopMedicines[1]: got %+v", got.TopMedicines[1])
	}
}

func TestRepo_Stats_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.Stats(context.Background(), testhelper.NewGroupID(), 30)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got.Total != 0 || len(got.ByAction) != 0 || len(got.TopUsers) != 0 || len(got.TopMedicines) != 0 {
		t.Errorf("expected empty stats, got %+v", got)
	}
}
