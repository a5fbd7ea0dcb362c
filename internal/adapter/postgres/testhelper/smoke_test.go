package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	groupID := NewGroupID()
	m := SeedMedicine(t, pool, groupID, "Napa", 10)

	// Verify the medicine exists in DB via SELECT.
	var name string
	err := pool.QueryRow(
		context.Background(),
		`SELECT name FROM medicines WHERE id = $1 AND group_id = $2`,
		m.ID, groupID,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected medicine in DB, got error: %v", err)
	}

	if name != "Napa" {
		t.Fatalf("expected name %q, got %q", "Napa", name)
	}
}
