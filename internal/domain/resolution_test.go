package domain

import "testing"

func match(id int64, name string, score int) MedicineMatch {
	return MedicineMatch{Medicine: Medicine{ID: id, Name: name}, Score: score}
}

func TestResolve_NoMatches(t *testing.T) {
	t.Parallel()

	res := Resolve(nil)
	if res.Outcome != ResolutionNone {
		t.Fatalf("outcome: got %q, want %q", res.Outcome, ResolutionNone)
	}
	if res.Match != nil || res.Candidates != nil {
		t.Errorf("expected empty resolution, got %+v", res)
	}
}

func TestResolve_SingleMatchBelowPerfect(t *testing.T) {
	t.Parallel()

	res := Resolve([]MedicineMatch{match(7, "Napa", 86)})
	if res.Outcome != ResolutionResolved {
		t.Fatalf("outcome: got %q, want %q", res.Outcome, ResolutionResolved)
	}
	if res.Match.Medicine.ID != 7 {
		t.Errorf("match id: got %d, want 7", res.Match.Medicine.ID)
	}
}

func TestResolve_ExactWinsAmongNearDuplicates(t *testing.T) {
	t.Parallel()

	res := Resolve([]MedicineMatch{
		match(1, "Napa", 100),
		match(2, "Napa Extra", 95),
		match(3, "Nappa", 89),
	})
	if res.Outcome != ResolutionResolved {
		t.Fatalf("outcome: got %q, want %q", res.Outcome, ResolutionResolved)
	}
	if res.Match.Medicine.ID != 1 {
		t.Errorf("match id: got %d, want 1", res.Match.Medicine.ID)
	}
	if res.Candidates != nil {
		t.Errorf("resolved result must not carry candidates")
	}
}

func TestResolve_AmbiguousKeepsOrder(t *testing.T) {
	t.Parallel()

	res := Resolve([]MedicineMatch{
		match(1, "Napa", 90),
		match(2, "Nappa", 85),
	})
	if res.Outcome != ResolutionAmbiguous {
		t.Fatalf("outcome: got %q, want %q", res.Outcome, ResolutionAmbiguous)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates: got %d, want 2", len(res.Candidates))
	}
	if res.Candidates[0].Medicine.ID != 1 || res.Candidates[1].Medicine.ID != 2 {
		t.Errorf("candidate order changed: %+v", res.Candidates)
	}
}

func TestResolve_AmbiguousCappedAtFive(t *testing.T) {
	t.Parallel()

	var matches []MedicineMatch
	for i := range 8 {
		matches = append(matches, match(int64(i+1), "Napa", 99-i))
	}

	res := Resolve(matches)
	if res.Outcome != ResolutionAmbiguous {
		t.Fatalf("outcome: got %q, want %q", res.Outcome, ResolutionAmbiguous)
	}
	if len(res.Candidates) != MaxCandidates {
		t.Fatalf("candidates: got %d, want %d", len(res.Candidates), MaxCandidates)
	}
	if res.Candidates[4].Score != 95 {
		t.Errorf("fifth candidate score: got %d, want 95", res.Candidates[4].Score)
	}

	// The input slice must not be aliased.
	res.Candidates[0].Score = 0
	if matches[0].Score != 99 {
		t.Error("Resolve must copy candidates")
	}
}

func TestResolve_FirstPerfectWinsOnPerfectTie(t *testing.T) {
	t.Parallel()

	res := Resolve([]MedicineMatch{
		match(4, "Napa", 100),
		match(5, "NAPA", 100),
	})
	if res.Outcome != ResolutionResolved || res.Match.Medicine.ID != 4 {
		t.Fatalf("expected first perfect match to win, got %+v", res)
	}
}
