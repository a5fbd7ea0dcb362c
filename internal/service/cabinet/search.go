package cabinet

import (
	"context"
	"fmt"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// Search returns up to domain.MaxCandidates medicines matching the name,
// best first, and records a lookup against the best one.
func (s *Service) Search(ctx context.Context, in SearchInput) (*SearchResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	matches, err := s.medicines.FindFuzzy(ctx, in.Name, in.GroupID, s.cfg.FuzzyMatchThreshold)
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", in.Name, err)
	}
	if len(matches) == 0 {
		return &SearchResult{}, nil
	}
	if len(matches) > domain.MaxCandidates {
		matches = matches[:domain.MaxCandidates]
	}

	if _, err := s.activities.Record(ctx, domain.ActivityInput{
		MedicineID: matches[0].Medicine.ID,
		GroupID:    in.GroupID,
		Action:     domain.ActivitySearched,
		Actor:      in.Actor,
	}); err != nil {
		return nil, fmt.Errorf("record search: %w", err)
	}

	return &SearchResult{Matches: matches}, nil
}
