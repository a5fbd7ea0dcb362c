package cabinet

import (
	"context"
	"fmt"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// Stats aggregates the group's ledger over the configured window.
func (s *Service) Stats(ctx context.Context, groupID int64) (*domain.ActivityStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stats, err := s.activities.Stats(ctx, groupID, s.cfg.StatsWindowDays)
	if err != nil {
		return nil, fmt.Errorf("activity stats: %w", err)
	}
	return stats, nil
}

// History returns the most recent ledger entries of the medicine the name
// resolves to.
func (s *Service) History(ctx context.Context, groupID int64, name string) (*HistoryResult, error) {
	if errs := validateName(nil, name); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.resolve(ctx, name, groupID)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	switch res.Outcome {
	case domain.ResolutionNone:
		return &HistoryResult{Outcome: OutcomeNotFound}, nil
	case domain.ResolutionAmbiguous:
		return &HistoryResult{Outcome: OutcomeAmbiguous, Candidates: res.Candidates}, nil
	}

	med := res.Match.Medicine
	entries, err := s.activities.History(ctx, groupID, med.ID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("activity history: %w", err)
	}
	return &HistoryResult{Outcome: OutcomeDone, Medicine: &med, Entries: entries}, nil
}
