package cabinet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// Delete removes the medicine the name resolves to. Only configured admins
// may delete.
func (s *Service) Delete(ctx context.Context, in DeleteInput) (*DeleteResult, error) {
	if !s.cfg.IsAdmin(in.Actor.ID) {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.resolve(ctx, in.Name, in.GroupID)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", in.Name, err)
	}
	switch res.Outcome {
	case domain.ResolutionNone:
		return &DeleteResult{Outcome: OutcomeNotFound}, nil
	case domain.ResolutionAmbiguous:
		return &DeleteResult{Outcome: OutcomeAmbiguous, Candidates: res.Candidates}, nil
	}

	target := res.Match.Medicine
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.activities.Record(txCtx, domain.ActivityInput{
			MedicineID: target.ID,
			GroupID:    in.GroupID,
			Action:     domain.ActivityDeleted,
			Actor:      in.Actor,
		}); err != nil {
			return fmt.Errorf("record delete: %w", err)
		}

		deleted, err := s.medicines.Delete(txCtx, target.ID, in.GroupID)
		if err != nil {
			return fmt.Errorf("delete medicine: %w", err)
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The ledger rows cascade with the medicine, so the log line is the
	// lasting trace of the delete.
	s.log.InfoContext(ctx, "medicine deleted",
		slog.Int64("group_id", in.GroupID),
		slog.Int64("medicine_id", target.ID),
		slog.String("name", target.Name),
		slog.Int("quantity", target.Quantity),
		slog.Int64("actor_id", in.Actor.ID),
	)

	return &DeleteResult{Outcome: OutcomeDone, Medicine: &target}, nil
}
