package cabinet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// Use decreases stock of the medicine the name resolves to.
// When stock is insufficient the *domain.InsufficientStockError is returned
// as is and nothing is written.
func (s *Service) Use(ctx context.Context, in UseInput) (*UseResult, error) {
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
		return &UseResult{Outcome: OutcomeNotFound}, nil
	case domain.ResolutionAmbiguous:
		return &UseResult{Outcome: OutcomeAmbiguous, Candidates: res.Candidates}, nil
	}

	target := res.Match.Medicine
	var med *domain.Medicine
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := s.medicines.AdjustQuantity(txCtx, target.ID, -in.Quantity, in.GroupID)
		if err != nil {
			return err
		}

		delta := -in.Quantity
		if _, err := s.activities.Record(txCtx, domain.ActivityInput{
			MedicineID:    target.ID,
			GroupID:       in.GroupID,
			Action:        domain.ActivityUsed,
			QuantityDelta: &delta,
			Actor:         in.Actor,
		}); err != nil {
			return fmt.Errorf("record use: %w", err)
		}

		med = m
		return nil
	})
	if err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			s.log.InfoContext(ctx, "insufficient stock",
				slog.Int64("medicine_id", target.ID),
				slog.Int("available", stockErr.Available),
				slog.Int("requested", stockErr.Requested),
			)
			return nil, err
		}
		s.log.ErrorContext(ctx, "use medicine failed",
			slog.Int64("medicine_id", target.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("use medicine: %w", err)
	}

	s.log.InfoContext(ctx, "medicine used",
		slog.Int64("group_id", in.GroupID),
		slog.Int64("medicine_id", med.ID),
		slog.Int("used", in.Quantity),
		slog.Int("quantity", med.Quantity),
	)

	return &UseResult{
		Outcome:    OutcomeDone,
		Medicine:   med,
		Used:       in.Quantity,
		LowStock:   med.IsLowStock(s.cfg.LowStockThreshold),
		OutOfStock: med.IsOutOfStock(),
	}, nil
}
