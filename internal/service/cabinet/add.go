package cabinet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

// Add increases stock of a medicine, creating it on first add.
// A missing name or quantity is reported as a *domain.ValidationError so the
// caller can ask for the missing piece.
func (s *Service) Add(ctx context.Context, in AddInput) (*AddResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var med *domain.Medicine
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := s.medicines.Upsert(txCtx, domain.MedicineInput{
			GroupID:   in.GroupID,
			Name:      in.Name,
			Quantity:  *in.Quantity,
			Unit:      in.Unit,
			ExpiresAt: in.ExpiresAt,
			Location:  in.Location,
			Actor:     in.Actor,
		})
		if err != nil {
			return fmt.Errorf("upsert medicine: %w", err)
		}

		delta := *in.Quantity
		if _, err := s.activities.Record(txCtx, domain.ActivityInput{
			MedicineID:    m.ID,
			GroupID:       in.GroupID,
			Action:        domain.ActivityAdded,
			QuantityDelta: &delta,
			Actor:         in.Actor,
		}); err != nil {
			return fmt.Errorf("record add: %w", err)
		}

		med = m
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "add medicine failed",
			slog.Int64("group_id", in.GroupID),
			slog.String("name", in.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "medicine added",
		slog.Int64("group_id", in.GroupID),
		slog.Int64("medicine_id", med.ID),
		slog.Int("added", *in.Quantity),
		slog.Int("quantity", med.Quantity),
	)

	return &AddResult{
		Medicine:     *med,
		Added:        *in.Quantity,
		LowStock:     med.IsLowStock(s.cfg.LowStockThreshold),
		ExpiringSoon: med.ExpiresWithin(s.now(), s.cfg.ExpiryWarningDays),
	}, nil
}
