package cabinet

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

const sweepConcurrency = 4

// Alerts collects the group's low-stock and expiring medicines.
func (s *Service) Alerts(ctx context.Context, groupID int64) (*AlertsResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res := &AlertsResult{GroupID: groupID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		low, err := s.medicines.ListLowStock(gctx, groupID, s.cfg.LowStockThreshold)
		if err != nil {
			return fmt.Errorf("list low stock: %w", err)
		}
		res.LowStock = low
		return nil
	})
	g.Go(func() error {
		exp, err := s.medicines.ListExpiringWithin(gctx, groupID, s.cfg.ExpiryWarningDays)
		if err != nil {
			return fmt.Errorf("list expiring: %w", err)
		}
		res.Expiring = exp
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Sweep runs Alerts for every group that owns inventory and returns the
// non-empty results ordered by group id.
func (s *Service) Sweep(ctx context.Context) ([]*AlertsResult, error) {
	groups, err := s.medicines.ListGroupIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	results := make([]*AlertsResult, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for i, groupID := range groups {
		g.Go(func() error {
			res, err := s.Alerts(gctx, groupID)
			if err != nil {
				return fmt.Errorf("alerts for group %d: %w", groupID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, r := range results {
		if !r.Empty() {
			out = append(out, r)
		}
	}

	s.log.InfoContext(ctx, "alert sweep done",
		slog.Int("groups", len(groups)),
		slog.Int("alerting", len(out)),
	)
	return out, nil
}
