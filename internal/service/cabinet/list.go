package cabinet

import (
	"context"
	"fmt"
)

// List returns the whole inventory of a group with the low-stock and
// expiring subsets derived from it.
func (s *Service) List(ctx context.Context, groupID int64) (*ListResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	all, err := s.medicines.ListAll(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}

	now := s.now()
	res := &ListResult{Medicines: all}
	for _, m := range all {
		if m.IsLowStock(s.cfg.LowStockThreshold) {
			res.LowStock = append(res.LowStock, m)
		}
		if m.ExpiresWithin(now, s.cfg.ExpiryWarningDays) {
			res.Expiring = append(res.Expiring, m)
		}
	}
	return res, nil
}
