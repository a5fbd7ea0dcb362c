package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Cabinet.validate(); err != nil {
		return fmt.Errorf("cabinet: %w", err)
	}

	return nil
}

func (c *CabinetConfig) validate() error {
	if c.FuzzyMatchThreshold < 0 || c.FuzzyMatchThreshold > 100 {
		return fmt.Errorf("fuzzy_match_threshold must be in [0,100] (got %d)", c.FuzzyMatchThreshold)
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("low_stock_threshold must be >= 0 (got %d)", c.LowStockThreshold)
	}
	if c.ExpiryWarningDays < 0 {
		return fmt.Errorf("expiry_warning_days must be >= 0 (got %d)", c.ExpiryWarningDays)
	}
	if c.StatsWindowDays <= 0 {
		return fmt.Errorf("stats_window_days must be > 0 (got %d)", c.StatsWindowDays)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be > 0 (got %d)", c.HistoryLimit)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("operation_timeout must be > 0 (got %s)", c.OperationTimeout)
	}

	ids, err := ParseUserIDs(c.AdminUserIDsRaw)
	if err != nil {
		return fmt.Errorf("admin_user_ids: %w", err)
	}
	c.AdminUserIDs = ids

	return nil
}

// ParseUserIDs parses a comma-separated list of numeric user ids
// (e.g. "123,456"). An empty string returns a nil slice.
func ParseUserIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
