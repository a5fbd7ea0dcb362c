package config

import (
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Cabinet  CabinetConfig  `yaml:"cabinet"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CabinetConfig holds the inventory thresholds and limits. It is built once
// at startup and handed to the service; nothing reads it globally.
type CabinetConfig struct {
	LowStockThreshold   int           `yaml:"low_stock_threshold"   env:"CABINET_LOW_STOCK_THRESHOLD"   env-default:"3"`
	ExpiryWarningDays   int           `yaml:"expiry_warning_days"   env:"CABINET_EXPIRY_WARNING_DAYS"   env-default:"30"`
	FuzzyMatchThreshold int           `yaml:"fuzzy_match_threshold" env:"CABINET_FUZZY_MATCH_THRESHOLD" env-default:"80"`
	StatsWindowDays     int           `yaml:"stats_window_days"     env:"CABINET_STATS_WINDOW_DAYS"     env-default:"30"`
	HistoryLimit        int           `yaml:"history_limit"         env:"CABINET_HISTORY_LIMIT"         env-default:"50"`
	OperationTimeout    time.Duration `yaml:"operation_timeout"     env:"CABINET_OPERATION_TIMEOUT"     env-default:"5s"`
	AdminUserIDsRaw     string        `yaml:"admin_user_ids"        env:"CABINET_ADMIN_USER_IDS"        env-default:""`

	// AdminUserIDs is parsed from AdminUserIDsRaw during validation.
	AdminUserIDs []int64 `yaml:"-" env:"-"`
}

// IsAdmin reports whether userID may run admin-only commands.
func (c CabinetConfig) IsAdmin(userID int64) bool {
	return slices.Contains(c.AdminUserIDs, userID)
}
