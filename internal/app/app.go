package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres"
	"github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres/activity"
	"github.com/heartmarshall/medicabinet-backend/internal/adapter/postgres/medicine"
	"github.com/heartmarshall/medicabinet-backend/internal/config"
	"github.com/heartmarshall/medicabinet-backend/internal/service/cabinet"
)

// App holds the wired dependencies shared by the commands.
type App struct {
	Log     *slog.Logger
	Pool    *pgxpool.Pool
	Cabinet *cabinet.Service
}

// New connects to the database and wires the repositories and the cabinet
// service. Call Close when done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	svc := cabinet.NewService(
		logger,
		medicine.New(pool),
		activity.New(pool),
		postgres.NewTxManager(pool),
		cfg.Cabinet,
	)

	logger.Info("application started",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return &App{Log: logger, Pool: pool, Cabinet: svc}, nil
}

// Close releases the connection pool.
func (a *App) Close() {
	a.Pool.Close()
}
