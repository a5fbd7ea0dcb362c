// Command stockalert reports low-stock and soon-to-expire medicines for every
// group that holds inventory. It is intended to be invoked by an external
// cron job; delivering the report to the groups is left to the caller.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/medicabinet-backend/internal/app"
	"github.com/heartmarshall/medicabinet-backend/internal/config"
	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

type medicineReport struct {
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	Unit      string     `json:"unit"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type groupReport struct {
	GroupID  int64            `json:"group_id"`
	LowStock []medicineReport `json:"low_stock,omitempty"`
	Expiring []medicineReport `json:"expiring,omitempty"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("init", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	results, err := a.Cabinet.Sweep(ctx)
	if err != nil {
		logger.Error("alert sweep failed", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		if err := enc.Encode(groupReport{
			GroupID:  r.GroupID,
			LowStock: toReport(r.LowStock),
			Expiring: toReport(r.Expiring),
		}); err != nil {
			logger.Error("write report", slog.String("error", err.Error()))
			a.Close()
			os.Exit(1)
		}
	}
}

func toReport(meds []domain.Medicine) []medicineReport {
	out := make([]medicineReport, 0, len(meds))
	for _, m := range meds {
		out = append(out, medicineReport{Name: m.Name, Quantity: m.Quantity, Unit: m.Unit, ExpiresAt: m.ExpiresAt})
	}
	return out
}
