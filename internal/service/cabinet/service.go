// Package cabinet maps parsed chat commands onto the inventory store and
// the activity ledger.
package cabinet

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/medicabinet-backend/internal/config"
	"github.com/heartmarshall/medicabinet-backend/internal/domain"
	"github.com/heartmarshall/medicabinet-backend/internal/parser"
)

type medicineRepo interface {
	Upsert(ctx context.Context, in domain.MedicineInput) (*domain.Medicine, error)
	AdjustQuantity(ctx context.Context, id int64, delta int, groupID int64) (*domain.Medicine, error)
	FindExact(ctx context.Context, name string, groupID int64) (*domain.Medicine, error)
	FindFuzzy(ctx context.Context, name string, groupID int64, threshold int) ([]domain.MedicineMatch, error)
	ListAll(ctx context.Context, groupID int64) ([]domain.Medicine, error)
	ListLowStock(ctx context.Context, groupID int64, threshold int) ([]domain.Medicine, error)
	ListExpiringWithin(ctx context.Context, groupID int64, days int) ([]domain.Medicine, error)
	ListGroupIDs(ctx context.Context) ([]int64, error)
	Delete(ctx context.Context, id, groupID int64) (bool, error)
}

type activityRepo interface {
	Record(ctx context.Context, in domain.ActivityInput) (*domain.Activity, error)
	History(ctx context.Context, groupID, medicineID int64, limit int) ([]domain.Activity, error)
	Stats(ctx context.Context, groupID int64, windowDays int) (*domain.ActivityStats, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the cabinet commands.
type Service struct {
	log        *slog.Logger
	medicines  medicineRepo
	activities activityRepo
	tx         txManager
	parser     *parser.Parser
	cfg        config.CabinetConfig
	now        func() time.Time
}

// NewService creates a new cabinet Service.
func NewService(
	logger *slog.Logger,
	medicines medicineRepo,
	activities activityRepo,
	tx txManager,
	cfg config.CabinetConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "cabinet"),
		medicines:  medicines,
		activities: activities,
		tx:         tx,
		parser:     parser.New(),
		cfg:        cfg,
		now:        time.Now,
	}
}

// withTimeout bounds one unit of work by the configured operation timeout.
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.OperationTimeout)
}

// resolve turns a free-text name into zero, one or several medicines of the
// group. A case-insensitive exact name wins without fuzzy scoring.
func (s *Service) resolve(ctx context.Context, name string, groupID int64) (domain.Resolution, error) {
	exact, err := s.medicines.FindExact(ctx, name, groupID)
	switch {
	case err == nil:
		return domain.Resolution{
			Outcome: domain.ResolutionResolved,
			Match:   &domain.MedicineMatch{Medicine: *exact, Score: domain.PerfectScore},
		}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Resolution{}, err
	}

	matches, err := s.medicines.FindFuzzy(ctx, name, groupID, s.cfg.FuzzyMatchThreshold)
	if err != nil {
		return domain.Resolution{}, err
	}
	return domain.Resolve(matches), nil
}
