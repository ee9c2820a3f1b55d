package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/allocation/calc"
	"github.com/smallbiznis/voltra/internal/allocation/domain"
	billingdomain "github.com/smallbiznis/voltra/internal/billing/domain"
	"github.com/smallbiznis/voltra/internal/clock"
	"github.com/smallbiznis/voltra/internal/config"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	"github.com/smallbiznis/voltra/internal/observability/metrics"
	readingdomain "github.com/smallbiznis/voltra/internal/reading/domain"
	"github.com/smallbiznis/voltra/internal/runlock"
	vacationdomain "github.com/smallbiznis/voltra/internal/vacation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config    config.Config
	Tariffs   *config.TariffConfigHolder `optional:"true"`
	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Locker    runlock.Locker
	Metrics   *metrics.Metrics
	Repo      domain.Repository
	Feeders   feederdomain.Service
	Customers customerdomain.Service
	Vacations vacationdomain.Service
	Readings  readingdomain.Service
	Bills     billingdomain.Service
	Directory lcdomain.Directory
}

type Service struct {
	cfg       config.Config
	tariffs   *config.TariffConfigHolder
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	locker    runlock.Locker
	metrics   *metrics.Metrics
	repo      domain.Repository
	feeders   feederdomain.Service
	customers customerdomain.Service
	vacations vacationdomain.Service
	readings  readingdomain.Service
	bills     billingdomain.Service
	directory lcdomain.Directory
}

func New(p Params) domain.Service {
	return &Service{
		cfg:       p.Config,
		tariffs:   p.Tariffs,
		db:        p.DB,
		log:       p.Log.Named("allocation.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		locker:    p.Locker,
		metrics:   p.Metrics,
		repo:      p.Repo,
		feeders:   p.Feeders,
		customers: p.Customers,
		vacations: p.Vacations,
		readings:  p.Readings,
		bills:     p.Bills,
		directory: p.Directory,
	}
}

func (s *Service) Run(ctx context.Context, req domain.RunRequest) (domain.RunSummary, error) {
	feederCode := strings.ToUpper(strings.TrimSpace(req.FeederCode))
	if feederCode == "" {
		return domain.RunSummary{}, domain.ErrInvalidFeeder
	}

	period := strings.TrimSpace(req.Period)
	if _, err := time.Parse("2006-01", period); err != nil {
		return domain.RunSummary{}, domain.ErrInvalidPeriod
	}

	tariff := s.cfg.DefaultTariffRate
	if s.tariffs != nil {
		tariff = s.tariffs.Get().RateFor(feederCode)
	}
	if req.TariffRate != nil {
		tariff = *req.TariffRate
	}
	if tariff <= 0 {
		return domain.RunSummary{}, domain.ErrInvalidTariff
	}

	if _, err := s.feeders.GetByCode(ctx, feederCode); err != nil {
		if errors.Is(err, feederdomain.ErrNotFound) {
			return domain.RunSummary{}, domain.ErrFeederNotFound
		}
		return domain.RunSummary{}, s.storageErr("feeder lookup", err)
	}

	// One run per feeder and period at a time. The lock is advisory; the
	// bill unique index is what actually prevents double billing.
	lockKey := fmt.Sprintf("allocation:%s:%s", feederCode, period)
	token, ok, err := s.locker.TryLock(ctx, lockKey, s.cfg.RunLockTTL)
	if err != nil {
		return domain.RunSummary{}, s.storageErr("acquire run lock", err)
	}
	if !ok {
		return domain.RunSummary{}, domain.ErrRunInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey, token); err != nil {
			s.log.Warn("release run lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	startedAt := s.clock.Now()
	log := s.log.With(
		zap.String("feeder_code", feederCode),
		zap.String("period", period),
	)

	summary, err := s.execute(runCtx, log, feederCode, period, tariff)
	if err != nil {
		s.metrics.RecordRunFailure(runCtx, feederCode, failureReason(err))
		return domain.RunSummary{}, err
	}

	s.persistRun(runCtx, log, summary, startedAt)
	s.metrics.RecordAllocationRun(runCtx, feederCode)

	log.Info("allocation run completed",
		zap.Int("total_customers", summary.TotalCustomers),
		zap.Int("billed_customers", summary.BilledCustomers),
		zap.Int("excluded_for_vacation", summary.ExcludedVacation),
		zap.Int("duplicate_bills", summary.DuplicateBills),
		zap.Int("failed_customers", summary.FailedCustomers),
	)

	return summary, nil
}

// execute walks the three phases of a run. Aggregating sums supply hours,
// allocating bills each eligible customer, reporting assembles the summary.
func (s *Service) execute(ctx context.Context, log *zap.Logger, feederCode, period string, tariff float64) (domain.RunSummary, error) {
	totalHours, err := s.readings.TotalSupplyHours(ctx, feederCode)
	if err != nil {
		return domain.RunSummary{}, s.storageErr("aggregate supply hours", err)
	}

	verified, err := s.customers.ListVerifiedByFeeder(ctx, feederCode)
	if err != nil {
		return domain.RunSummary{}, s.storageErr("list verified customers", err)
	}

	ids := make([]snowflake.ID, 0, len(verified))
	for _, c := range verified {
		ids = append(ids, c.ID)
	}

	onVacation, err := s.vacations.ActiveCustomerIDs(ctx, ids)
	if err != nil {
		return domain.RunSummary{}, s.storageErr("list active vacations", err)
	}

	eligible, excluded := splitEligible(verified, onVacation)

	summary := domain.RunSummary{
		FeederCode:       feederCode,
		Period:           period,
		TotalHours:       totalHours,
		TariffRate:       tariff,
		TotalCustomers:   len(eligible) + excluded,
		ExcludedVacation: excluded,
	}

	for _, cust := range eligible {
		if err := ctx.Err(); err != nil {
			return domain.RunSummary{}, s.storageErr("run deadline", err)
		}

		failure, err := s.billCustomer(ctx, cust, feederCode, period, totalHours, tariff)
		if err != nil {
			return domain.RunSummary{}, err
		}
		if failure != nil {
			if failure.Reason == domain.FailureDuplicateBill {
				summary.DuplicateBills++
			}
			summary.FailedCustomers++
			summary.Failures = append(summary.Failures, *failure)
			log.Warn("customer skipped",
				zap.String("customer_id", failure.CustomerID),
				zap.String("reason", failure.Reason),
			)
			continue
		}
		summary.BilledCustomers++
	}

	return summary, nil
}

// billCustomer allocates and stores one bill. A non-nil failure means the
// customer is skipped and the run continues; a non-nil error aborts the run.
func (s *Service) billCustomer(ctx context.Context, cust customerdomain.Customer, feederCode, period string, totalHours, tariff float64) (*domain.Failure, error) {
	category, err := s.directory.Lookup(ctx, cust.CategoryCode)
	if err != nil {
		if errors.Is(err, lcdomain.ErrCategoryNotFound) {
			return &domain.Failure{
				CustomerID: cust.ID.String(),
				Reason:     domain.FailureUnknownCategory,
			}, nil
		}
		return nil, s.storageErr("category lookup", err)
	}

	result, err := calc.Compute(calc.Input{
		SupplyHours: totalHours,
		LoadFactor:  category.LoadFactor,
		TariffRate:  tariff,
	})
	if err != nil {
		// Stored categories always carry a positive factor and run inputs
		// are validated up front, so this is a data integrity problem.
		return nil, fmt.Errorf("compute bill for customer %s: %w", cust.ID, err)
	}

	bill := billingdomain.Bill{
		CustomerID:      cust.ID,
		FeederCode:      feederCode,
		Period:          period,
		TotalHours:      totalHours,
		LoadFactor:      result.LoadFactor,
		AllocatedEnergy: result.AllocatedEnergy,
		TariffRate:      tariff,
		Amount:          result.Amount,
	}

	if err := s.bills.Store(ctx, &bill); err != nil {
		if errors.Is(err, billingdomain.ErrDuplicateBill) {
			return &domain.Failure{
				CustomerID: cust.ID.String(),
				Reason:     domain.FailureDuplicateBill,
			}, nil
		}
		return nil, s.storageErr("store bill", err)
	}

	return nil, nil
}

// persistRun writes the audit record. The run already succeeded, so a
// failure here is logged and swallowed.
func (s *Service) persistRun(ctx context.Context, log *zap.Logger, summary domain.RunSummary, startedAt time.Time) {
	failures, err := json.Marshal(summary.Failures)
	if err != nil {
		failures = []byte("[]")
	}

	run := domain.AllocationRun{
		ID:               s.genID.Generate(),
		FeederCode:       summary.FeederCode,
		Period:           summary.Period,
		Status:           domain.RunStatusCompleted,
		TotalHours:       summary.TotalHours,
		TariffRate:       summary.TariffRate,
		TotalCustomers:   summary.TotalCustomers,
		BilledCustomers:  summary.BilledCustomers,
		ExcludedVacation: summary.ExcludedVacation,
		DuplicateBills:   summary.DuplicateBills,
		FailedCustomers:  summary.FailedCustomers,
		Failures:         failures,
		StartedAt:        startedAt,
		FinishedAt:       s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &run); err != nil {
		log.Warn("persist allocation run", zap.Error(err))
	}
}

func (s *Service) ListRuns(ctx context.Context, req domain.ListRunRequest) (domain.ListRunResponse, error) {
	feederCode := strings.ToUpper(strings.TrimSpace(req.FeederCode))
	if feederCode == "" {
		return domain.ListRunResponse{}, domain.ErrInvalidFeeder
	}

	items, err := s.repo.ListByFeeder(ctx, s.db, feederCode)
	if err != nil {
		return domain.ListRunResponse{}, err
	}

	runs := make([]domain.AllocationRun, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		runs = append(runs, *item)
	}

	return domain.ListRunResponse{Runs: runs}, nil
}

func (s *Service) HasCompletedRun(ctx context.Context, feederCode, period string) (bool, error) {
	feederCode = strings.ToUpper(strings.TrimSpace(feederCode))
	run, err := s.repo.FindCompleted(ctx, s.db, feederCode, strings.TrimSpace(period))
	if err != nil {
		return false, err
	}
	return run != nil, nil
}

// storageErr folds any infrastructure failure into the run-level storage
// sentinel while keeping the underlying cause in the chain.
func (s *Service) storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "storage_unavailable"
	case errors.Is(err, domain.ErrRunInProgress):
		return "run_in_progress"
	default:
		return "internal"
	}
}
