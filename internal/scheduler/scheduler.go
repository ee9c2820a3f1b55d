package scheduler

import (
	"context"
	"errors"
	"time"

	allocationdomain "github.com/smallbiznis/voltra/internal/allocation/domain"
	"github.com/smallbiznis/voltra/internal/clock"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler requires allocation service, feeder service, clock and logger")

type Params struct {
	fx.In

	Log           *zap.Logger
	Clock         clock.Clock
	AllocationSvc allocationdomain.Service
	FeederSvc     feederdomain.Service
	Config        Config `optional:"true"`
}

// Scheduler closes billing months. Once the calendar rolls over, every
// active feeder gets one allocation run for the month that just ended.
// Feeders already closed are skipped, so the loop is safe to rerun.
type Scheduler struct {
	log           *zap.Logger
	cfg           Config
	clock         clock.Clock
	allocationSvc allocationdomain.Service
	feederSvc     feederdomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.AllocationSvc == nil || p.FeederSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:           p.Log.Named("scheduler"),
		cfg:           p.Config.withDefaults(),
		clock:         p.Clock,
		allocationSvc: p.AllocationSvc,
		feederSvc:     p.FeederSvc,
	}, nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce closes the previous month for every active feeder that has no
// completed run yet. A failing feeder does not stop the others.
func (s *Scheduler) RunOnce(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	period := previousPeriod(s.clock.Now())

	codes, err := s.feederSvc.ListActiveCodes(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, code := range codes {
		if err := s.closeFeeder(ctx, code, period); err != nil {
			failed++
			s.log.Warn("month close failed for feeder",
				zap.String("feeder_code", code),
				zap.String("period", period),
				zap.Error(err),
			)
		}
	}

	if failed > 0 {
		return errors.New("month close finished with failures")
	}
	return nil
}

func (s *Scheduler) closeFeeder(ctx context.Context, code, period string) error {
	done, err := s.allocationSvc.HasCompletedRun(ctx, code, period)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	summary, err := s.allocationSvc.Run(ctx, allocationdomain.RunRequest{
		FeederCode: code,
		Period:     period,
	})
	if err != nil {
		// Another instance may have grabbed the feeder first.
		if errors.Is(err, allocationdomain.ErrRunInProgress) {
			return nil
		}
		return err
	}

	s.log.Info("month closed",
		zap.String("feeder_code", code),
		zap.String("period", period),
		zap.Int("billed_customers", summary.BilledCustomers),
		zap.Int("failed_customers", summary.FailedCustomers),
	)
	return nil
}

// previousPeriod is the YYYY-MM month before the given instant.
func previousPeriod(now time.Time) string {
	year, month, _ := now.UTC().Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -1, 0).
		Format("2006-01")
}
