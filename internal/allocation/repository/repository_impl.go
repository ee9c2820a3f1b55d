package repository

import (
	"context"

	"github.com/smallbiznis/voltra/internal/allocation/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, run *domain.AllocationRun) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO allocation_runs
		 (id, feeder_code, period, status, total_hours, tariff_rate, total_customers, billed_customers, excluded_vacation, duplicate_bills, failed_customers, failures, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.FeederCode,
		run.Period,
		run.Status,
		run.TotalHours,
		run.TariffRate,
		run.TotalCustomers,
		run.BilledCustomers,
		run.ExcludedVacation,
		run.DuplicateBills,
		run.FailedCustomers,
		run.Failures,
		run.StartedAt,
		run.FinishedAt,
	).Error
}

func (r *repo) ListByFeeder(ctx context.Context, db *gorm.DB, feederCode string) ([]*domain.AllocationRun, error) {
	var runs []*domain.AllocationRun
	err := db.WithContext(ctx).
		Model(&domain.AllocationRun{}).
		Where("feeder_code = ?", feederCode).
		Order("started_at desc").
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *repo) FindCompleted(ctx context.Context, db *gorm.DB, feederCode, period string) (*domain.AllocationRun, error) {
	var run domain.AllocationRun
	err := db.WithContext(ctx).Raw(
		`SELECT id, feeder_code, period, status, total_hours, tariff_rate, total_customers, billed_customers, excluded_vacation, duplicate_bills, failed_customers, failures, started_at, finished_at
		 FROM allocation_runs
		 WHERE feeder_code = ? AND period = ? AND status = ?
		 ORDER BY started_at DESC
		 LIMIT 1`,
		feederCode,
		period,
		domain.RunStatusCompleted,
	).Scan(&run).Error
	if err != nil {
		return nil, err
	}
	if run.ID == 0 {
		return nil, nil
	}
	return &run, nil
}
