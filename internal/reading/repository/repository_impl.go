package repository

import (
	"context"

	"github.com/smallbiznis/voltra/internal/reading/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reading *domain.EnergyReading) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO energy_readings (id, feeder_code, hours_supplied, reading_date, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		reading.ID,
		reading.FeederCode,
		reading.HoursSupplied,
		reading.ReadingDate,
		reading.RecordedAt,
	).Error
}

func (r *repo) ListByFeeder(ctx context.Context, db *gorm.DB, feederCode string) ([]*domain.EnergyReading, error) {
	var readings []*domain.EnergyReading
	err := db.WithContext(ctx).
		Model(&domain.EnergyReading{}).
		Where("feeder_code = ?", feederCode).
		Order("reading_date asc").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) SumSupplyHours(ctx context.Context, db *gorm.DB, feederCode string) (float64, error) {
	var total float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(hours_supplied), 0) FROM energy_readings WHERE feeder_code = ?`,
		feederCode,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
