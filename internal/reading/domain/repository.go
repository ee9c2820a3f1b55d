package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reading *EnergyReading) error
	ListByFeeder(ctx context.Context, db *gorm.DB, feederCode string) ([]*EnergyReading, error)
	SumSupplyHours(ctx context.Context, db *gorm.DB, feederCode string) (float64, error)
}
