package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, run *AllocationRun) error
	ListByFeeder(ctx context.Context, db *gorm.DB, feederCode string) ([]*AllocationRun, error)
	FindCompleted(ctx context.Context, db *gorm.DB, feederCode, period string) (*AllocationRun, error)
}
