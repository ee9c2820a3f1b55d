package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, category *LoadCategory) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*LoadCategory, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]LoadCategory, error)
}
