package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, feeder *Feeder) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Feeder, error)
	List(ctx context.Context, db *gorm.DB, filter ListFeederFilter) ([]*Feeder, error)
}
