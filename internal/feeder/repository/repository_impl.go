package repository

import (
	"context"

	"github.com/smallbiznis/voltra/internal/feeder/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, feeder *domain.Feeder) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO feeders (id, code, name, region, status, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		feeder.ID,
		feeder.Code,
		feeder.Name,
		feeder.Region,
		feeder.Status,
		feeder.Metadata,
		feeder.CreatedAt,
		feeder.UpdatedAt,
	).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Feeder, error) {
	var feeder domain.Feeder
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, region, status, metadata, created_at, updated_at
		 FROM feeders WHERE code = ?`,
		code,
	).Scan(&feeder).Error
	if err != nil {
		return nil, err
	}
	if feeder.ID == 0 {
		return nil, nil
	}
	return &feeder, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFeederFilter) ([]*domain.Feeder, error) {
	var feeders []*domain.Feeder
	stmt := db.WithContext(ctx).Model(&domain.Feeder{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Region != "" {
		stmt = stmt.Where("region = ?", filter.Region)
	}
	err := stmt.
		Order("code asc").
		Find(&feeders).Error
	if err != nil {
		return nil, err
	}
	return feeders, nil
}
