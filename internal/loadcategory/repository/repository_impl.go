package repository

import (
	"context"

	"github.com/smallbiznis/voltra/internal/loadcategory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, category *domain.LoadCategory) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO load_categories (id, code, load_factor, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID,
		category.Code,
		category.LoadFactor,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.LoadCategory, error) {
	var category domain.LoadCategory
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, load_factor, description, created_at, updated_at
		 FROM load_categories WHERE code = ?`,
		code,
	).Scan(&category).Error
	if err != nil {
		return nil, err
	}
	if category.ID == 0 {
		return nil, nil
	}
	return &category, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.LoadCategory, error) {
	var categories []domain.LoadCategory
	err := db.WithContext(ctx).
		Model(&domain.LoadCategory{}).
		Order("code asc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
