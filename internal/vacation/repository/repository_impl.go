package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/vacation/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, vacation *domain.Vacation) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO vacations (id, customer_id, status, from_date, to_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		vacation.ID,
		vacation.CustomerID,
		vacation.Status,
		vacation.FromDate,
		vacation.ToDate,
		vacation.CreatedAt,
		vacation.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Vacation, error) {
	var vacation domain.Vacation
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, status, from_date, to_date, created_at, updated_at
		 FROM vacations WHERE id = ?`,
		id,
	).Scan(&vacation).Error
	if err != nil {
		return nil, err
	}
	if vacation.ID == 0 {
		return nil, nil
	}
	return &vacation, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, vacation *domain.Vacation) error {
	return db.WithContext(ctx).Exec(
		`UPDATE vacations SET status = ?, updated_at = ? WHERE id = ?`,
		vacation.Status,
		vacation.UpdatedAt,
		vacation.ID,
	).Error
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*domain.Vacation, error) {
	var vacations []*domain.Vacation
	err := db.WithContext(ctx).
		Model(&domain.Vacation{}).
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&vacations).Error
	if err != nil {
		return nil, err
	}
	return vacations, nil
}

func (r *repo) ListActiveCustomerIDs(ctx context.Context, db *gorm.DB, customerIDs []snowflake.ID) ([]snowflake.ID, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	var ids []snowflake.ID
	err := db.WithContext(ctx).Raw(
		`SELECT DISTINCT customer_id FROM vacations WHERE status = ? AND customer_id IN ?`,
		domain.VacationStatusActive,
		customerIDs,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
