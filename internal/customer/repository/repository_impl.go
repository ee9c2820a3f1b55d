package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/customer/domain"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (id, feeder_code, name, category_code, verified, status, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.FeederCode,
		customer.Name,
		customer.CategoryCode,
		customer.Verified,
		customer.Status,
		customer.Metadata,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, feeder_code, name, category_code, verified, status, metadata, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customers
		 SET name = ?, category_code = ?, verified = ?, status = ?, metadata = ?, updated_at = ?
		 WHERE id = ?`,
		customer.Name,
		customer.CategoryCode,
		customer.Verified,
		customer.Status,
		customer.Metadata,
		customer.UpdatedAt,
		customer.ID,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, p pagination.Pagination) ([]*domain.Customer, pagination.PageInfo, error) {
	stmt := db.WithContext(ctx).Model(&domain.Customer{})
	if filter.FeederCode != "" {
		stmt = stmt.Where("feeder_code = ?", filter.FeederCode)
	}
	if filter.Verified != nil {
		stmt = stmt.Where("verified = ?", *filter.Verified)
	}

	stmt = stmt.Order("created_at desc, id desc")

	var customers []*domain.Customer
	if err := pagination.Apply(stmt, p).Find(&customers).Error; err != nil {
		return nil, pagination.PageInfo{}, err
	}

	customers, pageInfo := pagination.BuildPageInfo(customers, p.Limit(), func(c *domain.Customer) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        c.ID.String(),
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		return token
	})

	return customers, pageInfo, nil
}

func (r *repo) ListVerifiedByFeeder(ctx context.Context, db *gorm.DB, feederCode string) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("feeder_code = ? AND verified = ?", feederCode, true).
		Order("id asc").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
