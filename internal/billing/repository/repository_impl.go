package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/billing/domain"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO bills (id, customer_id, feeder_code, period, total_hours, load_factor, allocated_energy, tariff_rate, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID,
		bill.CustomerID,
		bill.FeederCode,
		bill.Period,
		bill.TotalHours,
		bill.LoadFactor,
		bill.AllocatedEnergy,
		bill.TariffRate,
		bill.Amount,
		bill.CreatedAt,
	).Error
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID, p pagination.Pagination) ([]*domain.Bill, pagination.PageInfo, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Bill{}).
		Where("customer_id = ?", customerID).
		Order("created_at desc, id desc")

	return r.page(stmt, p)
}

func (r *repo) ListByPeriod(ctx context.Context, db *gorm.DB, feederCode, period string, p pagination.Pagination) ([]*domain.Bill, pagination.PageInfo, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Bill{}).
		Where("period = ?", period).
		Order("created_at desc, id desc")
	if feederCode != "" {
		stmt = stmt.Where("feeder_code = ?", feederCode)
	}

	return r.page(stmt, p)
}

func (r *repo) page(stmt *gorm.DB, p pagination.Pagination) ([]*domain.Bill, pagination.PageInfo, error) {
	var bills []*domain.Bill
	if err := pagination.Apply(stmt, p).Find(&bills).Error; err != nil {
		return nil, pagination.PageInfo{}, err
	}

	bills, pageInfo := pagination.BuildPageInfo(bills, p.Limit(), func(b *domain.Bill) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        b.ID.String(),
			CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		return token
	})

	return bills, pageInfo, nil
}
