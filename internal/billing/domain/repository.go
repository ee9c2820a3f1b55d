package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bill *Bill) error
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID, p pagination.Pagination) ([]*Bill, pagination.PageInfo, error)
	ListByPeriod(ctx context.Context, db *gorm.DB, feederCode, period string, p pagination.Pagination) ([]*Bill, pagination.PageInfo, error)
}
