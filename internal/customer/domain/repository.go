package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter, p pagination.Pagination) ([]*Customer, pagination.PageInfo, error)
	ListVerifiedByFeeder(ctx context.Context, db *gorm.DB, feederCode string) ([]*Customer, error)
}
