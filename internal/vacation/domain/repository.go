package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, vacation *Vacation) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Vacation, error)
	Update(ctx context.Context, db *gorm.DB, vacation *Vacation) error
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*Vacation, error)
	ListActiveCustomerIDs(ctx context.Context, db *gorm.DB, customerIDs []snowflake.ID) ([]snowflake.ID, error)
}
