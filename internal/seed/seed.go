package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	"gorm.io/gorm"
)

type category struct {
	Code        string
	LoadFactor  float64
	Description string
}

// defaultCategories is the tariff book the engine ships with. R codes are
// residential, C codes commercial.
var defaultCategories = []category{
	{"R1", 1.0, "Residential, single phase"},
	{"R2", 1.3, "Residential, three phase"},
	{"R3", 1.6, "Residential, high consumption"},
	{"C1", 2.0, "Commercial, small"},
	{"C2", 3.5, "Commercial, large"},
	{"I1", 5.0, "Industrial"},
}

// EnsureLoadCategories seeds the default load categories for startup
// bootstrap. Existing codes are left untouched.
func EnsureLoadCategories(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range defaultCategories {
			if err := ensureCategoryTx(ctx, tx, node, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureCategoryTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, c category) error {
	var existing lcdomain.LoadCategory
	err := tx.WithContext(ctx).Where("code = ?", c.Code).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	record := lcdomain.LoadCategory{
		ID:          node.Generate(),
		Code:        c.Code,
		LoadFactor:  c.LoadFactor,
		Description: c.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return tx.WithContext(ctx).Create(&record).Error
}
