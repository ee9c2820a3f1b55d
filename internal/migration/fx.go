package migration

import (
	allocationdomain "github.com/smallbiznis/voltra/internal/allocation/domain"
	billingdomain "github.com/smallbiznis/voltra/internal/billing/domain"
	"github.com/smallbiznis/voltra/internal/config"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	readingdomain "github.com/smallbiznis/voltra/internal/reading/domain"
	"github.com/smallbiznis/voltra/internal/seed"
	vacationdomain "github.com/smallbiznis/voltra/internal/vacation/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned migrations are postgres-only. Other dialects are
			// for local development, AutoMigrate is enough there.
			if err := conn.AutoMigrate(
				&lcdomain.LoadCategory{},
				&feederdomain.Feeder{},
				&customerdomain.Customer{},
				&vacationdomain.Vacation{},
				&readingdomain.EnergyReading{},
				&billingdomain.Bill{},
				&allocationdomain.AllocationRun{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureLoadCategories(conn)
	}),
)
