package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/voltra/internal/billing/domain"
	"github.com/smallbiznis/voltra/internal/billing/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&domain.Bill{}))

	genID, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: genID,
		Repo:  repository.Provide(),
	})

	return svc, genID
}

func newBill(genID *snowflake.Node, period string) domain.Bill {
	return domain.Bill{
		CustomerID:      genID.Generate(),
		FeederCode:      "FDR-01",
		Period:          period,
		TotalHours:      100,
		LoadFactor:      1.0,
		AllocatedEnergy: 100,
		TariffRate:      45,
		Amount:          4500,
	}
}

func TestStoreRejectsSecondBillForSamePeriod(t *testing.T) {
	svc, genID := newTestService(t)
	ctx := context.Background()

	bill := newBill(genID, "2025-07")
	require.NoError(t, svc.Store(ctx, &bill))

	second := domain.Bill{
		CustomerID: bill.CustomerID,
		FeederCode: bill.FeederCode,
		Period:     bill.Period,
		TotalHours: 200,
		LoadFactor: 1.0,
		TariffRate: 45,
		Amount:     9000,
	}
	err := svc.Store(ctx, &second)
	require.ErrorIs(t, err, domain.ErrDuplicateBill)

	// The first bill survives the collision untouched.
	resp, err := svc.ListByCustomer(ctx, domain.ListBillByCustomerRequest{CustomerID: bill.CustomerID})
	require.NoError(t, err)
	require.Len(t, resp.Bills, 1)
	assert.Equal(t, 4500.0, resp.Bills[0].Amount)
}

func TestStoreAllowsSameCustomerAcrossPeriods(t *testing.T) {
	svc, genID := newTestService(t)
	ctx := context.Background()

	bill := newBill(genID, "2025-07")
	require.NoError(t, svc.Store(ctx, &bill))

	next := newBill(genID, "2025-08")
	next.CustomerID = bill.CustomerID
	require.NoError(t, svc.Store(ctx, &next))

	resp, err := svc.ListByCustomer(ctx, domain.ListBillByCustomerRequest{CustomerID: bill.CustomerID})
	require.NoError(t, err)
	assert.Len(t, resp.Bills, 2)
}

func TestStoreValidatesInput(t *testing.T) {
	svc, genID := newTestService(t)
	ctx := context.Background()

	err := svc.Store(ctx, &domain.Bill{Period: "2025-07"})
	assert.ErrorIs(t, err, domain.ErrInvalidBill)

	err = svc.Store(ctx, &domain.Bill{CustomerID: genID.Generate()})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestListByPeriodFiltersFeeder(t *testing.T) {
	svc, genID := newTestService(t)
	ctx := context.Background()

	onFeeder := newBill(genID, "2025-07")
	require.NoError(t, svc.Store(ctx, &onFeeder))

	other := newBill(genID, "2025-07")
	other.FeederCode = "FDR-02"
	require.NoError(t, svc.Store(ctx, &other))

	resp, err := svc.ListByPeriod(ctx, domain.ListBillByPeriodRequest{
		FeederCode: "fdr-01",
		Period:     "2025-07",
	})
	require.NoError(t, err)
	require.Len(t, resp.Bills, 1)
	assert.Equal(t, onFeeder.CustomerID, resp.Bills[0].CustomerID)

	all, err := svc.ListByPeriod(ctx, domain.ListBillByPeriodRequest{Period: "2025-07"})
	require.NoError(t, err)
	assert.Len(t, all.Bills, 2)
}
