package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/voltra/internal/allocation/domain"
	allocationrepo "github.com/smallbiznis/voltra/internal/allocation/repository"
	billingdomain "github.com/smallbiznis/voltra/internal/billing/domain"
	billingrepo "github.com/smallbiznis/voltra/internal/billing/repository"
	billingservice "github.com/smallbiznis/voltra/internal/billing/service"
	"github.com/smallbiznis/voltra/internal/clock"
	"github.com/smallbiznis/voltra/internal/config"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
	customerrepo "github.com/smallbiznis/voltra/internal/customer/repository"
	customerservice "github.com/smallbiznis/voltra/internal/customer/service"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	feederrepo "github.com/smallbiznis/voltra/internal/feeder/repository"
	feederservice "github.com/smallbiznis/voltra/internal/feeder/service"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	lcrepo "github.com/smallbiznis/voltra/internal/loadcategory/repository"
	lcservice "github.com/smallbiznis/voltra/internal/loadcategory/service"
	readingdomain "github.com/smallbiznis/voltra/internal/reading/domain"
	readingrepo "github.com/smallbiznis/voltra/internal/reading/repository"
	readingservice "github.com/smallbiznis/voltra/internal/reading/service"
	"github.com/smallbiznis/voltra/internal/runlock"
	vacationdomain "github.com/smallbiznis/voltra/internal/vacation/domain"
	vacationrepo "github.com/smallbiznis/voltra/internal/vacation/repository"
	vacationservice "github.com/smallbiznis/voltra/internal/vacation/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	genID      *snowflake.Node
	locker     runlock.Locker
	engine     domain.Service
	feeders    feederdomain.Service
	categories lcdomain.Service
	customers  customerdomain.Service
	vacations  vacationdomain.Service
	readings   readingdomain.Service
	bills      billingdomain.Service
	cfg        config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&lcdomain.LoadCategory{},
		&feederdomain.Feeder{},
		&customerdomain.Customer{},
		&vacationdomain.Vacation{},
		&readingdomain.EnergyReading{},
		&billingdomain.Bill{},
		&domain.AllocationRun{},
	))

	genID, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()

	lcParams := lcservice.Params{DB: gdb, Log: log, GenID: genID, Repo: lcrepo.Provide()}
	categorySvc := lcservice.New(lcParams)
	directory := lcservice.NewDirectory(lcParams, categorySvc)

	feederSvc := feederservice.New(feederservice.Params{
		DB: gdb, Log: log, GenID: genID, Repo: feederrepo.Provide(),
	})
	customerSvc := customerservice.New(customerservice.Params{
		DB: gdb, Log: log, GenID: genID, Repo: customerrepo.Provide(), Directory: directory,
	})
	vacationSvc := vacationservice.New(vacationservice.Params{
		DB: gdb, Log: log, GenID: genID, Repo: vacationrepo.Provide(),
	})
	readingSvc := readingservice.New(readingservice.Params{
		DB: gdb, Log: log, GenID: genID, Repo: readingrepo.Provide(),
	})
	billingSvc := billingservice.New(billingservice.Params{
		DB: gdb, Log: log, GenID: genID, Repo: billingrepo.Provide(),
	})

	cfg := config.Config{
		DefaultTariffRate: 45,
		RunTimeout:        time.Minute,
		RunLockTTL:        time.Minute,
	}
	locker := runlock.NewLocalLocker()

	engine := New(Params{
		Config:    cfg,
		DB:        gdb,
		Log:       log,
		GenID:     genID,
		Clock:     clock.NewSystemClock(),
		Locker:    locker,
		Repo:      allocationrepo.Provide(),
		Feeders:   feederSvc,
		Customers: customerSvc,
		Vacations: vacationSvc,
		Readings:  readingSvc,
		Bills:     billingSvc,
		Directory: directory,
	})

	return &testEnv{
		db:         gdb,
		genID:      genID,
		locker:     locker,
		engine:     engine,
		feeders:    feederSvc,
		categories: categorySvc,
		customers:  customerSvc,
		vacations:  vacationSvc,
		readings:   readingSvc,
		bills:      billingSvc,
		cfg:        cfg,
	}
}

func (e *testEnv) createFeeder(t *testing.T, code string) feederdomain.Feeder {
	t.Helper()
	feeder, err := e.feeders.Create(context.Background(), feederdomain.CreateFeederRequest{
		Code: code,
		Name: "Feeder " + code,
	})
	require.NoError(t, err)
	return feeder
}

func (e *testEnv) createCategory(t *testing.T, code string, factor float64) {
	t.Helper()
	_, err := e.categories.Create(context.Background(), lcdomain.CreateCategoryRequest{
		Code:       code,
		LoadFactor: factor,
	})
	require.NoError(t, err)
}

func (e *testEnv) createVerifiedCustomer(t *testing.T, feederCode, name, categoryCode string) customerdomain.Customer {
	t.Helper()
	cust, err := e.customers.Create(context.Background(), customerdomain.CreateCustomerRequest{
		FeederCode:   feederCode,
		Name:         name,
		CategoryCode: categoryCode,
	})
	require.NoError(t, err)

	cust, err = e.customers.Verify(context.Background(), cust.ID)
	require.NoError(t, err)
	return cust
}

// insertRawCustomer bypasses service validation, used to plant rows the
// registration path would reject, like a category deleted after signup.
func (e *testEnv) insertRawCustomer(t *testing.T, feederCode, name, categoryCode string, verified bool) customerdomain.Customer {
	t.Helper()
	now := time.Now().UTC()
	cust := customerdomain.Customer{
		ID:           e.genID.Generate(),
		FeederCode:   feederCode,
		Name:         name,
		CategoryCode: categoryCode,
		Verified:     verified,
		Status:       customerdomain.CustomerStatusActive,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.db.Create(&cust).Error)
	return cust
}

func (e *testEnv) addReading(t *testing.T, feederCode string, hours float64) {
	t.Helper()
	_, err := e.readings.Ingest(context.Background(), readingdomain.IngestReadingRequest{
		FeederCode:    feederCode,
		HoursSupplied: hours,
	})
	require.NoError(t, err)
}

func (e *testEnv) startActiveVacation(t *testing.T, customerID snowflake.ID) {
	t.Helper()
	ctx := context.Background()
	vac, err := e.vacations.Create(ctx, vacationdomain.CreateVacationRequest{CustomerID: customerID})
	require.NoError(t, err)

	for _, status := range []vacationdomain.VacationStatus{
		vacationdomain.VacationStatusApproved,
		vacationdomain.VacationStatusActive,
	} {
		vac, err = e.vacations.UpdateStatus(ctx, vacationdomain.UpdateVacationStatusRequest{
			VacationID: vac.ID,
			Status:     status,
		})
		require.NoError(t, err)
	}
}

func TestRunAllocatesVerifiedCustomersAndExcludesVacations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	env.createCategory(t, "C2", 3.5)

	custA := env.createVerifiedCustomer(t, "F1", "Customer A", "R1")
	custB := env.createVerifiedCustomer(t, "F1", "Customer B", "C2")
	env.startActiveVacation(t, custB.ID)

	env.addReading(t, "F1", 60)
	env.addReading(t, "F1", 40)

	summary, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalCustomers)
	assert.Equal(t, 1, summary.BilledCustomers)
	assert.Equal(t, 1, summary.ExcludedVacation)
	assert.Equal(t, 0, summary.FailedCustomers)
	assert.Empty(t, summary.Failures)
	assert.Equal(t, 100.0, summary.TotalHours)

	resp, err := env.bills.ListByCustomer(ctx, billingdomain.ListBillByCustomerRequest{CustomerID: custA.ID})
	require.NoError(t, err)
	require.Len(t, resp.Bills, 1)

	bill := resp.Bills[0]
	assert.Equal(t, "2025-07", bill.Period)
	assert.Equal(t, 100.0, bill.TotalHours)
	assert.Equal(t, 1.0, bill.LoadFactor)
	assert.Equal(t, 100.0, bill.AllocatedEnergy)
	assert.Equal(t, 45.0, bill.TariffRate)
	assert.Equal(t, 4500.0, bill.Amount)

	respB, err := env.bills.ListByCustomer(ctx, billingdomain.ListBillByCustomerRequest{CustomerID: custB.ID})
	require.NoError(t, err)
	assert.Empty(t, respB.Bills)
}

func TestRunZeroReadingsProducesZeroAmountBills(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	cust := env.createVerifiedCustomer(t, "F1", "Customer A", "R1")

	summary, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.BilledCustomers)
	assert.Equal(t, 0.0, summary.TotalHours)

	resp, err := env.bills.ListByCustomer(ctx, billingdomain.ListBillByCustomerRequest{CustomerID: cust.ID})
	require.NoError(t, err)
	require.Len(t, resp.Bills, 1)
	assert.Equal(t, 0.0, resp.Bills[0].AllocatedEnergy)
	assert.Equal(t, 0.0, resp.Bills[0].Amount)
}

func TestRunNoEligibleCustomers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.addReading(t, "F1", 50)

	summary, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalCustomers)
	assert.Equal(t, 0, summary.BilledCustomers)
	assert.Equal(t, 0, summary.ExcludedVacation)
}

func TestRunSkipsUnverifiedCustomers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	env.createVerifiedCustomer(t, "F1", "Verified", "R1")
	env.insertRawCustomer(t, "F1", "Unverified", "R1", false)
	env.addReading(t, "F1", 10)

	summary, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalCustomers)
	assert.Equal(t, 1, summary.BilledCustomers)
}

func TestRunCollectsUnknownCategoryAndContinues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	good := env.createVerifiedCustomer(t, "F1", "Good", "R1")
	orphan := env.insertRawCustomer(t, "F1", "Orphan", "ZZ", true)
	env.addReading(t, "F1", 100)

	summary, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalCustomers)
	assert.Equal(t, 1, summary.BilledCustomers)
	assert.Equal(t, 1, summary.FailedCustomers)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, orphan.ID.String(), summary.Failures[0].CustomerID)
	assert.Equal(t, domain.FailureUnknownCategory, summary.Failures[0].Reason)

	resp, err := env.bills.ListByCustomer(ctx, billingdomain.ListBillByCustomerRequest{CustomerID: good.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Bills, 1)
}

func TestRunRerunReportsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	cust := env.createVerifiedCustomer(t, "F1", "Customer A", "R1")
	env.addReading(t, "F1", 100)

	first, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.BilledCustomers)

	second, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	assert.Equal(t, 0, second.BilledCustomers)
	assert.Equal(t, 1, second.DuplicateBills)
	assert.Equal(t, 1, second.FailedCustomers)
	require.Len(t, second.Failures, 1)
	assert.Equal(t, domain.FailureDuplicateBill, second.Failures[0].Reason)

	// Still exactly one bill for the customer.
	resp, err := env.bills.ListByCustomer(ctx, billingdomain.ListBillByCustomerRequest{CustomerID: cust.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Bills, 1)
}

func TestRunAllowsDifferentPeriods(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	cust := env.createVerifiedCustomer(t, "F1", "Customer A", "R1")
	env.addReading(t, "F1", 100)

	_, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	summary, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-08"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BilledCustomers)

	resp, err := env.bills.ListByCustomer(ctx, billingdomain.ListBillByCustomerRequest{CustomerID: cust.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Bills, 2)
}

func TestRunTariffOverride(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	cust := env.createVerifiedCustomer(t, "F1", "Customer A", "R1")
	env.addReading(t, "F1", 100)

	tariff := 60.0
	summary, err := env.engine.Run(ctx, domain.RunRequest{
		FeederCode: "F1",
		Period:     "2025-07",
		TariffRate: &tariff,
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, summary.TariffRate)

	resp, err := env.bills.ListByCustomer(ctx, billingdomain.ListBillByCustomerRequest{CustomerID: cust.ID})
	require.NoError(t, err)
	require.Len(t, resp.Bills, 1)
	assert.Equal(t, 6000.0, resp.Bills[0].Amount)
}

func TestRunRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.Run(ctx, domain.RunRequest{FeederCode: "", Period: "2025-07"})
	assert.ErrorIs(t, err, domain.ErrInvalidFeeder)

	_, err = env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "July 2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	badTariff := -1.0
	_, err = env.engine.Run(ctx, domain.RunRequest{
		FeederCode: "F1",
		Period:     "2025-07",
		TariffRate: &badTariff,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTariff)
}

func TestRunUnknownFeeder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Run(context.Background(), domain.RunRequest{FeederCode: "NOPE", Period: "2025-07"})
	assert.ErrorIs(t, err, domain.ErrFeederNotFound)
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")

	_, ok, err := env.locker.TryLock(ctx, "allocation:F1:2025-07", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
}

func TestRunRecordsAuditTrail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createFeeder(t, "F1")
	env.createCategory(t, "R1", 1.0)
	env.createVerifiedCustomer(t, "F1", "Customer A", "R1")
	env.addReading(t, "F1", 100)

	done, err := env.engine.HasCompletedRun(ctx, "F1", "2025-07")
	require.NoError(t, err)
	assert.False(t, done)

	_, err = env.engine.Run(ctx, domain.RunRequest{FeederCode: "F1", Period: "2025-07"})
	require.NoError(t, err)

	done, err = env.engine.HasCompletedRun(ctx, "F1", "2025-07")
	require.NoError(t, err)
	assert.True(t, done)

	resp, err := env.engine.ListRuns(ctx, domain.ListRunRequest{FeederCode: "F1"})
	require.NoError(t, err)
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, domain.RunStatusCompleted, resp.Runs[0].Status)
	assert.Equal(t, 1, resp.Runs[0].BilledCustomers)
}
