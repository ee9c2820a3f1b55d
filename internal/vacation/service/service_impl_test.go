package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/voltra/internal/vacation/domain"
	"github.com/smallbiznis/voltra/internal/vacation/repository"
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

	require.NoError(t, gdb.AutoMigrate(&domain.Vacation{}))

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

func createWithStatus(t *testing.T, svc domain.Service, customerID snowflake.ID, statuses ...domain.VacationStatus) domain.Vacation {
	t.Helper()
	vacation, err := svc.Create(context.Background(), domain.CreateVacationRequest{CustomerID: customerID})
	require.NoError(t, err)
	for _, status := range statuses {
		vacation, err = svc.UpdateStatus(context.Background(), domain.UpdateVacationStatusRequest{
			VacationID: vacation.ID,
			Status:     status,
		})
		require.NoError(t, err)
	}
	return vacation
}

func TestCreateStartsPending(t *testing.T) {
	svc, genID := newTestService(t)

	vacation, err := svc.Create(context.Background(), domain.CreateVacationRequest{CustomerID: genID.Generate()})
	require.NoError(t, err)
	assert.Equal(t, domain.VacationStatusPending, vacation.Status)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	svc, genID := newTestService(t)

	vacation := createWithStatus(t, svc, genID.Generate(),
		domain.VacationStatusApproved,
		domain.VacationStatusActive,
		domain.VacationStatusCompleted,
	)
	assert.Equal(t, domain.VacationStatusCompleted, vacation.Status)
}

func TestUpdateStatusRejectsSkippedSteps(t *testing.T) {
	svc, genID := newTestService(t)

	vacation, err := svc.Create(context.Background(), domain.CreateVacationRequest{CustomerID: genID.Generate()})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), domain.UpdateVacationStatusRequest{
		VacationID: vacation.ID,
		Status:     domain.VacationStatusActive,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), domain.UpdateVacationStatusRequest{
		VacationID: vacation.ID,
		Status:     domain.VacationStatusCompleted,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	svc, genID := newTestService(t)

	vacation, err := svc.Create(context.Background(), domain.CreateVacationRequest{CustomerID: genID.Generate()})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), domain.UpdateVacationStatusRequest{
		VacationID: vacation.ID,
		Status:     domain.VacationStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VacationStatusPending, updated.Status)
}

func TestActiveCustomerIDsOnlyCountsActive(t *testing.T) {
	svc, genID := newTestService(t)
	ctx := context.Background()

	onVacation := genID.Generate()
	approvedOnly := genID.Generate()
	cameBack := genID.Generate()
	neverFiled := genID.Generate()

	createWithStatus(t, svc, onVacation, domain.VacationStatusApproved, domain.VacationStatusActive)
	createWithStatus(t, svc, approvedOnly, domain.VacationStatusApproved)
	createWithStatus(t, svc, cameBack,
		domain.VacationStatusApproved,
		domain.VacationStatusActive,
		domain.VacationStatusCompleted,
	)

	active, err := svc.ActiveCustomerIDs(ctx, []snowflake.ID{onVacation, approvedOnly, cameBack, neverFiled})
	require.NoError(t, err)

	assert.Len(t, active, 1)
	assert.Contains(t, active, onVacation)
}

func TestActiveCustomerIDsEmptyInput(t *testing.T) {
	svc, _ := newTestService(t)

	active, err := svc.ActiveCustomerIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, active)
}
