package server

import (
	"fmt"
	"net/http"
	"testing"

	allocationdomain "github.com/smallbiznis/voltra/internal/allocation/domain"
	billingdomain "github.com/smallbiznis/voltra/internal/billing/domain"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorValidation(t *testing.T) {
	status, payload := mapError(allocationdomain.ErrInvalidPeriod)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)

	status, payload = mapError(allocationdomain.ErrInvalidTariff)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_tariff", payload.Errors[0].Code)

	status, _ = mapError(lcdomain.ErrInvalidLoadFactor)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMapErrorNotFound(t *testing.T) {
	status, payload := mapError(allocationdomain.ErrFeederNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", payload.Type)

	status, _ = mapError(customerdomain.ErrCustomerNotFound)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = mapError(lcdomain.ErrCategoryNotFound)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMapErrorConflict(t *testing.T) {
	status, payload := mapError(allocationdomain.ErrRunInProgress)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", payload.Type)

	status, _ = mapError(billingdomain.ErrDuplicateBill)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = mapError(feederdomain.ErrFeederExists)
	assert.Equal(t, http.StatusConflict, status)
}

func TestMapErrorStorageUnavailable(t *testing.T) {
	wrapped := fmt.Errorf("aggregate supply hours: %w: connection refused", allocationdomain.ErrStorageUnavailable)

	status, payload := mapError(wrapped)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "service_unavailable", payload.Type)
}

func TestMapErrorDefaultsToInternal(t *testing.T) {
	status, payload := mapError(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
}

func TestClassifyErrorForLog(t *testing.T) {
	errType, errCode := classifyErrorForLog(allocationdomain.ErrInvalidPeriod)
	assert.Equal(t, "validation_error", errType)
	assert.Equal(t, "invalid_period", errCode)

	errType, errCode = classifyErrorForLog(allocationdomain.ErrRunInProgress)
	assert.Equal(t, "conflict", errType)
	assert.Equal(t, "conflict", errCode)
}
