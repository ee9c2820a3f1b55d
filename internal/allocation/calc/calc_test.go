package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeResidentialBaseline(t *testing.T) {
	res, err := Compute(Input{SupplyHours: 100, LoadFactor: 1.0, TariffRate: 45})
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.LoadFactor)
	assert.Equal(t, 100.0, res.AllocatedEnergy)
	assert.Equal(t, 4500.0, res.Amount)
}

func TestComputeCommercialFactor(t *testing.T) {
	res, err := Compute(Input{SupplyHours: 100, LoadFactor: 3.5, TariffRate: 45})
	require.NoError(t, err)

	assert.Equal(t, 350.0, res.AllocatedEnergy)
	assert.Equal(t, 15750.0, res.Amount)
}

func TestComputeZeroSupplyHours(t *testing.T) {
	res, err := Compute(Input{SupplyHours: 0, LoadFactor: 2.0, TariffRate: 45})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.AllocatedEnergy)
	assert.Equal(t, 0.0, res.Amount)
}

func TestComputeRejectsNegativeSupplyHours(t *testing.T) {
	_, err := Compute(Input{SupplyHours: -1, LoadFactor: 1.0, TariffRate: 45})
	assert.ErrorIs(t, err, ErrInvalidSupplyHours)
}

func TestComputeRejectsNonPositiveLoadFactor(t *testing.T) {
	_, err := Compute(Input{SupplyHours: 10, LoadFactor: 0, TariffRate: 45})
	assert.ErrorIs(t, err, ErrInvalidLoadFactor)
}

func TestComputeRejectsNonPositiveTariff(t *testing.T) {
	_, err := Compute(Input{SupplyHours: 10, LoadFactor: 1.0, TariffRate: 0})
	assert.ErrorIs(t, err, ErrInvalidTariff)

	_, err = Compute(Input{SupplyHours: 10, LoadFactor: 1.0, TariffRate: -45})
	assert.ErrorIs(t, err, ErrInvalidTariff)
}
