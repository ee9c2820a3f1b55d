package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/voltra/internal/customer/domain"
	"github.com/stretchr/testify/assert"
)

func TestSplitEligibleDeduplicatesAndOrders(t *testing.T) {
	verified := []customerdomain.Customer{
		{ID: snowflake.ID(30)},
		{ID: snowflake.ID(10)},
		{ID: snowflake.ID(30)},
		{ID: snowflake.ID(20)},
	}

	eligible, excluded := splitEligible(verified, nil)

	assert.Equal(t, 0, excluded)
	ids := make([]int64, 0, len(eligible))
	for _, c := range eligible {
		ids = append(ids, int64(c.ID))
	}
	assert.Equal(t, []int64{10, 20, 30}, ids)
}

func TestSplitEligibleExcludesVacationers(t *testing.T) {
	verified := []customerdomain.Customer{
		{ID: snowflake.ID(1)},
		{ID: snowflake.ID(2)},
		{ID: snowflake.ID(2)},
		{ID: snowflake.ID(3)},
	}
	onVacation := map[snowflake.ID]struct{}{
		snowflake.ID(2): {},
	}

	eligible, excluded := splitEligible(verified, onVacation)

	// The duplicate vacationing customer counts once.
	assert.Equal(t, 1, excluded)
	assert.Len(t, eligible, 2)
}

func TestSplitEligibleEmptyInput(t *testing.T) {
	eligible, excluded := splitEligible(nil, nil)
	assert.Empty(t, eligible)
	assert.Equal(t, 0, excluded)
}
