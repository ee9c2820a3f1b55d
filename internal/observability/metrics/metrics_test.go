package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesAllowsKnownKeys(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("feeder_code", "FDR-001"),
		attribute.String("reason", "duplicate_bill"),
	)

	assert.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("feeder_code"), attrs[0].Key)
}

func TestFilterAttributesStripsHighCardinalityKeys(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("customer_id", "1234567890"),
		attribute.String("sql", "SELECT 1"),
		attribute.String("endpoint", "/api/billing/runs"),
	)

	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("endpoint"), attrs[0].Key)
}
