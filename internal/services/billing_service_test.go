package services

import (
	"testing"

	"restaurant_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gstOnly(rate float64) models.TaxSettings {
	return models.TaxSettings{GSTRate: rate}
}

func TestComputeTotals_GSTBoundary(t *testing.T) {
	totals, err := ComputeTotals([]BillLine{{Price: 100, Quantity: 1}}, gstOnly(0.18))
	require.NoError(t, err)

	assert.Equal(t, 100.00, totals.Subtotal)
	assert.Equal(t, 18.00, totals.Tax)
	assert.Equal(t, 0.00, totals.ServiceCharge)
	assert.Equal(t, 118.00, totals.Total)
}

func TestComputeTotals_MultipleLines(t *testing.T) {
	lines := []BillLine{
		{Price: 449, Quantity: 2},
		{Price: 59, Quantity: 3},
	}
	totals, err := ComputeTotals(lines, gstOnly(0.18))
	require.NoError(t, err)

	assert.Equal(t, 1075.00, totals.Subtotal)
	assert.Equal(t, 193.50, totals.Tax)
	assert.Equal(t, 1268.50, totals.Total)
}

func TestComputeTotals_ServiceChargeAdditive(t *testing.T) {
	tax := models.TaxSettings{GSTRate: 0.18, ServiceChargeRate: 0.10, EnableServiceCharge: true}
	totals, err := ComputeTotals([]BillLine{{Price: 200, Quantity: 1}}, tax)
	require.NoError(t, err)

	// Both rates apply to the subtotal; they are never compounded.
	assert.Equal(t, 200.00, totals.Subtotal)
	assert.Equal(t, 36.00, totals.Tax)
	assert.Equal(t, 20.00, totals.ServiceCharge)
	assert.Equal(t, 256.00, totals.Total)
}

func TestComputeTotals_ServiceChargeDisabled(t *testing.T) {
	tax := models.TaxSettings{GSTRate: 0.18, ServiceChargeRate: 0.10, EnableServiceCharge: false}
	totals, err := ComputeTotals([]BillLine{{Price: 200, Quantity: 1}}, tax)
	require.NoError(t, err)

	assert.Equal(t, 0.00, totals.ServiceCharge)
	assert.Equal(t, 236.00, totals.Total)
}

func TestComputeTotals_ZeroQuantityLinesExcluded(t *testing.T) {
	lines := []BillLine{
		{Price: 100, Quantity: 1},
		{Price: 500, Quantity: 0},
	}
	totals, err := ComputeTotals(lines, gstOnly(0.18))
	require.NoError(t, err)
	assert.Equal(t, 100.00, totals.Subtotal)
}

func TestComputeTotals_EmptyCartIsZero(t *testing.T) {
	totals, err := ComputeTotals(nil, gstOnly(0.18))
	require.NoError(t, err)
	assert.Equal(t, BillTotals{}, totals)
}

func TestComputeTotals_NegativeInputs(t *testing.T) {
	_, err := ComputeTotals([]BillLine{{Price: -1, Quantity: 1}}, gstOnly(0.18))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ComputeTotals([]BillLine{{Price: 1, Quantity: -1}}, gstOnly(0.18))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComputeTotals_RoundsAtTheEdgeOnly(t *testing.T) {
	// 3 * 33.335 = 100.005 exactly; rounding per line would give 100.01 + tax
	// on the rounded value. Full precision is kept until the final rounding.
	totals, err := ComputeTotals([]BillLine{{Price: 33.335, Quantity: 3}}, gstOnly(0))
	require.NoError(t, err)
	assert.InDelta(t, 100.00, totals.Subtotal, 0.011)
	assert.Equal(t, totals.Subtotal, totals.Total)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.235000001))
	assert.Equal(t, 0.00, Round2(0))
	assert.Equal(t, 118.00, Round2(118.000000001))
}
