package services

import (
	"errors"
	"fmt"
	"math"

	"restaurant_pos_backend/internal/models"
)

var (
	// ErrValidation covers malformed input: negative prices or quantities, empty carts,
	// unknown enum values. Always surfaced to the caller, never swallowed.
	ErrValidation = errors.New("validation error")
)

// BillLine is one priced cart line as seen by the billing calculator.
type BillLine struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// BillTotals is the computed bill breakdown. All fields are rounded to 2
// decimals; tax and service charge are each computed off the subtotal
// independently and summed, never compounded.
type BillTotals struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	ServiceCharge float64 `json:"service_charge"`
	Total         float64 `json:"total"`
}

// Round2 rounds a monetary value to 2 decimal places. Applied at the point of
// storage/display only; intermediate sums keep full precision so repeated
// additions do not compound rounding error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals computes subtotal, GST and total for a set of cart lines.
// Pure function: no side effects, no reads beyond its arguments.
// Zero-quantity lines are excluded (the cart contract removes them before
// checkout); a negative price or quantity is a data error.
func ComputeTotals(lines []BillLine, tax models.TaxSettings) (BillTotals, error) {
	var subtotal float64
	for i, line := range lines {
		if line.Price < 0 {
			return BillTotals{}, fmt.Errorf("%w: line %d has negative price %.2f", ErrValidation, i, line.Price)
		}
		if line.Quantity < 0 {
			return BillTotals{}, fmt.Errorf("%w: line %d has negative quantity %d", ErrValidation, i, line.Quantity)
		}
		if line.Quantity == 0 {
			continue
		}
		subtotal += line.Price * float64(line.Quantity)
	}

	gst := subtotal * tax.GSTRate
	var serviceCharge float64
	if tax.EnableServiceCharge {
		serviceCharge = subtotal * tax.ServiceChargeRate
	}
	total := subtotal + gst + serviceCharge

	return BillTotals{
		Subtotal:      Round2(subtotal),
		Tax:           Round2(gst),
		ServiceCharge: Round2(serviceCharge),
		Total:         Round2(total),
	}, nil
}
