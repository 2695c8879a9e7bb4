package repositories

import (
	"testing"

	"restaurant_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReportRepository_StoresDetachedCopies(t *testing.T) {
	repo := NewMemoryReportRepository()
	report := &models.DailyReport{
		DateKey:             "2026-03-14",
		TotalRevenue:        600,
		TotalOrders:         3,
		PaymentMethodCounts: map[string]int{"cash": 2, "card": 1},
		PopularItems:        []models.PopularItem{{Name: "Kulfi", Quantity: 4}},
		HourlyBuckets:       make([]models.HourlyBucket, 24),
	}
	require.NoError(t, repo.Upsert(report))

	// Caller-side mutation after the write must not reach the stored record.
	report.PaymentMethodCounts["cash"] = 99
	report.PopularItems[0].Quantity = 99
	report.HourlyBuckets[12].Orders = 99

	stored, err := repo.GetByDateKey("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.PaymentMethodCounts["cash"])
	assert.Equal(t, 4, stored.PopularItems[0].Quantity)
	assert.Equal(t, 0, stored.HourlyBuckets[12].Orders)

	// Reads hand back copies too.
	stored.PaymentMethodCounts["cash"] = 77
	again, err := repo.GetByDateKey("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2, again.PaymentMethodCounts["cash"])
}
