package services

import (
	"fmt"
	"testing"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportEnv struct {
	orders    *repositories.MemoryOrderRepository
	reports   *repositories.MemoryReportRepository
	inventory *repositories.MemoryInventoryRepository
	tables    *repositories.MemoryTableRepository
	svc       ReportService
}

func newReportEnv(t *testing.T, tableCount int) *reportEnv {
	t.Helper()
	env := &reportEnv{
		orders:    repositories.NewMemoryOrderRepository(),
		reports:   repositories.NewMemoryReportRepository(),
		inventory: repositories.NewMemoryInventoryRepository(),
		tables:    repositories.NewMemoryTableRepository(),
	}
	for id := 1; id <= tableCount; id++ {
		table := models.Table{ID: int64(id), Status: string(models.TableStatusAvailable), Capacity: 4}
		require.NoError(t, env.tables.Create(&table))
	}
	env.svc = NewReportService(env.orders, env.reports, NewTableService(env.tables), NewInventoryService(env.inventory))
	return env
}

var orderSeq int

// storeOrder writes a minimal completed order directly into the repository.
func (e *reportEnv) storeOrder(t *testing.T, dateKey string, hour int, total float64, method string, items ...models.OrderLine) *models.Order {
	t.Helper()
	orderSeq++
	day, err := time.ParseInLocation(models.DateKeyLayout, dateKey, time.Local)
	require.NoError(t, err)
	order := models.Order{
		ID:            fmt.Sprintf("order_%d_%04d", day.UnixMilli(), orderSeq),
		OrderCode:     fmt.Sprintf("#%06d", orderSeq),
		Subtotal:      total,
		Total:         total,
		PaymentMethod: method,
		Status:        models.OrderStatusCompleted,
		OrderTime:     day.Add(time.Duration(hour) * time.Hour),
		DateKey:       dateKey,
		Items:         items,
	}
	require.NoError(t, e.orders.CreateWithItems(&order))
	return &order
}

const testDay = "2026-03-14"

func TestRecompute_Aggregates(t *testing.T) {
	env := newReportEnv(t, 4)
	env.storeOrder(t, testDay, 12, 100, "cash",
		models.OrderLine{MenuItemID: 1, Name: "Biryani", Quantity: 2})
	env.storeOrder(t, testDay, 12, 200, "cash",
		models.OrderLine{MenuItemID: 1, Name: "Biryani", Quantity: 1},
		models.OrderLine{MenuItemID: 2, Name: "Kulfi", Quantity: 4})
	env.storeOrder(t, testDay, 19, 300, "card",
		models.OrderLine{MenuItemID: 3, Name: "Masala Chai", Quantity: 3})

	report, err := env.svc.Recompute(testDay)
	require.NoError(t, err)

	assert.Equal(t, 600.00, report.TotalRevenue)
	assert.Equal(t, 3, report.TotalOrders)
	assert.Equal(t, 200.00, report.AvgOrderValue)
	assert.Equal(t, map[string]int{"cash": 2, "card": 1}, report.PaymentMethodCounts)

	require.Len(t, report.HourlyBuckets, 24)
	assert.Equal(t, 12, report.HourlyBuckets[12].Hour)
	assert.Equal(t, 2, report.HourlyBuckets[12].Orders)
	assert.Equal(t, 300.00, report.HourlyBuckets[12].Revenue)
	assert.Equal(t, 1, report.HourlyBuckets[19].Orders)
	assert.Equal(t, 0, report.HourlyBuckets[0].Orders)

	require.Len(t, report.PopularItems, 3)
	assert.Equal(t, models.PopularItem{Name: "Kulfi", Quantity: 4}, report.PopularItems[0])
	// Biryani and Masala Chai are tied at 3; first-sold wins the tie.
	assert.Equal(t, models.PopularItem{Name: "Biryani", Quantity: 3}, report.PopularItems[1])
	assert.Equal(t, models.PopularItem{Name: "Masala Chai", Quantity: 3}, report.PopularItems[2])
}

func TestRecompute_SkipsCancelledOrders(t *testing.T) {
	env := newReportEnv(t, 4)
	env.storeOrder(t, testDay, 13, 250, "upi")
	cancelled := env.storeOrder(t, testDay, 14, 999, "cash")
	require.NoError(t, env.orders.UpdateStatus(cancelled.ID, models.OrderStatusCancelled, time.Now()))

	report, err := env.svc.Recompute(testDay)
	require.NoError(t, err)
	assert.Equal(t, 250.00, report.TotalRevenue)
	assert.Equal(t, 1, report.TotalOrders)
	assert.NotContains(t, report.PaymentMethodCounts, "cash")
}

func TestRecompute_TopTenPopularItems(t *testing.T) {
	env := newReportEnv(t, 4)
	lines := make([]models.OrderLine, 0, 12)
	for i := 1; i <= 12; i++ {
		lines = append(lines, models.OrderLine{
			MenuItemID: int64(i),
			Name:       fmt.Sprintf("Item %02d", i),
			Quantity:   i, // item 12 sells most
		})
	}
	env.storeOrder(t, testDay, 11, 500, "cash", lines...)

	report, err := env.svc.Recompute(testDay)
	require.NoError(t, err)
	require.Len(t, report.PopularItems, 10)
	assert.Equal(t, "Item 12", report.PopularItems[0].Name)
	assert.Equal(t, "Item 03", report.PopularItems[9].Name)
}

func TestRecompute_Idempotent(t *testing.T) {
	env := newReportEnv(t, 4)
	env.storeOrder(t, testDay, 9, 150, "cash",
		models.OrderLine{MenuItemID: 1, Name: "Biryani", Quantity: 1})

	first, err := env.svc.Recompute(testDay)
	require.NoError(t, err)
	second, err := env.svc.Recompute(testDay)
	require.NoError(t, err)

	first.GeneratedAt = time.Time{}
	second.GeneratedAt = time.Time{}
	assert.Equal(t, first, second)
}

func TestRecompute_EmptyDay(t *testing.T) {
	env := newReportEnv(t, 4)
	report, err := env.svc.Recompute(testDay)
	require.NoError(t, err)
	assert.Equal(t, 0.00, report.TotalRevenue)
	assert.Equal(t, 0, report.TotalOrders)
	assert.Equal(t, 0.00, report.AvgOrderValue)
	assert.Empty(t, report.PopularItems)
	assert.Len(t, report.HourlyBuckets, 24)
}

func TestRecompute_ReadsFloorAndStockAtCallTime(t *testing.T) {
	env := newReportEnv(t, 4)
	low := models.InventoryRecord{ItemID: 7, CurrentStock: 3, MinStock: 10, MaxStock: 50, Unit: "pieces"}
	require.NoError(t, env.inventory.Upsert(&low))

	tableService := NewTableService(env.tables)
	_, err := tableService.AssignOrder(1, "order_1_0001", 100, nil)
	require.NoError(t, err)

	report, err := env.svc.Recompute(testDay)
	require.NoError(t, err)
	assert.Equal(t, 25.00, report.TableOccupancyPercent)
	require.Len(t, report.LowStockAlerts, 1)
	assert.Equal(t, int64(7), report.LowStockAlerts[0].ItemID)
}

func TestRecompute_RejectsBadDateKey(t *testing.T) {
	env := newReportEnv(t, 4)
	_, err := env.svc.Recompute("14-03-2026")
	assert.ErrorIs(t, err, ErrInvalidDateKey)
}

func TestGetReport_GeneratesOnFirstAccess(t *testing.T) {
	env := newReportEnv(t, 4)
	env.storeOrder(t, testDay, 10, 120, "card")

	_, err := env.reports.GetByDateKey(testDay)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	report, err := env.svc.GetReport(testDay)
	require.NoError(t, err)
	assert.Equal(t, 120.00, report.TotalRevenue)

	// Now stored; a second read returns the same snapshot.
	stored, err := env.reports.GetByDateKey(testDay)
	require.NoError(t, err)
	assert.Equal(t, report.GeneratedAt, stored.GeneratedAt)
}

func TestSummary_Range(t *testing.T) {
	env := newReportEnv(t, 4)
	env.storeOrder(t, "2026-03-13", 12, 100, "cash")
	env.storeOrder(t, "2026-03-14", 12, 200, "card")
	env.storeOrder(t, "2026-03-15", 12, 300, "cash")
	env.storeOrder(t, "2026-03-20", 12, 999, "cash") // outside the range

	summary, err := env.svc.Summary("2026-03-13", "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 600.00, summary.TotalRevenue)
	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 200.00, summary.AvgOrderValue)
	assert.Equal(t, map[string]int{"cash": 2, "card": 1}, summary.PaymentMethodCounts)
}

func TestSummary_RejectsReversedRange(t *testing.T) {
	env := newReportEnv(t, 4)
	_, err := env.svc.Summary("2026-03-15", "2026-03-13")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPurgeOrdersBefore(t *testing.T) {
	env := newReportEnv(t, 4)
	oldKey := models.DateKeyFor(time.Now().AddDate(0, 0, -40))
	recentKey := models.DateKeyFor(time.Now())
	env.storeOrder(t, oldKey, 12, 100, "cash")
	env.storeOrder(t, recentKey, 12, 200, "cash")

	deleted, err := env.svc.PurgeOrdersBefore(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := env.orders.GetByDateRange("0000-01-01", "9999-12-31")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, recentKey, remaining[0].DateKey)

	_, err = env.svc.PurgeOrdersBefore(0)
	assert.ErrorIs(t, err, ErrValidation)
}
