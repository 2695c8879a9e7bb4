package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderEnv wires the full checkout dependency graph over in-memory stores.
type orderEnv struct {
	orders    *repositories.MemoryOrderRepository
	menu      *repositories.MemoryMenuRepository
	inventory *repositories.MemoryInventoryRepository
	tables    *repositories.MemoryTableRepository
	reports   *repositories.MemoryReportRepository
	settings  *repositories.MemorySettingsRepository

	orderService     OrderService
	tableService     TableService
	inventoryService InventoryService
	reportService    ReportService
	settingsService  SettingsService
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()
	env := &orderEnv{
		orders:    repositories.NewMemoryOrderRepository(),
		menu:      repositories.NewMemoryMenuRepository(),
		inventory: repositories.NewMemoryInventoryRepository(),
		tables:    repositories.NewMemoryTableRepository(),
		reports:   repositories.NewMemoryReportRepository(),
		settings:  repositories.NewMemorySettingsRepository(),
	}
	env.inventoryService = NewInventoryService(env.inventory)
	env.tableService = NewTableService(env.tables)
	env.settingsService = NewSettingsService(env.settings, env.tableService)
	env.reportService = NewReportService(env.orders, env.reports, env.tableService, env.inventoryService)
	env.orderService = NewOrderService(env.orders, env.menu, env.inventoryService, env.tableService, env.settingsService, env.reportService)

	for id := 1; id <= 4; id++ {
		table := models.Table{ID: int64(id), Status: string(models.TableStatusAvailable), Capacity: 4}
		require.NoError(t, env.tables.Create(&table))
	}
	return env
}

func (e *orderEnv) addMenuItem(t *testing.T, name string, price float64, available bool) int64 {
	t.Helper()
	item := models.MenuItem{Name: name, Category: "Main Course", Price: price, IsAvailable: available}
	id, err := e.menu.Create(&item)
	require.NoError(t, err)
	return id
}

func (e *orderEnv) trackStock(t *testing.T, itemID int64, stock, minStock int) {
	t.Helper()
	rec := models.InventoryRecord{ItemID: itemID, CurrentStock: stock, MinStock: minStock, MaxStock: stock * 2, Unit: "portions"}
	require.NoError(t, e.inventory.Upsert(&rec))
}

func float(v float64) *float64 { return &v }

func TestFinalizeOrder_CashWithChange(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Dal Makhani", 100, true)

	tendered := 150.0
	order, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod:  string(models.PaymentCash),
		AmountTendered: &tendered,
		Items:          []CartLineRequest{{MenuItemID: itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.00, order.Subtotal)
	assert.Equal(t, 18.00, order.Tax)
	assert.Equal(t, 118.00, order.Total)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.ChangeDue)
	assert.Equal(t, 32.00, *order.ChangeDue)
	assert.Equal(t, models.DateKeyFor(time.Now()), order.DateKey)

	assert.True(t, strings.HasPrefix(order.ID, "order_"))
	assert.True(t, strings.HasPrefix(order.OrderCode, "#"))
	assert.Len(t, order.OrderCode, 7)

	stored, err := env.orderService.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, stored.Total)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Dal Makhani", stored.Items[0].Name)
}

func TestFinalizeOrder_InsufficientCash(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Biryani", 100, true)

	req := FinalizeOrderRequest{
		PaymentMethod:  string(models.PaymentCash),
		AmountTendered: float(100), // total is 118 with GST
		Items:          []CartLineRequest{{MenuItemID: itemID, Quantity: 1}},
	}
	_, err := env.orderService.FinalizeOrder(req)
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// Missing tender on a cash order fails the same way.
	req.AmountTendered = nil
	_, err = env.orderService.FinalizeOrder(req)
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// Nothing was recorded.
	orders, total, err := env.orderService.GetOrders(models.OrderFilters{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Zero(t, total)
}

func TestFinalizeOrder_NonCashSkipsTenderCheck(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Paneer Tikka", 279, true)

	order, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentUPI),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Nil(t, order.AmountTendered)
	assert.Nil(t, order.ChangeDue)
}

func TestFinalizeOrder_RejectsUnknownPaymentMethod(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Kulfi", 99, true)

	_, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: "cheque",
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFinalizeOrder_CartValidation(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Masala Chai", 59, true)
	unavailableID := env.addMenuItem(t, "Fish Curry", 399, false)

	_, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{},
	})
	assert.ErrorIs(t, err, ErrValidation)

	// A cart of only zero-quantity lines is empty after exclusion.
	_, err = env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: -1}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: 404, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	_, err = env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: unavailableID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestFinalizeOrder_DecrementsTrackedStock(t *testing.T) {
	env := newOrderEnv(t)
	trackedID := env.addMenuItem(t, "Biryani", 379, true)
	untrackedID := env.addMenuItem(t, "Garlic Naan", 60, true)
	env.trackStock(t, trackedID, 10, 2)

	_, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items: []CartLineRequest{
			{MenuItemID: trackedID, Quantity: 3},
			{MenuItemID: untrackedID, Quantity: 2}, // no inventory record, skipped
		},
	})
	require.NoError(t, err)

	rec, err := env.inventoryService.GetByItemID(trackedID)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.CurrentStock)
}

// The enable_inventory toggle is a display preference for settings consumers;
// the ledger itself stays live so finalize and cancel always move stock
// symmetrically.
func TestFinalizeOrder_StockStaysSymmetricWithInventoryToggleOff(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Biryani", 379, true)
	env.trackStock(t, itemID, 10, 2)

	_, err := env.settingsService.UpdateSection(models.SettingKeyOperations, json.RawMessage(`{"enable_inventory":false}`))
	require.NoError(t, err)

	order, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	rec, err := env.inventoryService.GetByItemID(itemID)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.CurrentStock)

	_, err = env.orderService.CancelOrder(order.ID)
	require.NoError(t, err)

	rec, err = env.inventoryService.GetByItemID(itemID)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.CurrentStock)
}

func TestFinalizeOrder_ReleasesDineInTable(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Dal Makhani", 299, true)
	tableID := int64(3)
	_, err := env.tableService.AssignOrder(tableID, "order_0_0000", 299, nil)
	require.NoError(t, err)

	_, err = env.orderService.FinalizeOrder(FinalizeOrderRequest{
		TableID:       &tableID,
		PaymentMethod: string(models.PaymentCash),
		AmountTendered: float(400),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	table, err := env.tableService.GetTableByID(tableID)
	require.NoError(t, err)
	assert.Equal(t, string(models.TableStatusAvailable), table.Status)
	assert.Nil(t, table.CurrentOrderID)
}

func TestFinalizeOrder_RegeneratesDailyReport(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Mango Lassi", 149, true)

	order, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	report, err := env.reports.GetByDateKey(order.DateKey)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalOrders)
	assert.Equal(t, order.Total, report.TotalRevenue)
}

func TestFinalizeOrder_PersistenceFailureLeavesStockUntouched(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Biryani", 379, true)
	env.trackStock(t, itemID, 10, 2)
	env.orders.FailWrites = true

	_, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 3}},
	})
	assert.ErrorIs(t, err, ErrOrderPersistence)

	rec, err := env.inventoryService.GetByItemID(itemID)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.CurrentStock)
}

func TestFinalizeOrder_SnapshotSurvivesCatalogEdits(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Paneer Butter Masala", 349, true)

	order, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Reprice and rename the catalog item after checkout.
	item, err := env.menu.GetByID(itemID)
	require.NoError(t, err)
	item.Name = "Paneer Special"
	item.Price = 999
	require.NoError(t, env.menu.Update(item))

	stored, err := env.orderService.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Paneer Butter Masala", stored.Items[0].Name)
	assert.Equal(t, 349.0, stored.Items[0].UnitPrice)
	assert.Equal(t, order.Total, stored.Total)
}

func TestCancelOrder(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Biryani", 379, true)
	env.trackStock(t, itemID, 10, 2)

	order, err := env.orderService.FinalizeOrder(FinalizeOrderRequest{
		PaymentMethod: string(models.PaymentCard),
		Items:         []CartLineRequest{{MenuItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	cancelled, err := env.orderService.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// Stock returned.
	rec, err := env.inventoryService.GetByItemID(itemID)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.CurrentStock)

	// Cancelled orders drop out of the day's report.
	report, err := env.reports.GetByDateKey(order.DateKey)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalOrders)
	assert.Equal(t, 0.0, report.TotalRevenue)

	_, err = env.orderService.CancelOrder(order.ID)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = env.orderService.CancelOrder("order_404_0000")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrders_FiltersAndPagination(t *testing.T) {
	env := newOrderEnv(t)
	itemID := env.addMenuItem(t, "Masala Chai", 59, true)

	for i := 0; i < 5; i++ {
		method := string(models.PaymentCash)
		tendered := 1000.0
		req := FinalizeOrderRequest{
			PaymentMethod:  method,
			AmountTendered: &tendered,
			Items:          []CartLineRequest{{MenuItemID: itemID, Quantity: i + 1}},
		}
		if i%2 == 1 {
			req.PaymentMethod = string(models.PaymentCard)
			req.AmountTendered = nil
		}
		_, err := env.orderService.FinalizeOrder(req)
		require.NoError(t, err)
	}

	cash := string(models.PaymentCash)
	orders, total, err := env.orderService.GetOrders(models.OrderFilters{PaymentMethod: &cash})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, orders, 3)

	orders, total, err = env.orderService.GetOrders(models.OrderFilters{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, orders, 2)
}
