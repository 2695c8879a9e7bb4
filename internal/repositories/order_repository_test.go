package repositories

import (
	"errors"
	"testing"
	"time"

	"restaurant_pos_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRepoMock(t *testing.T) (OrderRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepository(db), mock
}

func sampleOrder() models.Order {
	tableID := int64(3)
	tendered := 500.0
	change := 28.0
	return models.Order{
		ID:             "order_1736496000000_0042",
		OrderCode:      "#496000",
		TableID:        &tableID,
		Subtotal:       400,
		Tax:            72,
		Total:          472,
		PaymentMethod:  "cash",
		AmountTendered: &tendered,
		ChangeDue:      &change,
		Status:         models.OrderStatusCompleted,
		OrderTime:      time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC),
		DateKey:        "2026-03-14",
		Items: []models.OrderLine{
			{MenuItemID: 2, Name: "Biryani", Category: "Main Course", UnitPrice: 379, Quantity: 1, LineTotal: 379},
		},
	}
}

func TestOrderRepository_CreateWithItems(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(order.ID, int64(2), "Biryani", "Main Course", 379.0, 1, 379.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithItems(&order))
	assert.Equal(t, int64(11), order.Items[0].ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateWithItems_RollsBackOnLineFailure(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateWithItems(&order)
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func orderRows(o models.Order) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_code", "table_id", "customer_name", "customer_phone",
		"subtotal", "tax", "service_charge", "total", "payment_method", "amount_tendered", "change_due",
		"status", "order_time", "date_key", "created_at", "updated_at",
	}).AddRow(
		o.ID, o.OrderCode, *o.TableID, nil, nil,
		o.Subtotal, o.Tax, o.ServiceCharge, o.Total, o.PaymentMethod, *o.AmountTendered, *o.ChangeDue,
		o.Status, o.OrderTime, o.DateKey, time.Now(), time.Now(),
	)
}

func TestOrderRepository_GetByID(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	want := sampleOrder()

	mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
		WithArgs(want.ID).
		WillReturnRows(orderRows(want))
	mock.ExpectQuery(`SELECT .+ FROM order_items WHERE order_id = \$1`).
		WithArgs(want.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "menu_item_id", "name", "category", "unit_price", "quantity", "line_total"}).
			AddRow(11, want.ID, 2, "Biryani", "Main Course", 379.0, 1, 379.0))

	got, err := repo.GetByID(want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Total, got.Total)
	assert.Nil(t, got.Customer)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Biryani", got.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	// An empty result set maps to ErrNotFound.
	mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
		WithArgs("order_404_0000").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID("order_404_0000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_List_AppliesFiltersAndCount(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	want := sampleOrder()

	status := models.OrderStatusCompleted
	method := "cash"
	rows := sqlmock.NewRows([]string{
		"id", "order_code", "table_id", "customer_name", "customer_phone",
		"subtotal", "tax", "service_charge", "total", "payment_method", "amount_tendered", "change_due",
		"status", "order_time", "date_key", "created_at", "updated_at", "total_count",
	}).AddRow(
		want.ID, want.OrderCode, *want.TableID, nil, nil,
		want.Subtotal, want.Tax, want.ServiceCharge, want.Total, want.PaymentMethod, *want.AmountTendered, *want.ChangeDue,
		want.Status, want.OrderTime, want.DateKey, time.Now(), time.Now(), 7,
	)
	mock.ExpectQuery(`SELECT .+ COUNT\(\*\) OVER\(\) as total_count FROM orders WHERE status = \$1 AND payment_method = \$2 ORDER BY order_time DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(status, method, 20, 20).
		WillReturnRows(rows)

	orders, total, err := repo.List(models.OrderFilters{
		Status:        &status,
		PaymentMethod: &method,
		Page:          2,
		PageSize:      20,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, orders, 1)
	assert.Equal(t, want.ID, orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs(models.OrderStatusCancelled, sqlmock.AnyArg(), "order_404_0000").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus("order_404_0000", models.OrderStatusCancelled, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_DeleteBefore(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM order_items WHERE order_id IN`).
		WithArgs("2026-02-12").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM orders WHERE date_key < \$1`).
		WithArgs("2026-02-12").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := repo.DeleteBefore("2026-02-12")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
