package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_pos_backend/internal/models"
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// CreateWithItems persists an order and its line snapshots as one durable write.
	CreateWithItems(order *models.Order) error
	GetByID(orderID string) (*models.Order, error)
	GetByDateKey(dateKey string) ([]models.Order, error)
	GetByDateRange(startKey, endKey string) ([]models.Order, error)
	List(filters models.OrderFilters) ([]models.Order, int, error)
	UpdateStatus(orderID string, newStatus string, updatedAt time.Time) error
	DeleteBefore(cutoffDateKey string) (int64, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_code, table_id, customer_name, customer_phone,
	subtotal, tax, service_charge, total, payment_method, amount_tendered, change_due,
	status, order_time, date_key, created_at, updated_at`

func (r *orderRepository) CreateWithItems(order *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting order transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := r.insertOrder(tx, order); err != nil {
		return err
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err := r.insertLine(tx, &order.Items[i]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing order transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) insertOrder(executor SQLExecutor, order *models.Order) error {
	query := `INSERT INTO orders
	            (id, order_code, table_id, customer_name, customer_phone,
	             subtotal, tax, service_charge, total, payment_method, amount_tendered, change_due,
	             status, order_time, date_key, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	var customerName, customerPhone *string
	if order.Customer != nil {
		customerName = &order.Customer.Name
		customerPhone = &order.Customer.Phone
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}

	_, err := executor.Exec(query,
		order.ID, order.OrderCode, order.TableID, customerName, customerPhone,
		order.Subtotal, order.Tax, order.ServiceCharge, order.Total, order.PaymentMethod,
		order.AmountTendered, order.ChangeDue,
		order.Status, order.OrderTime, order.DateKey, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) insertLine(executor SQLExecutor, line *models.OrderLine) error {
	query := `INSERT INTO order_items
	            (order_id, menu_item_id, name, category, unit_price, quantity, line_total)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	err := executor.QueryRow(query,
		line.OrderID, line.MenuItemID, line.Name, line.Category, line.UnitPrice, line.Quantity, line.LineTotal,
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("%w: creating order item (menu_item_id: %d): %v", ErrDatabaseError, line.MenuItemID, err)
	}
	return nil
}

func scanOrder(sc interface{ Scan(dest ...interface{}) error }, o *models.Order) error {
	var customerName, customerPhone sql.NullString
	err := sc.Scan(
		&o.ID, &o.OrderCode, &o.TableID, &customerName, &customerPhone,
		&o.Subtotal, &o.Tax, &o.ServiceCharge, &o.Total, &o.PaymentMethod,
		&o.AmountTendered, &o.ChangeDue,
		&o.Status, &o.OrderTime, &o.DateKey, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if customerName.Valid || customerPhone.Valid {
		o.Customer = &models.CustomerInfo{Name: customerName.String, Phone: customerPhone.String}
	}
	return nil
}

func (r *orderRepository) GetByID(orderID string) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := scanOrder(r.db.QueryRow(query, orderID), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %s: %v", ErrDatabaseError, orderID, err)
	}
	items, err := r.getLines(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) getLines(orderID string) ([]models.OrderLine, error) {
	lines := []models.OrderLine{}
	query := `SELECT id, order_id, menu_item_id, name, category, unit_price, quantity, line_total
	          FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order %s: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.MenuItemID, &l.Name, &l.Category, &l.UnitPrice, &l.Quantity, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order items: %v", ErrDatabaseError, err)
	}
	return lines, nil
}

// GetByDateKey returns the orders of one calendar day, oldest first, with their
// line snapshots attached. The daily report aggregator depends on this
// insertion ordering for its popularity tie-break.
func (r *orderRepository) GetByDateKey(dateKey string) ([]models.Order, error) {
	return r.queryOrdersWithItems(`SELECT `+orderColumns+` FROM orders WHERE date_key = $1 ORDER BY order_time, id`, dateKey)
}

func (r *orderRepository) GetByDateRange(startKey, endKey string) ([]models.Order, error) {
	return r.queryOrdersWithItems(
		`SELECT `+orderColumns+` FROM orders WHERE date_key BETWEEN $1 AND $2 ORDER BY order_time, id`,
		startKey, endKey)
}

func (r *orderRepository) queryOrdersWithItems(query string, args ...interface{}) ([]models.Order, error) {
	orders := []models.Order{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating orders: %v", ErrDatabaseError, err)
	}
	for i := range orders {
		items, err := r.getLines(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) List(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + `, COUNT(*) OVER() as total_count FROM orders`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.TableID != nil {
		conditions = append(conditions, fmt.Sprintf("table_id = $%d", argCounter))
		args = append(args, *filters.TableID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.PaymentMethod != nil && *filters.PaymentMethod != "" {
		conditions = append(conditions, fmt.Sprintf("payment_method = $%d", argCounter))
		args = append(args, *filters.PaymentMethod)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		conditions = append(conditions, fmt.Sprintf("date_key = $%d", argCounter))
		args = append(args, *filters.Date)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY order_time DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		var customerName, customerPhone sql.NullString
		err := rows.Scan(
			&o.ID, &o.OrderCode, &o.TableID, &customerName, &customerPhone,
			&o.Subtotal, &o.Tax, &o.ServiceCharge, &o.Total, &o.PaymentMethod,
			&o.AmountTendered, &o.ChangeDue,
			&o.Status, &o.OrderTime, &o.DateKey, &o.CreatedAt, &o.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		if customerName.Valid || customerPhone.Valid {
			o.Customer = &models.CustomerInfo{Name: customerName.String, Phone: customerPhone.String}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating orders: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

func (r *orderRepository) UpdateStatus(orderID string, newStatus string, updatedAt time.Time) error {
	result, err := r.db.Exec(`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		newStatus, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating status for order %s: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected for order %s: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBefore removes orders older than the cutoff day, line snapshots included.
// Used by the retention cleanup; daily reports for purged days are kept.
func (r *orderRepository) DeleteBefore(cutoffDateKey string) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: starting purge transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE date_key < $1)`, cutoffDateKey)
	if err != nil {
		return 0, fmt.Errorf("%w: purging order items before %s: %v", ErrDatabaseError, cutoffDateKey, err)
	}
	result, err := tx.Exec(`DELETE FROM orders WHERE date_key < $1`, cutoffDateKey)
	if err != nil {
		return 0, fmt.Errorf("%w: purging orders before %s: %v", ErrDatabaseError, cutoffDateKey, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: counting purged orders: %v", ErrDatabaseError, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing purge transaction: %v", ErrDatabaseError, err)
	}
	return deleted, nil
}
