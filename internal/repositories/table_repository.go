package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// TableRepository defines the interface for table registry persistence.
type TableRepository interface {
	Create(table *models.Table) error
	GetByID(tableID int64) (*models.Table, error)
	GetAll() ([]models.Table, error)
	Update(table *models.Table) error
	Delete(tableID int64) error
}

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

const tableColumns = `id, status, capacity, current_order_id, total_amount, occupied_since, waiter, created_at, updated_at`

func (r *tableRepository) Create(table *models.Table) error {
	query := `INSERT INTO tables
	            (id, status, capacity, current_order_id, total_amount, occupied_since, waiter, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	currentTime := time.Now()
	table.CreatedAt = currentTime
	table.UpdatedAt = currentTime
	_, err := r.db.Exec(query,
		table.ID, table.Status, table.Capacity, table.CurrentOrderID, table.TotalAmount,
		table.OccupiedSince, table.Waiter, table.CreatedAt, table.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating table %d: %v", ErrDatabaseError, table.ID, err)
	}
	return nil
}

func (r *tableRepository) GetByID(tableID int64) (*models.Table, error) {
	table := &models.Table{}
	query := `SELECT ` + tableColumns + ` FROM tables WHERE id = $1`
	err := r.db.QueryRow(query, tableID).Scan(
		&table.ID, &table.Status, &table.Capacity, &table.CurrentOrderID, &table.TotalAmount,
		&table.OccupiedSince, &table.Waiter, &table.CreatedAt, &table.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return table, nil
}

func (r *tableRepository) GetAll() ([]models.Table, error) {
	tables := []models.Table{}
	query := `SELECT ` + tableColumns + ` FROM tables ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	for rows.Next() {
		var t models.Table
		err := rows.Scan(
			&t.ID, &t.Status, &t.Capacity, &t.CurrentOrderID, &t.TotalAmount,
			&t.OccupiedSince, &t.Waiter, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tables: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

func (r *tableRepository) Update(table *models.Table) error {
	query := `UPDATE tables
	          SET status = $1, capacity = $2, current_order_id = $3, total_amount = $4,
	              occupied_since = $5, waiter = $6, updated_at = $7
	          WHERE id = $8`
	table.UpdatedAt = time.Now()
	result, err := r.db.Exec(query,
		table.Status, table.Capacity, table.CurrentOrderID, table.TotalAmount,
		table.OccupiedSince, table.Waiter, table.UpdatedAt, table.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating table %d: %v", ErrDatabaseError, table.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected for table %d: %v", ErrDatabaseError, table.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tableRepository) Delete(tableID int64) error {
	result, err := r.db.Exec(`DELETE FROM tables WHERE id = $1`, tableID)
	if err != nil {
		return fmt.Errorf("%w: deleting table %d: %v", ErrDatabaseError, tableID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected for table %d: %v", ErrDatabaseError, tableID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
