package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// InventoryRepository defines the interface for inventory ledger persistence,
// keyed by menu item id.
type InventoryRepository interface {
	Upsert(record *models.InventoryRecord) error
	GetByItemID(itemID int64) (*models.InventoryRecord, error)
	GetAll() ([]models.InventoryRecord, error)
	GetLowStock() ([]models.InventoryRecord, error)
	Delete(itemID int64) error
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `item_id, current_stock, min_stock, max_stock, unit, last_updated`

func (r *inventoryRepository) Upsert(record *models.InventoryRecord) error {
	query := `INSERT INTO inventory (item_id, current_stock, min_stock, max_stock, unit, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (item_id) DO UPDATE
	          SET current_stock = EXCLUDED.current_stock, min_stock = EXCLUDED.min_stock,
	              max_stock = EXCLUDED.max_stock, unit = EXCLUDED.unit, last_updated = EXCLUDED.last_updated`
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}
	_, err := r.db.Exec(query,
		record.ItemID, record.CurrentStock, record.MinStock, record.MaxStock, record.Unit, record.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting inventory record for item %d: %v", ErrDatabaseError, record.ItemID, err)
	}
	return nil
}

func (r *inventoryRepository) GetByItemID(itemID int64) (*models.InventoryRecord, error) {
	record := &models.InventoryRecord{}
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE item_id = $1`
	err := r.db.QueryRow(query, itemID).Scan(
		&record.ItemID, &record.CurrentStock, &record.MinStock, &record.MaxStock, &record.Unit, &record.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory record for item %d: %v", ErrDatabaseError, itemID, err)
	}
	return record, nil
}

func (r *inventoryRepository) GetAll() ([]models.InventoryRecord, error) {
	return r.queryRecords(`SELECT ` + inventoryColumns + ` FROM inventory ORDER BY item_id`)
}

func (r *inventoryRepository) GetLowStock() ([]models.InventoryRecord, error) {
	return r.queryRecords(`SELECT ` + inventoryColumns + ` FROM inventory WHERE current_stock <= min_stock ORDER BY item_id`)
}

func (r *inventoryRepository) queryRecords(query string) ([]models.InventoryRecord, error) {
	records := []models.InventoryRecord{}
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec models.InventoryRecord
		err := rows.Scan(&rec.ItemID, &rec.CurrentStock, &rec.MinStock, &rec.MaxStock, &rec.Unit, &rec.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning inventory record: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory records: %v", ErrDatabaseError, err)
	}
	return records, nil
}

func (r *inventoryRepository) Delete(itemID int64) error {
	result, err := r.db.Exec(`DELETE FROM inventory WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory record for item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected for inventory item %d: %v", ErrDatabaseError, itemID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
