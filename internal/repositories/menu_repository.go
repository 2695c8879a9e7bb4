package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// MenuRepository defines the interface for menu catalog persistence.
type MenuRepository interface {
	Create(item *models.MenuItem) (int64, error)
	GetByID(itemID int64) (*models.MenuItem, error)
	GetAll(category *string, onlyAvailable bool) ([]models.MenuItem, error)
	Update(item *models.MenuItem) error
	Delete(itemID int64) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

const menuColumns = `id, name, category, price, description, prep_time_minutes,
	is_vegetarian, is_spicy, is_available, created_at, updated_at`

func scanMenuItem(row *sql.Row, item *models.MenuItem) error {
	return row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Price, &item.Description, &item.PrepTimeMinutes,
		&item.IsVegetarian, &item.IsSpicy, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
	)
}

func (r *menuRepository) Create(item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items
	            (name, category, price, description, prep_time_minutes,
	             is_vegetarian, is_spicy, is_available, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`
	currentTime := time.Now()
	item.CreatedAt = currentTime
	item.UpdatedAt = currentTime
	err := r.db.QueryRow(query,
		item.Name, item.Category, item.Price, item.Description, item.PrepTimeMinutes,
		item.IsVegetarian, item.IsSpicy, item.IsAvailable, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: menu item name '%s' already exists", ErrDuplicateKey, item.Name)
		}
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *menuRepository) GetByID(itemID int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1`
	err := scanMenuItem(r.db.QueryRow(query, itemID), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *menuRepository) GetAll(category *string, onlyAvailable bool) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	query := `SELECT ` + menuColumns + ` FROM menu_items`
	var conditions []string
	var args []interface{}
	if category != nil && *category != "" {
		args = append(args, *category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if onlyAvailable {
		conditions = append(conditions, "is_available = TRUE")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY category, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Price, &item.Description, &item.PrepTimeMinutes,
			&item.IsVegetarian, &item.IsSpicy, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *menuRepository) Update(item *models.MenuItem) error {
	query := `UPDATE menu_items
	          SET name = $1, category = $2, price = $3, description = $4, prep_time_minutes = $5,
	              is_vegetarian = $6, is_spicy = $7, is_available = $8, updated_at = $9
	          WHERE id = $10`
	item.UpdatedAt = time.Now()
	result, err := r.db.Exec(query,
		item.Name, item.Category, item.Price, item.Description, item.PrepTimeMinutes,
		item.IsVegetarian, item.IsSpicy, item.IsAvailable, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating menu item %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected for menu item %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) Delete(itemID int64) error {
	result, err := r.db.Exec(`DELETE FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting menu item %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected for menu item %d: %v", ErrDatabaseError, itemID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
