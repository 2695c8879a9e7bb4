package models

import "time"

// InventoryRecord tracks stock for a menu item. Tracking is optional per item:
// menu items without a record are simply not inventory-managed.
type InventoryRecord struct {
	ItemID       int64     `json:"item_id" db:"item_id"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	MinStock     int       `json:"min_stock" db:"min_stock"`
	MaxStock     int       `json:"max_stock" db:"max_stock"`
	Unit         string    `json:"unit" db:"unit"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

// IsLowStock reports whether the record has fallen to or below its configured minimum.
func (r InventoryRecord) IsLowStock() bool {
	return r.CurrentStock <= r.MinStock
}
