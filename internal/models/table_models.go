package models

import "time"

// TableStatus defines the type for table statuses.
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
	TableStatusReserved  TableStatus = "reserved"
	TableStatusCleaning  TableStatus = "cleaning"
)

// IsValidTableStatus checks if the provided status string is a valid TableStatus.
func IsValidTableStatus(status string) bool {
	switch TableStatus(status) {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusCleaning:
		return true
	default:
		return false
	}
}

// Table represents a physical dine-in table.
// Invariant: Status == occupied exactly when CurrentOrderID is non-nil.
type Table struct {
	ID             int64      `json:"id" db:"id"`
	Status         string     `json:"status" db:"status"`
	Capacity       int        `json:"capacity" db:"capacity"`
	CurrentOrderID *string    `json:"current_order_id,omitempty" db:"current_order_id"`
	TotalAmount    float64    `json:"total_amount" db:"total_amount"`
	OccupiedSince  *time.Time `json:"occupied_since,omitempty" db:"occupied_since"`
	Waiter         *string    `json:"waiter,omitempty" db:"waiter"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// CapacityForTableIndex returns the seat count for a table by zero-based
// position on the floor: the first four tables seat 2, the next six seat 4,
// the next six seat 6, anything beyond seats 8.
func CapacityForTableIndex(i int) int {
	switch {
	case i < 4:
		return 2
	case i < 10:
		return 4
	case i < 16:
		return 6
	default:
		return 8
	}
}
