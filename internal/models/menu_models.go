package models

import "time"

// MenuCategories is the fixed set of categories a menu item may belong to.
var MenuCategories = []string{"Main Course", "Starters", "Beverages", "Desserts"}

// IsValidMenuCategory checks if the provided category is one of the fixed category set.
func IsValidMenuCategory(category string) bool {
	for _, c := range MenuCategories {
		if c == category {
			return true
		}
	}
	return false
}

// MenuItem represents a sellable item in the catalog.
// Orders store snapshot copies of menu items, so price or availability edits
// never retroactively alter historical receipts.
type MenuItem struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" binding:"required"`
	Category        string    `json:"category" db:"category" binding:"required"`
	Price           float64   `json:"price" db:"price" binding:"required,gt=0"`
	Description     *string   `json:"description,omitempty" db:"description"`
	PrepTimeMinutes int       `json:"prep_time_minutes" db:"prep_time_minutes"`
	IsVegetarian    bool      `json:"is_vegetarian" db:"is_vegetarian"`
	IsSpicy         bool      `json:"is_spicy" db:"is_spicy"`
	IsAvailable     bool      `json:"is_available" db:"is_available"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
