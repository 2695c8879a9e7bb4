package models

import "time"

// ApplicationSetting represents a key-value pair for application configuration.
// Section payloads (restaurant, operations, tax) are stored as JSON values.
type ApplicationSetting struct {
	ID           int64     `json:"id" db:"id"`
	SettingKey   string    `json:"setting_key" db:"setting_key" binding:"required"`
	SettingValue *string   `json:"setting_value,omitempty" db:"setting_value"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Settings section keys.
const (
	SettingKeyRestaurant = "restaurant"
	SettingKeyOperations = "operations"
	SettingKeyTax        = "tax"
)

// RestaurantSettings holds venue identity used by receipt rendering collaborators.
type RestaurantSettings struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// OperationsSettings holds operational toggles.
type OperationsSettings struct {
	MaxTables          int  `json:"max_tables"`
	EnablePickupOrders bool `json:"enable_pickup_orders"`
	EnableInventory    bool `json:"enable_inventory"`
	EnableKitchenPrint bool `json:"enable_kitchen_print"`
}

// TaxSettings holds the rates used by billing. Service charge is additive with
// GST: both are computed off the subtotal independently, never compounded.
type TaxSettings struct {
	GSTRate             float64 `json:"gst_rate"`
	ServiceChargeRate   float64 `json:"service_charge_rate"`
	EnableServiceCharge bool    `json:"enable_service_charge"`
}

// AppSettings is the flat configuration object consumed by the settings contract.
// Order finalization reads it at call time, so edits apply to the next checkout.
type AppSettings struct {
	Restaurant RestaurantSettings `json:"restaurant"`
	Operations OperationsSettings `json:"operations"`
	Tax        TaxSettings        `json:"tax"`
}

// DefaultAppSettings returns the configuration used before any settings are saved.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Restaurant: RestaurantSettings{
			Name:  "Shreeji Restaurant",
			Phone: "+91 98765 43210",
			Email: "info@shreejirestaurant.com",
		},
		Operations: OperationsSettings{
			MaxTables:          20,
			EnablePickupOrders: true,
			EnableInventory:    true,
			EnableKitchenPrint: true,
		},
		Tax: TaxSettings{
			GSTRate:             0.18,
			ServiceChargeRate:   0.10,
			EnableServiceCharge: false,
		},
	}
}
