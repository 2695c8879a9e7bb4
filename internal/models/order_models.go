package models

import "time"

// PaymentMethod defines the type for payment methods.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
)

// IsValidPaymentMethod checks if the provided method string is a supported payment method.
func IsValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentWallet:
		return true
	default:
		return false
	}
}

// OrderStatus constants.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// IsValidOrderStatus checks if the provided status string is a valid order status.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CustomerInfo identifies a pickup/takeaway customer; dine-in orders carry a table id instead.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderLine is a snapshot of a menu item at the moment of checkout, copied by
// value so later catalog edits do not alter stored orders.
type OrderLine struct {
	ID         int64   `json:"id" db:"id"`
	OrderID    string  `json:"order_id" db:"order_id"`
	MenuItemID int64   `json:"menu_item_id" db:"menu_item_id"`
	Name       string  `json:"name" db:"name"`
	Category   string  `json:"category" db:"category"`
	UnitPrice  float64 `json:"unit_price" db:"unit_price"`
	Quantity   int     `json:"quantity" db:"quantity"`
	LineTotal  float64 `json:"line_total" db:"line_total"`
}

// Order is a finalized checkout. Immutable after creation except for Status.
type Order struct {
	ID             string        `json:"id" db:"id"`
	OrderCode      string        `json:"order_code" db:"order_code"`
	TableID        *int64        `json:"table_id,omitempty" db:"table_id"`
	Customer       *CustomerInfo `json:"customer,omitempty"`
	Items          []OrderLine   `json:"items"`
	Subtotal       float64       `json:"subtotal" db:"subtotal"`
	Tax            float64       `json:"tax" db:"tax"`
	ServiceCharge  float64       `json:"service_charge" db:"service_charge"`
	Total          float64       `json:"total" db:"total"`
	PaymentMethod  string        `json:"payment_method" db:"payment_method"`
	AmountTendered *float64      `json:"amount_tendered,omitempty" db:"amount_tendered"`
	ChangeDue      *float64      `json:"change_due,omitempty" db:"change_due"`
	Status         string        `json:"status" db:"status"`
	OrderTime      time.Time     `json:"order_time" db:"order_time"`
	DateKey        string        `json:"date_key" db:"date_key"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// OrderFilters defines the available filters for querying orders.
// This struct is used by both the service and repository layers.
type OrderFilters struct {
	TableID       *int64  `form:"table_id"`
	Status        *string `form:"status"`
	PaymentMethod *string `form:"payment_method"`
	Date          *string `form:"date"` // Expected format YYYY-MM-DD
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}

// DateKeyLayout is the calendar-day bucket format used to group orders for daily reporting.
const DateKeyLayout = "2006-01-02"

// DateKeyFor derives the local-day bucket for a timestamp.
func DateKeyFor(t time.Time) string {
	return t.Format(DateKeyLayout)
}
