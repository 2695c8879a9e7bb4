package models

import "time"

// PopularItem is one entry of a daily report's item ranking.
type PopularItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// HourlyBucket is one slot of the 24-entry hourly histogram, keyed by local hour.
type HourlyBucket struct {
	Hour    int     `json:"hour"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// DailyReport is the per-day summary, fully recomputed from the order set each
// time an order for that date is added or cancelled.
type DailyReport struct {
	DateKey               string            `json:"date_key" db:"date_key"`
	TotalRevenue          float64           `json:"total_revenue" db:"total_revenue"`
	TotalOrders           int               `json:"total_orders" db:"total_orders"`
	AvgOrderValue         float64           `json:"avg_order_value" db:"avg_order_value"`
	PaymentMethodCounts   map[string]int    `json:"payment_method_counts"`
	PopularItems          []PopularItem     `json:"popular_items"`
	HourlyBuckets         []HourlyBucket    `json:"hourly_buckets"`
	TableOccupancyPercent float64           `json:"table_occupancy_percent" db:"table_occupancy_percent"`
	LowStockAlerts        []InventoryRecord `json:"low_stock_alerts"`
	GeneratedAt           time.Time         `json:"generated_at" db:"generated_at"`
}

// ReportSummary aggregates stored daily reports over an inclusive date range.
type ReportSummary struct {
	StartDate           string         `json:"start_date"`
	EndDate             string         `json:"end_date"`
	TotalRevenue        float64        `json:"total_revenue"`
	TotalOrders         int            `json:"total_orders"`
	AvgOrderValue       float64        `json:"avg_order_value"`
	PaymentMethodCounts map[string]int `json:"payment_method_counts"`
}
