package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant_pos_backend/internal/models"
)

// ReportRepository defines the interface for daily report persistence,
// keyed by the "YYYY-MM-DD" date bucket.
type ReportRepository interface {
	Upsert(report *models.DailyReport) error
	GetByDateKey(dateKey string) (*models.DailyReport, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// The ranked/bucketed parts of a report are stored as JSON documents; they are
// only ever read back whole, never queried into.
func (r *reportRepository) Upsert(report *models.DailyReport) error {
	paymentCounts, err := json.Marshal(report.PaymentMethodCounts)
	if err != nil {
		return fmt.Errorf("%w: encoding payment method counts: %v", ErrDatabaseError, err)
	}
	popularItems, err := json.Marshal(report.PopularItems)
	if err != nil {
		return fmt.Errorf("%w: encoding popular items: %v", ErrDatabaseError, err)
	}
	hourlyBuckets, err := json.Marshal(report.HourlyBuckets)
	if err != nil {
		return fmt.Errorf("%w: encoding hourly buckets: %v", ErrDatabaseError, err)
	}
	lowStockAlerts, err := json.Marshal(report.LowStockAlerts)
	if err != nil {
		return fmt.Errorf("%w: encoding low stock alerts: %v", ErrDatabaseError, err)
	}

	query := `INSERT INTO daily_reports
	            (date_key, total_revenue, total_orders, avg_order_value, payment_method_counts,
	             popular_items, hourly_buckets, table_occupancy_percent, low_stock_alerts, generated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (date_key) DO UPDATE
	          SET total_revenue = EXCLUDED.total_revenue, total_orders = EXCLUDED.total_orders,
	              avg_order_value = EXCLUDED.avg_order_value, payment_method_counts = EXCLUDED.payment_method_counts,
	              popular_items = EXCLUDED.popular_items, hourly_buckets = EXCLUDED.hourly_buckets,
	              table_occupancy_percent = EXCLUDED.table_occupancy_percent,
	              low_stock_alerts = EXCLUDED.low_stock_alerts, generated_at = EXCLUDED.generated_at`
	_, err = r.db.Exec(query,
		report.DateKey, report.TotalRevenue, report.TotalOrders, report.AvgOrderValue, paymentCounts,
		popularItems, hourlyBuckets, report.TableOccupancyPercent, lowStockAlerts, report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting daily report %s: %v", ErrDatabaseError, report.DateKey, err)
	}
	return nil
}

func scanReport(sc interface{ Scan(dest ...interface{}) error }) (*models.DailyReport, error) {
	report := &models.DailyReport{}
	var paymentCounts, popularItems, hourlyBuckets, lowStockAlerts []byte
	err := sc.Scan(
		&report.DateKey, &report.TotalRevenue, &report.TotalOrders, &report.AvgOrderValue, &paymentCounts,
		&popularItems, &hourlyBuckets, &report.TableOccupancyPercent, &lowStockAlerts, &report.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paymentCounts, &report.PaymentMethodCounts); err != nil {
		return nil, fmt.Errorf("%w: decoding payment method counts: %v", ErrDatabaseError, err)
	}
	if err := json.Unmarshal(popularItems, &report.PopularItems); err != nil {
		return nil, fmt.Errorf("%w: decoding popular items: %v", ErrDatabaseError, err)
	}
	if err := json.Unmarshal(hourlyBuckets, &report.HourlyBuckets); err != nil {
		return nil, fmt.Errorf("%w: decoding hourly buckets: %v", ErrDatabaseError, err)
	}
	if err := json.Unmarshal(lowStockAlerts, &report.LowStockAlerts); err != nil {
		return nil, fmt.Errorf("%w: decoding low stock alerts: %v", ErrDatabaseError, err)
	}
	return report, nil
}

const reportColumns = `date_key, total_revenue, total_orders, avg_order_value, payment_method_counts,
	popular_items, hourly_buckets, table_occupancy_percent, low_stock_alerts, generated_at`

func (r *reportRepository) GetByDateKey(dateKey string) (*models.DailyReport, error) {
	row := r.db.QueryRow(`SELECT `+reportColumns+` FROM daily_reports WHERE date_key = $1`, dateKey)
	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting daily report %s: %v", ErrDatabaseError, dateKey, err)
	}
	return report, nil
}
