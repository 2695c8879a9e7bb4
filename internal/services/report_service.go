package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
)

var ErrInvalidDateKey = errors.New("invalid date key, expected YYYY-MM-DD")

// ReportService maintains the day-bucketed summaries. Reports are fully
// recomputed from the order set on every change rather than incrementally
// updated; at restaurant order volumes a full rescan is cheap and the
// recompute doubles as a repair operation.
type ReportService interface {
	Recompute(dateKey string) (*models.DailyReport, error)
	GetReport(dateKey string) (*models.DailyReport, error)
	Summary(startKey, endKey string) (*models.ReportSummary, error)
	PurgeOrdersBefore(daysToKeep int) (int64, error)
}

type reportService struct {
	orderRepo        repositories.OrderRepository
	reportRepo       repositories.ReportRepository
	tableService     TableService
	inventoryService InventoryService
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	or repositories.OrderRepository,
	rr repositories.ReportRepository,
	ts TableService,
	is InventoryService,
) ReportService {
	return &reportService{
		orderRepo:        or,
		reportRepo:       rr,
		tableService:     ts,
		inventoryService: is,
	}
}

const popularItemsLimit = 10

func validateDateKey(dateKey string) error {
	if _, err := time.Parse(models.DateKeyLayout, dateKey); err != nil {
		return fmt.Errorf("%w: '%s'", ErrInvalidDateKey, dateKey)
	}
	return nil
}

// Recompute rescans every order of the given day and rebuilds its report.
// Idempotent: unchanged order data yields identical output aside from
// GeneratedAt. Table occupancy and low-stock alerts are read at call time, so
// recomputing a past date reflects the current floor and stock state.
func (s *reportService) Recompute(dateKey string) (*models.DailyReport, error) {
	if err := validateDateKey(dateKey); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetByDateKey(dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for report %s: %w", dateKey, err)
	}

	report := &models.DailyReport{
		DateKey:             dateKey,
		PaymentMethodCounts: map[string]int{},
		PopularItems:        []models.PopularItem{},
		HourlyBuckets:       make([]models.HourlyBucket, 24),
		LowStockAlerts:      []models.InventoryRecord{},
		GeneratedAt:         time.Now(),
	}
	for hour := range report.HourlyBuckets {
		report.HourlyBuckets[hour].Hour = hour
	}

	itemQuantities := map[string]int{}
	var itemOrder []string // first-encountered order, for the stable tie-break
	var revenue float64

	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled {
			continue
		}
		revenue += order.Total
		report.TotalOrders++
		report.PaymentMethodCounts[order.PaymentMethod]++

		hour := order.OrderTime.Hour()
		report.HourlyBuckets[hour].Orders++
		report.HourlyBuckets[hour].Revenue = Round2(report.HourlyBuckets[hour].Revenue + order.Total)

		for _, line := range order.Items {
			if _, seen := itemQuantities[line.Name]; !seen {
				itemOrder = append(itemOrder, line.Name)
			}
			itemQuantities[line.Name] += line.Quantity
		}
	}

	report.TotalRevenue = Round2(revenue)
	if report.TotalOrders > 0 {
		report.AvgOrderValue = Round2(revenue / float64(report.TotalOrders))
	}

	ranked := make([]models.PopularItem, 0, len(itemOrder))
	for _, name := range itemOrder {
		ranked = append(ranked, models.PopularItem{Name: name, Quantity: itemQuantities[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Quantity > ranked[j].Quantity })
	if len(ranked) > popularItemsLimit {
		ranked = ranked[:popularItemsLimit]
	}
	report.PopularItems = ranked

	occupancy, err := s.tableService.OccupancyRate()
	if err != nil {
		return nil, fmt.Errorf("failed to read table occupancy for report %s: %w", dateKey, err)
	}
	report.TableOccupancyPercent = Round2(occupancy)

	lowStock, err := s.inventoryService.LowStockItems()
	if err != nil {
		return nil, fmt.Errorf("failed to read low stock items for report %s: %w", dateKey, err)
	}
	report.LowStockAlerts = lowStock

	if err := s.reportRepo.Upsert(report); err != nil {
		return nil, fmt.Errorf("failed to store daily report %s: %w", dateKey, err)
	}
	return report, nil
}

// GetReport returns the stored report for a day, generating it on first access.
func (s *reportService) GetReport(dateKey string) (*models.DailyReport, error) {
	if err := validateDateKey(dateKey); err != nil {
		return nil, err
	}
	report, err := s.reportRepo.GetByDateKey(dateKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return s.Recompute(dateKey)
		}
		return nil, fmt.Errorf("failed to get daily report %s: %w", dateKey, err)
	}
	return report, nil
}

// Summary aggregates orders over an inclusive date range for the export views.
func (s *reportService) Summary(startKey, endKey string) (*models.ReportSummary, error) {
	if err := validateDateKey(startKey); err != nil {
		return nil, err
	}
	if err := validateDateKey(endKey); err != nil {
		return nil, err
	}
	if startKey > endKey {
		return nil, fmt.Errorf("%w: start date is after end date", ErrValidation)
	}

	orders, err := s.orderRepo.GetByDateRange(startKey, endKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for summary %s..%s: %w", startKey, endKey, err)
	}

	summary := &models.ReportSummary{
		StartDate:           startKey,
		EndDate:             endKey,
		PaymentMethodCounts: map[string]int{},
	}
	var revenue float64
	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled {
			continue
		}
		revenue += order.Total
		summary.TotalOrders++
		summary.PaymentMethodCounts[order.PaymentMethod]++
	}
	summary.TotalRevenue = Round2(revenue)
	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = Round2(revenue / float64(summary.TotalOrders))
	}
	return summary, nil
}

// PurgeOrdersBefore deletes orders older than the retention window. Stored
// daily reports are kept so history remains queryable after the purge.
func (s *reportService) PurgeOrdersBefore(daysToKeep int) (int64, error) {
	if daysToKeep < 1 {
		return 0, fmt.Errorf("%w: days to keep must be at least 1", ErrValidation)
	}
	cutoff := models.DateKeyFor(time.Now().AddDate(0, 0, -daysToKeep))
	deleted, err := s.orderRepo.DeleteBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge orders before %s: %w", cutoff, err)
	}
	return deleted, nil
}
