package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"restaurant_pos_backend/internal/models"
)

// In-memory implementations of the repository interfaces. They back the
// service tests and any single-process deployment that does not need a
// durable store. Records are copied on the way in and out so callers never
// share memory with the store.

// --- Menu ---

type MemoryMenuRepository struct {
	mu     sync.Mutex
	items  map[int64]models.MenuItem
	nextID int64
}

func NewMemoryMenuRepository() *MemoryMenuRepository {
	return &MemoryMenuRepository{items: make(map[int64]models.MenuItem), nextID: 1}
}

func (r *MemoryMenuRepository) Create(item *models.MenuItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = *item
	return item.ID, nil
}

func (r *MemoryMenuRepository) GetByID(itemID int64) (*models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := item
	return &copied, nil
}

func (r *MemoryMenuRepository) GetAll(category *string, onlyAvailable bool) ([]models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []models.MenuItem{}
	for _, item := range r.items {
		if category != nil && *category != "" && item.Category != *category {
			continue
		}
		if onlyAvailable && !item.IsAvailable {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *MemoryMenuRepository) Update(item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

func (r *MemoryMenuRepository) Delete(itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		return ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

// --- Orders ---

type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders []models.Order // insertion order preserved for report tie-breaks
	byID   map[string]int
	// FailWrites makes every write return ErrDatabaseError; used to exercise
	// the order manager's partial-failure contract.
	FailWrites bool
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{byID: make(map[string]int)}
}

func copyOrder(o models.Order) models.Order {
	copied := o
	copied.Items = append([]models.OrderLine(nil), o.Items...)
	if o.Customer != nil {
		customer := *o.Customer
		copied.Customer = &customer
	}
	return copied
}

func (r *MemoryOrderRepository) CreateWithItems(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrDatabaseError
	}
	if _, ok := r.byID[order.ID]; ok {
		return ErrDuplicateKey
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}
	for i := range order.Items {
		order.Items[i].ID = int64(len(r.orders)*100 + i + 1)
		order.Items[i].OrderID = order.ID
	}
	r.byID[order.ID] = len(r.orders)
	r.orders = append(r.orders, copyOrder(*order))
	return nil
}

func (r *MemoryOrderRepository) GetByID(orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := copyOrder(r.orders[idx])
	return &copied, nil
}

func (r *MemoryOrderRepository) GetByDateKey(dateKey string) ([]models.Order, error) {
	return r.GetByDateRange(dateKey, dateKey)
}

func (r *MemoryOrderRepository) GetByDateRange(startKey, endKey string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := []models.Order{}
	for _, o := range r.orders {
		if o.DateKey >= startKey && o.DateKey <= endKey {
			orders = append(orders, copyOrder(o))
		}
	}
	return orders, nil
}

func (r *MemoryOrderRepository) List(filters models.OrderFilters) ([]models.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []models.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- { // newest first, as the SQL backend orders
		o := r.orders[i]
		if filters.TableID != nil && (o.TableID == nil || *o.TableID != *filters.TableID) {
			continue
		}
		if filters.Status != nil && *filters.Status != "" && o.Status != *filters.Status {
			continue
		}
		if filters.PaymentMethod != nil && *filters.PaymentMethod != "" && o.PaymentMethod != *filters.PaymentMethod {
			continue
		}
		if filters.Date != nil && *filters.Date != "" && o.DateKey != *filters.Date {
			continue
		}
		matched = append(matched, copyOrder(o))
	}
	total := len(matched)
	if filters.PageSize > 0 {
		start := 0
		if filters.Page > 1 {
			start = (filters.Page - 1) * filters.PageSize
		}
		if start >= len(matched) {
			return []models.Order{}, total, nil
		}
		end := start + filters.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *MemoryOrderRepository) UpdateStatus(orderID string, newStatus string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrDatabaseError
	}
	idx, ok := r.byID[orderID]
	if !ok {
		return ErrNotFound
	}
	r.orders[idx].Status = newStatus
	r.orders[idx].UpdatedAt = updatedAt
	return nil
}

func (r *MemoryOrderRepository) DeleteBefore(cutoffDateKey string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.orders[:0]
	var deleted int64
	for _, o := range r.orders {
		if strings.Compare(o.DateKey, cutoffDateKey) < 0 {
			deleted++
			continue
		}
		kept = append(kept, o)
	}
	r.orders = kept
	r.byID = make(map[string]int, len(r.orders))
	for i, o := range r.orders {
		r.byID[o.ID] = i
	}
	return deleted, nil
}

// --- Tables ---

type MemoryTableRepository struct {
	mu     sync.Mutex
	tables map[int64]models.Table
}

func NewMemoryTableRepository() *MemoryTableRepository {
	return &MemoryTableRepository{tables: make(map[int64]models.Table)}
}

func (r *MemoryTableRepository) Create(table *models.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	table.CreatedAt = now
	table.UpdatedAt = now
	r.tables[table.ID] = *table
	return nil
}

func (r *MemoryTableRepository) GetByID(tableID int64) (*models.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.tables[tableID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := table
	return &copied, nil
}

func (r *MemoryTableRepository) GetAll() ([]models.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tables := []models.Table{}
	for _, t := range r.tables {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	return tables, nil
}

func (r *MemoryTableRepository) Update(table *models.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[table.ID]; !ok {
		return ErrNotFound
	}
	table.UpdatedAt = time.Now()
	r.tables[table.ID] = *table
	return nil
}

func (r *MemoryTableRepository) Delete(tableID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[tableID]; !ok {
		return ErrNotFound
	}
	delete(r.tables, tableID)
	return nil
}

// --- Inventory ---

type MemoryInventoryRepository struct {
	mu      sync.Mutex
	records map[int64]models.InventoryRecord
}

func NewMemoryInventoryRepository() *MemoryInventoryRepository {
	return &MemoryInventoryRepository{records: make(map[int64]models.InventoryRecord)}
}

func (r *MemoryInventoryRepository) Upsert(record *models.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}
	r.records[record.ItemID] = *record
	return nil
}

func (r *MemoryInventoryRepository) GetByItemID(itemID int64) (*models.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := record
	return &copied, nil
}

func (r *MemoryInventoryRepository) GetAll() ([]models.InventoryRecord, error) {
	return r.filter(func(models.InventoryRecord) bool { return true })
}

func (r *MemoryInventoryRepository) GetLowStock() ([]models.InventoryRecord, error) {
	return r.filter(models.InventoryRecord.IsLowStock)
}

func (r *MemoryInventoryRepository) filter(keep func(models.InventoryRecord) bool) ([]models.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := []models.InventoryRecord{}
	for _, rec := range r.records {
		if keep(rec) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ItemID < records[j].ItemID })
	return records, nil
}

func (r *MemoryInventoryRepository) Delete(itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[itemID]; !ok {
		return ErrNotFound
	}
	delete(r.records, itemID)
	return nil
}

// --- Daily reports ---

type MemoryReportRepository struct {
	mu      sync.Mutex
	reports map[string]models.DailyReport
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{reports: make(map[string]models.DailyReport)}
}

func copyReport(report models.DailyReport) models.DailyReport {
	copied := report
	copied.PaymentMethodCounts = make(map[string]int, len(report.PaymentMethodCounts))
	for method, count := range report.PaymentMethodCounts {
		copied.PaymentMethodCounts[method] = count
	}
	copied.PopularItems = append([]models.PopularItem(nil), report.PopularItems...)
	copied.HourlyBuckets = append([]models.HourlyBucket(nil), report.HourlyBuckets...)
	copied.LowStockAlerts = append([]models.InventoryRecord(nil), report.LowStockAlerts...)
	return copied
}

func (r *MemoryReportRepository) Upsert(report *models.DailyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.DateKey] = copyReport(*report)
	return nil
}

func (r *MemoryReportRepository) GetByDateKey(dateKey string) (*models.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[dateKey]
	if !ok {
		return nil, ErrNotFound
	}
	copied := copyReport(report)
	return &copied, nil
}

// --- Settings ---

type MemorySettingsRepository struct {
	mu       sync.Mutex
	settings map[string]models.ApplicationSetting
	nextID   int64
}

func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{settings: make(map[string]models.ApplicationSetting), nextID: 1}
}

func (r *MemorySettingsRepository) Upsert(setting *models.ApplicationSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.settings[setting.SettingKey]; ok {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
	} else {
		setting.ID = r.nextID
		r.nextID++
		setting.CreatedAt = now
	}
	setting.UpdatedAt = now
	r.settings[setting.SettingKey] = *setting
	return nil
}

func (r *MemorySettingsRepository) GetByKey(key string) (*models.ApplicationSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting, ok := r.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := setting
	return &copied, nil
}

func (r *MemorySettingsRepository) GetAll() ([]models.ApplicationSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings := []models.ApplicationSetting{}
	for _, s := range r.settings {
		settings = append(settings, s)
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].SettingKey < settings[j].SettingKey })
	return settings, nil
}
