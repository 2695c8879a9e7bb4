package services

import (
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
)

// ErrInventoryRecordNotFound is returned by explicit stock operations on an
// untracked item. Order-driven decrements never raise it: inventory tracking
// is optional per menu item, so a missing record there is a no-op.
var ErrInventoryRecordNotFound = errors.New("inventory record not found")

// InventoryService is the stock ledger, keyed by menu item id.
type InventoryService interface {
	DecrementForOrder(lines []models.OrderLine) error
	RestoreForOrder(lines []models.OrderLine) error
	SetStock(itemID int64, newStock int) (*models.InventoryRecord, error)
	Restock(itemID int64, quantity int) (*models.InventoryRecord, error)
	LowStockItems() ([]models.InventoryRecord, error)
	GetAll() ([]models.InventoryRecord, error)
	GetByItemID(itemID int64) (*models.InventoryRecord, error)
	CreateRecord(record *models.InventoryRecord) error
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(ir repositories.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: ir}
}

// DecrementForOrder reduces stock for each sold line, flooring at zero.
// Lines whose item has no inventory record are silently skipped.
func (s *inventoryService) DecrementForOrder(lines []models.OrderLine) error {
	for _, line := range lines {
		if err := s.adjust(line.MenuItemID, -line.Quantity, true); err != nil {
			return err
		}
	}
	return nil
}

// RestoreForOrder returns stock for each line of a cancelled order.
func (s *inventoryService) RestoreForOrder(lines []models.OrderLine) error {
	for _, line := range lines {
		if err := s.adjust(line.MenuItemID, line.Quantity, true); err != nil {
			return err
		}
	}
	return nil
}

func (s *inventoryService) adjust(itemID int64, delta int, skipMissing bool) error {
	record, err := s.inventoryRepo.GetByItemID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			if skipMissing {
				return nil
			}
			return fmt.Errorf("%w: item %d", ErrInventoryRecordNotFound, itemID)
		}
		return fmt.Errorf("failed to fetch inventory record for item %d: %w", itemID, err)
	}
	record.CurrentStock += delta
	if record.CurrentStock < 0 {
		record.CurrentStock = 0
	}
	record.LastUpdated = time.Now()
	if err := s.inventoryRepo.Upsert(record); err != nil {
		return fmt.Errorf("failed to update stock for item %d: %w", itemID, err)
	}
	return nil
}

// SetStock overwrites an item's stock level, clamped to zero. Used by manual restock.
func (s *inventoryService) SetStock(itemID int64, newStock int) (*models.InventoryRecord, error) {
	record, err := s.inventoryRepo.GetByItemID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrInventoryRecordNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to fetch inventory record for item %d: %w", itemID, err)
	}
	if newStock < 0 {
		newStock = 0
	}
	record.CurrentStock = newStock
	record.LastUpdated = time.Now()
	if err := s.inventoryRepo.Upsert(record); err != nil {
		return nil, fmt.Errorf("failed to set stock for item %d: %w", itemID, err)
	}
	return record, nil
}

// Restock adds a delivery quantity to an item's current stock.
func (s *inventoryService) Restock(itemID int64, quantity int) (*models.InventoryRecord, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", ErrValidation)
	}
	if err := s.adjust(itemID, quantity, false); err != nil {
		return nil, err
	}
	return s.GetByItemID(itemID)
}

func (s *inventoryService) LowStockItems() ([]models.InventoryRecord, error) {
	records, err := s.inventoryRepo.GetLowStock()
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock items: %w", err)
	}
	return records, nil
}

func (s *inventoryService) GetAll() ([]models.InventoryRecord, error) {
	records, err := s.inventoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory records: %w", err)
	}
	return records, nil
}

func (s *inventoryService) GetByItemID(itemID int64) (*models.InventoryRecord, error) {
	record, err := s.inventoryRepo.GetByItemID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrInventoryRecordNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to fetch inventory record for item %d: %w", itemID, err)
	}
	return record, nil
}

// CreateRecord starts tracking stock for a menu item.
func (s *inventoryService) CreateRecord(record *models.InventoryRecord) error {
	if record.CurrentStock < 0 || record.MinStock < 0 || record.MaxStock < 0 {
		return fmt.Errorf("%w: stock levels cannot be negative", ErrValidation)
	}
	record.LastUpdated = time.Now()
	if err := s.inventoryRepo.Upsert(record); err != nil {
		return fmt.Errorf("failed to create inventory record for item %d: %w", record.ItemID, err)
	}
	return nil
}
