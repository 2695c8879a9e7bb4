package services

import (
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
)

var (
	ErrTableNotFound      = errors.New("table not found")
	ErrInvalidTableStatus = errors.New("invalid table status")
)

// TableService is the table registry. Status transitions are driven by the
// order manager (assign on order start, release on payment) and by explicit
// staff actions (reserve, cleaning).
type TableService interface {
	GetTables() ([]models.Table, error)
	GetTableByID(tableID int64) (*models.Table, error)
	AssignOrder(tableID int64, orderID string, runningTotal float64, waiter *string) (*models.Table, error)
	Release(tableID int64) (*models.Table, error)
	SetStatus(tableID int64, status string) (*models.Table, error)
	Resize(newCount int) ([]models.Table, error)
	OccupancyRate() (float64, error)
}

type tableService struct {
	tableRepo repositories.TableRepository
}

// NewTableService creates a new instance of TableService.
func NewTableService(tr repositories.TableRepository) TableService {
	return &tableService{tableRepo: tr}
}

func (s *tableService) GetTables() ([]models.Table, error) {
	tables, err := s.tableRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) GetTableByID(tableID int64) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to get table %d: %w", tableID, err)
	}
	return table, nil
}

// AssignOrder marks a table occupied by an in-progress order. OccupiedSince is
// set only when the table was not already occupied, so re-assigning an updated
// running total keeps the original seating time.
func (s *tableService) AssignOrder(tableID int64, orderID string, runningTotal float64, waiter *string) (*models.Table, error) {
	table, err := s.GetTableByID(tableID)
	if err != nil {
		return nil, err
	}
	if table.Status != string(models.TableStatusOccupied) {
		now := time.Now()
		table.OccupiedSince = &now
	}
	table.Status = string(models.TableStatusOccupied)
	table.CurrentOrderID = &orderID
	table.TotalAmount = runningTotal
	if waiter != nil {
		table.Waiter = waiter
	}
	if err := s.tableRepo.Update(table); err != nil {
		return nil, fmt.Errorf("failed to assign order to table %d: %w", tableID, err)
	}
	return table, nil
}

// Release frees a table after payment: available, no order, zero running total.
func (s *tableService) Release(tableID int64) (*models.Table, error) {
	table, err := s.GetTableByID(tableID)
	if err != nil {
		return nil, err
	}
	table.Status = string(models.TableStatusAvailable)
	table.CurrentOrderID = nil
	table.TotalAmount = 0
	table.OccupiedSince = nil
	table.Waiter = nil
	if err := s.tableRepo.Update(table); err != nil {
		return nil, fmt.Errorf("failed to release table %d: %w", tableID, err)
	}
	return table, nil
}

// SetStatus applies a manual staff transition (reserved, cleaning, available).
// Setting a table available clears its order linkage; occupied must go through
// AssignOrder so the order reference stays consistent.
func (s *tableService) SetStatus(tableID int64, status string) (*models.Table, error) {
	if !models.IsValidTableStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTableStatus, status)
	}
	if status == string(models.TableStatusOccupied) {
		return nil, fmt.Errorf("%w: use order assignment to occupy a table", ErrInvalidTableStatus)
	}
	if status == string(models.TableStatusAvailable) {
		return s.Release(tableID)
	}
	table, err := s.GetTableByID(tableID)
	if err != nil {
		return nil, err
	}
	table.Status = status
	table.CurrentOrderID = nil
	table.TotalAmount = 0
	table.OccupiedSince = nil
	if err := s.tableRepo.Update(table); err != nil {
		return nil, fmt.Errorf("failed to set status for table %d: %w", tableID, err)
	}
	return table, nil
}

// Resize grows or shrinks the floor to newCount tables. Shrinking below the
// highest occupied table id is refused rather than silently dropping that
// table's state; the operator has to settle or release it first.
func (s *tableService) Resize(newCount int) ([]models.Table, error) {
	if newCount < 1 {
		return nil, fmt.Errorf("%w: table count must be at least 1", ErrValidation)
	}
	tables, err := s.tableRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get tables for resize: %w", err)
	}

	for _, t := range tables {
		if t.ID > int64(newCount) && t.Status == string(models.TableStatusOccupied) {
			return nil, fmt.Errorf("%w: table %d is occupied; settle its order before shrinking to %d tables",
				ErrValidation, t.ID, newCount)
		}
	}

	existing := make(map[int64]bool, len(tables))
	for _, t := range tables {
		if t.ID > int64(newCount) {
			if err := s.tableRepo.Delete(t.ID); err != nil {
				return nil, fmt.Errorf("failed to drop table %d: %w", t.ID, err)
			}
			continue
		}
		existing[t.ID] = true
	}

	// Creating every absent id up to newCount also backfills gaps left by an
	// earlier interrupted resize.
	for id := int64(1); id <= int64(newCount); id++ {
		if existing[id] {
			continue
		}
		table := models.Table{
			ID:       id,
			Status:   string(models.TableStatusAvailable),
			Capacity: models.CapacityForTableIndex(int(id - 1)),
		}
		if err := s.tableRepo.Create(&table); err != nil {
			return nil, fmt.Errorf("failed to create table %d: %w", id, err)
		}
	}

	return s.GetTables()
}

// OccupancyRate returns occupied/total as a percentage at the moment of the call.
func (s *tableService) OccupancyRate() (float64, error) {
	tables, err := s.tableRepo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to get tables for occupancy: %w", err)
	}
	if len(tables) == 0 {
		return 0, nil
	}
	occupied := 0
	for _, t := range tables {
		if t.Status == string(models.TableStatusOccupied) {
			occupied++
		}
	}
	return float64(occupied) / float64(len(tables)) * 100, nil
}
