package services

import (
	"errors"
	"fmt"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
)

var ErrInvalidMenuCategory = errors.New("invalid menu category")

// CreateMenuItemRequest is used for adding an item to the catalog.
type CreateMenuItemRequest struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Description     *string `json:"description"`
	PrepTimeMinutes int     `json:"prep_time_minutes"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsSpicy         bool    `json:"is_spicy"`
	IsAvailable     bool    `json:"is_available"`
}

// UpdateMenuItemRequest is used for partial edits from the settings surface;
// nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Price           *float64 `json:"price"`
	Description     *string  `json:"description"`
	PrepTimeMinutes *int     `json:"prep_time_minutes"`
	IsVegetarian    *bool    `json:"is_vegetarian"`
	IsSpicy         *bool    `json:"is_spicy"`
	IsAvailable     *bool    `json:"is_available"`
}

// MenuService manages the sellable catalog. Deleting an item is safe for
// history because orders hold snapshot copies of their lines.
type MenuService interface {
	CreateItem(req CreateMenuItemRequest) (*models.MenuItem, error)
	GetItems(category *string, onlyAvailable bool) ([]models.MenuItem, error)
	GetItemByID(itemID int64) (*models.MenuItem, error)
	UpdateItem(itemID int64, req UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteItem(itemID int64) error
}

type menuService struct {
	menuRepo      repositories.MenuRepository
	inventoryRepo repositories.InventoryRepository
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(mr repositories.MenuRepository, ir repositories.InventoryRepository) MenuService {
	return &menuService{menuRepo: mr, inventoryRepo: ir}
}

func (s *menuService) CreateItem(req CreateMenuItemRequest) (*models.MenuItem, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if !models.IsValidMenuCategory(req.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMenuCategory, req.Category)
	}
	if req.PrepTimeMinutes < 0 {
		return nil, fmt.Errorf("%w: prep time cannot be negative", ErrValidation)
	}
	item := models.MenuItem{
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		Description:     req.Description,
		PrepTimeMinutes: req.PrepTimeMinutes,
		IsVegetarian:    req.IsVegetarian,
		IsSpicy:         req.IsSpicy,
		IsAvailable:     req.IsAvailable,
	}
	if _, err := s.menuRepo.Create(&item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

func (s *menuService) GetItems(category *string, onlyAvailable bool) ([]models.MenuItem, error) {
	if category != nil && *category != "" && !models.IsValidMenuCategory(*category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMenuCategory, *category)
	}
	items, err := s.menuRepo.GetAll(category, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) GetItemByID(itemID int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrMenuItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get menu item %d: %w", itemID, err)
	}
	return item, nil
}

func (s *menuService) UpdateItem(itemID int64, req UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
		}
		item.Name = *req.Name
	}
	if req.Category != nil {
		if !models.IsValidMenuCategory(*req.Category) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMenuCategory, *req.Category)
		}
		item.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.PrepTimeMinutes != nil {
		if *req.PrepTimeMinutes < 0 {
			return nil, fmt.Errorf("%w: prep time cannot be negative", ErrValidation)
		}
		item.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.IsVegetarian != nil {
		item.IsVegetarian = *req.IsVegetarian
	}
	if req.IsSpicy != nil {
		item.IsSpicy = *req.IsSpicy
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := s.menuRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update menu item %d: %w", itemID, err)
	}
	return item, nil
}

// DeleteItem removes an item from the catalog along with its inventory record.
func (s *menuService) DeleteItem(itemID int64) error {
	if err := s.menuRepo.Delete(itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: item %d", ErrMenuItemNotFound, itemID)
		}
		return fmt.Errorf("failed to delete menu item %d: %w", itemID, err)
	}
	if err := s.inventoryRepo.Delete(itemID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to delete inventory record for item %d: %w", itemID, err)
	}
	return nil
}
