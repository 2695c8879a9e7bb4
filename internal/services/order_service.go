package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/pkg/utils"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMenuItemNotFound    = errors.New("menu item not found or not available")
	ErrInsufficientPayment = errors.New("insufficient cash tendered")
	ErrOrderPersistence    = errors.New("failed to persist order")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
)

// CartLineRequest is one pending cart line at checkout.
type CartLineRequest struct {
	MenuItemID int64 `json:"menu_item_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required"`
}

// FinalizeOrderRequest is the checkout payload: cart contents plus payment
// capture. TableID is nil for pickup orders, which carry customer info instead.
type FinalizeOrderRequest struct {
	TableID        *int64               `json:"table_id"`
	Customer       *models.CustomerInfo `json:"customer"`
	PaymentMethod  string               `json:"payment_method" binding:"required"`
	AmountTendered *float64             `json:"amount_tendered"`
	Items          []CartLineRequest    `json:"items" binding:"required,dive"`
}

// OrderService is the order lifecycle state machine: cart to finalized order,
// inventory decrement, table release and report regeneration.
type OrderService interface {
	FinalizeOrder(req FinalizeOrderRequest) (*models.Order, error)
	GetOrderByID(orderID string) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	CancelOrder(orderID string) (*models.Order, error)
}

type orderService struct {
	orderRepo        repositories.OrderRepository
	menuRepo         repositories.MenuRepository
	inventoryService InventoryService
	tableService     TableService
	settingsService  SettingsService
	reportService    ReportService
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	mr repositories.MenuRepository,
	is InventoryService,
	ts TableService,
	ss SettingsService,
	rs ReportService,
) OrderService {
	return &orderService{
		orderRepo:        or,
		menuRepo:         mr,
		inventoryService: is,
		tableService:     ts,
		settingsService:  ss,
		reportService:    rs,
	}
}

// FinalizeOrder converts a cart into an immutable order record.
//
// The sequence is deliberately not transactional: once the order record is
// durably written, inventory decrement, table release and report regeneration
// are applied best-effort and logged on failure. A failure between those steps
// can leave inventory unadjusted for an order that exists; that matches the
// single-device, low-volume consistency contract and reports must be repaired
// with an explicit Recompute rather than rolled back.
func (s *orderService) FinalizeOrder(req FinalizeOrderRequest) (*models.Order, error) {
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unsupported payment method '%s'", ErrValidation, req.PaymentMethod)
	}

	lines, billLines, err := s.snapshotCart(req.Items)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrValidation, ErrEmptyCart)
	}

	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for checkout: %w", err)
	}

	totals, err := ComputeTotals(billLines, settings.Tax)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := models.Order{
		ID:            newOrderID(now),
		OrderCode:     newOrderCode(now),
		TableID:       req.TableID,
		Customer:      req.Customer,
		Items:         lines,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		ServiceCharge: totals.ServiceCharge,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusCompleted,
		OrderTime:     now,
		DateKey:       models.DateKeyFor(now),
	}

	if req.PaymentMethod == string(models.PaymentCash) {
		if req.AmountTendered == nil || *req.AmountTendered < totals.Total {
			return nil, fmt.Errorf("%w: total is %.2f", ErrInsufficientPayment, totals.Total)
		}
		change := Round2(*req.AmountTendered - totals.Total)
		order.AmountTendered = req.AmountTendered
		order.ChangeDue = &change
	}

	if err := s.orderRepo.CreateWithItems(&order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	// Post-persistence steps: best-effort, see method comment. The decrement
	// always runs so CancelOrder's stock return stays symmetric; the
	// enable_inventory toggle only controls what the settings consumers show.
	if err := s.inventoryService.DecrementForOrder(order.Items); err != nil {
		utils.LogError(err, "order finalized but inventory decrement failed")
	}
	if req.TableID != nil {
		if _, err := s.tableService.Release(*req.TableID); err != nil {
			utils.LogError(err, "order finalized but table release failed")
		}
	}
	if _, err := s.reportService.Recompute(order.DateKey); err != nil {
		utils.LogError(err, "order finalized but daily report recompute failed")
	}

	return &order, nil
}

// snapshotCart resolves cart lines against the catalog and copies each menu
// item by value, so later catalog edits never alter this order.
func (s *orderService) snapshotCart(items []CartLineRequest) ([]models.OrderLine, []BillLine, error) {
	lines := make([]models.OrderLine, 0, len(items))
	billLines := make([]BillLine, 0, len(items))
	for _, item := range items {
		if item.Quantity < 0 {
			return nil, nil, fmt.Errorf("%w: quantity for item %d cannot be negative", ErrValidation, item.MenuItemID)
		}
		if item.Quantity == 0 {
			continue
		}
		menuItem, err := s.menuRepo.GetByID(item.MenuItemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: item %d", ErrMenuItemNotFound, item.MenuItemID)
			}
			return nil, nil, fmt.Errorf("failed to fetch menu item %d: %w", item.MenuItemID, err)
		}
		if !menuItem.IsAvailable {
			return nil, nil, fmt.Errorf("%w: item '%s' is not available", ErrMenuItemNotFound, menuItem.Name)
		}
		lines = append(lines, models.OrderLine{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Category:   menuItem.Category,
			UnitPrice:  menuItem.Price,
			Quantity:   item.Quantity,
			LineTotal:  Round2(menuItem.Price * float64(item.Quantity)),
		})
		billLines = append(billLines, BillLine{Price: menuItem.Price, Quantity: item.Quantity})
	}
	return lines, billLines, nil
}

// newOrderID builds the time-based unique id, e.g. "order_1736496000000_4821".
func newOrderID(t time.Time) string {
	return fmt.Sprintf("order_%d_%04d", t.UnixMilli(), rand.Intn(10000))
}

// newOrderCode builds the short display code from the trailing digits of the
// timestamp, e.g. "#496000".
func newOrderCode(t time.Time) string {
	return fmt.Sprintf("#%06d", t.UnixMilli()%1000000)
}

func (s *orderService) GetOrderByID(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return order, nil
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.List(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

// CancelOrder moves a completed order to cancelled, returns its tracked stock
// and regenerates that day's report. Orders are otherwise immutable.
func (s *orderService) CancelOrder(orderID string) (*models.Order, error) {
	order, err := s.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: order %s is already cancelled", ErrInvalidOrderStatus, orderID)
	}

	if err := s.orderRepo.UpdateStatus(orderID, models.OrderStatusCancelled, time.Now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}
	order.Status = models.OrderStatusCancelled

	if err := s.inventoryService.RestoreForOrder(order.Items); err != nil {
		utils.LogError(err, "order cancelled but stock return failed")
	}
	if _, err := s.reportService.Recompute(order.DateKey); err != nil {
		utils.LogError(err, "order cancelled but daily report recompute failed")
	}

	return order, nil
}
