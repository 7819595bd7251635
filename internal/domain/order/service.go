// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/domain/cart"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// PlaceOrderRequest represents checkout data
type PlaceOrderRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	ZipCode       string `json:"zip_code" binding:"required"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// OrderListResponse represents order list response with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// PlaceOrder converts the user's cart into an order. The order row, its
// items, and the cart deletion commit or roll back together; unit prices
// are snapshotted from the catalog at this moment. Cart rows are read
// FOR UPDATE so two concurrent checkouts by the same user cannot both
// convert the same cart.
func (s *Service) PlaceOrder(userID uint, req *PlaceOrderRequest) (*Order, error) {
	if !IsValidPaymentMethod(req.PaymentMethod) {
		return nil, apperrors.InvalidInputf("unsupported payment method %q", req.PaymentMethod)
	}

	var placed Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []cart.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Order("id ASC").
			Find(&cartItems).Error
		if err != nil {
			return apperrors.Storage(err, "failed to load cart for checkout")
		}

		if len(cartItems) == 0 {
			return apperrors.InvalidStatef("cart is empty")
		}

		var subtotal int64
		orderItems := make([]OrderItem, 0, len(cartItems))
		cartItemIDs := make([]uint, 0, len(cartItems))
		for _, item := range cartItems {
			cartItemIDs = append(cartItemIDs, item.ID)
			var prod product.Product
			result := tx.Where("id = ?", item.ProductID).First(&prod)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrRecordNotFound) {
					return apperrors.InvalidStatef("product %d is no longer available", item.ProductID)
				}
				return apperrors.Storage(result.Error, "failed to resolve product for checkout")
			}

			unitPrice := prod.EffectivePrice()
			lineTotal := unitPrice * int64(item.Quantity)
			subtotal += lineTotal

			orderItems = append(orderItems, OrderItem{
				ProductID:   prod.ID,
				ProductName: prod.Name,
				UnitPrice:   unitPrice,
				Quantity:    item.Quantity,
				LineTotal:   lineTotal,
			})
		}

		placed = Order{
			UserID:        userID,
			Status:        OrderStatusPending,
			Total:         subtotal,
			FullName:      req.FullName,
			Address:       req.Address,
			City:          req.City,
			ZipCode:       req.ZipCode,
			Phone:         req.Phone,
			PaymentMethod: req.PaymentMethod,
		}

		if err := tx.Create(&placed).Error; err != nil {
			return apperrors.Storage(err, "failed to create order")
		}

		placed.OrderNumber = generateOrderNumber(placed.ID)
		if err := tx.Model(&placed).Update("order_number", placed.OrderNumber).Error; err != nil {
			return apperrors.Storage(err, "failed to assign order number")
		}

		for i := range orderItems {
			orderItems[i].OrderID = placed.ID
			if err := tx.Create(&orderItems[i]).Error; err != nil {
				return apperrors.Storage(err, "failed to create order item")
			}

			err := tx.Model(&product.Product{}).
				Where("id = ?", orderItems[i].ProductID).
				UpdateColumn("stock", gorm.Expr("stock - ?", orderItems[i].Quantity)).Error
			if err != nil {
				return apperrors.Storage(err, "failed to adjust stock")
			}
		}

		// Clearing inside the transaction means the cart rows either
		// all become order items or all stay in the cart. Only the rows
		// read under lock are removed; a line added concurrently stays
		// in the cart for the next checkout.
		if err := tx.Where("id IN ?", cartItemIDs).Delete(&cart.CartItem{}).Error; err != nil {
			return apperrors.Storage(err, "failed to clear cart after checkout")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items").Preload("Items.Product").First(&placed, placed.ID).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to load placed order")
	}

	return &placed, nil
}

// GetUserOrders retrieves the user's orders, newest first
func (s *Service) GetUserOrders(userID uint, page, limit int) (*OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to count orders")
	}

	var orders []Order
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Storage(err, "failed to retrieve orders")
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &OrderListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// GetOrder retrieves a single order the user owns. Orders belonging to
// another user surface as NotFound.
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var ord Order
	result := s.db.Preload("Items").Preload("Items.Product").Where("id = ?", orderID).First(&ord)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("order %d not found", orderID)
		}
		return nil, apperrors.Storage(result.Error, "failed to retrieve order")
	}

	if ord.UserID != userID {
		return nil, apperrors.NotFoundf("order %d not found", orderID)
	}

	return &ord, nil
}

// UpdateOrderStatus moves an order along the fulfillment lifecycle
func (s *Service) UpdateOrderStatus(orderID uint, status OrderStatus) (*Order, error) {
	var ord Order
	result := s.db.Where("id = ?", orderID).First(&ord)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("order %d not found", orderID)
		}
		return nil, apperrors.Storage(result.Error, "failed to retrieve order")
	}

	if !ord.CanTransitionTo(status) {
		return nil, apperrors.InvalidStatef("order cannot move from %s to %s", ord.Status, status)
	}

	if err := s.db.Model(&ord).Update("status", status).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to update order status")
	}

	ord.Status = status
	return &ord, nil
}

// CancelOrder cancels a pending or processing order the user owns,
// returning its units to stock
func (s *Service) CancelOrder(userID, orderID uint) (*Order, error) {
	ord, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	if !ord.CanBeCancelled() {
		return nil, apperrors.InvalidStatef("order in status %s cannot be cancelled", ord.Status)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range ord.Items {
			err := tx.Model(&product.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return apperrors.Storage(err, "failed to restore stock")
			}
		}

		if err := tx.Model(ord).Update("status", OrderStatusCancelled).Error; err != nil {
			return apperrors.Storage(err, "failed to cancel order")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	ord.Status = OrderStatusCancelled
	return ord, nil
}

func generateOrderNumber(orderID uint) string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().UTC().Format("20060102"), orderID)
}
