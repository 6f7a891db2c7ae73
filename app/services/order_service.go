package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/app/repositories"
	"github.com/hpfoods/hpfoods-api/pkg/apperr"
	"github.com/hpfoods/hpfoods-api/pkg/event"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/metrics"
	"github.com/hpfoods/hpfoods-api/pkg/validate"
)

type OrderDetailInput struct {
	MenuItemID uint    `json:"menuItemId" validate:"required"`
	Quantity   int     `json:"quantity"   validate:"gt=0"`
	ItemName   string  `json:"itemName"   validate:"required"`
	Price      float64 `json:"price"      validate:"gte=0"`
}

// OrderInput is the body of POST /api/order. The totals are stored as
// given.
type OrderInput struct {
	PickupName        string             `json:"pickupName"        validate:"required"`
	PickupPhoneNumber string             `json:"pickupPhoneNumber" validate:"required"`
	PickupEmail       string             `json:"pickupEmail"       validate:"required,email"`
	ApplicationUserID string             `json:"applicationUserId"`
	OrderTotalPrice   float64            `json:"orderTotalPrice"   validate:"gte=0"`
	TotalItems        int                `json:"totalItems"        validate:"gte=0"`
	OrderDetails      []OrderDetailInput `json:"orderDetails"      validate:"required,min=1,dive"`
}

// OrderCreatedEvent is the payload of event.OrderCreated.
type OrderCreatedEvent struct {
	OrderHeaderID     uint      `json:"orderHeaderId"`
	ApplicationUserID string    `json:"applicationUserId"`
	PickupName        string    `json:"pickupName"`
	OrderTotalPrice   float64   `json:"orderTotalPrice"`
	TotalItems        int       `json:"totalItems"`
	Status            string    `json:"status"`
	OrderDate         time.Time `json:"orderDate"`
}

type OrderService struct {
	orders *repositories.OrderRepository
	now    func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository(db), now: time.Now}
}

// WithClock sets the clock used for OrderDate.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// ListOrders returns orders newest first, only userID's when it is set.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.OrderHeader, error) {
	orders, err := s.orders.List(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("Error while loading orders", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.OrderHeader, error) {
	if id == 0 {
		return nil, apperr.InvalidArgument("Invalid order ID")
	}
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("Error while loading the order", err)
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	return order, nil
}

// CreateOrder stores the header and its detail lines in one transaction.
// Nothing is stored unless every line is.
func (s *OrderService) CreateOrder(ctx context.Context, in OrderInput) (*models.OrderHeader, error) {
	if err := validate.Check(&in); err != nil {
		return nil, err
	}

	header := &models.OrderHeader{
		PickupName:        in.PickupName,
		PickupPhoneNumber: in.PickupPhoneNumber,
		PickupEmail:       in.PickupEmail,
		ApplicationUserID: in.ApplicationUserID,
		OrderDate:         s.now().UTC(),
		OrderTotalPrice:   in.OrderTotalPrice,
		Status:            models.StatusConfirmed,
		TotalItems:        in.TotalItems,
	}

	err := s.orders.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orders.CreateHeader(ctx, tx, header); err != nil {
			return err
		}

		details := make([]models.OrderDetail, 0, len(in.OrderDetails))
		for _, d := range in.OrderDetails {
			details = append(details, models.OrderDetail{
				OrderHeaderID: header.ID,
				MenuItemID:    d.MenuItemID,
				Quantity:      d.Quantity,
				ItemName:      d.ItemName,
				Price:         d.Price,
			})
		}
		if err := s.orders.CreateDetails(ctx, tx, details); err != nil {
			return err
		}
		header.OrderDetails = details
		return nil
	})
	if err != nil {
		return nil, apperr.Persistence("Error while creating the order", err)
	}

	metrics.OrdersCreated.Inc()
	logger.WithCtx(ctx).Info("order created", "order_id", header.ID, "details", len(header.OrderDetails))
	event.FireAsync(ctx, event.OrderCreated, OrderCreatedEvent{
		OrderHeaderID:     header.ID,
		ApplicationUserID: header.ApplicationUserID,
		PickupName:        header.PickupName,
		OrderTotalPrice:   header.OrderTotalPrice,
		TotalItems:        header.TotalItems,
		Status:            header.Status,
		OrderDate:         header.OrderDate,
	})
	return header, nil
}
