package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DB is the handle services open transactions on.
func (r *OrderRepository) DB() *gorm.DB { return r.db }

// List returns orders newest first with details and their menu items.
// An empty userID lists every order.
func (r *OrderRepository) List(ctx context.Context, userID string) ([]models.OrderHeader, error) {
	q := r.db.WithContext(ctx).
		Preload("OrderDetails", func(db *gorm.DB) *gorm.DB { return db.Order("order_details.id ASC") }).
		Preload("OrderDetails.MenuItem").
		Order("id DESC")
	if userID != "" {
		q = q.Where("application_user_id = ?", userID)
	}

	orders := []models.OrderHeader{}
	err := q.Find(&orders).Error
	return orders, err
}

// Find returns nil, nil when id is unknown.
func (r *OrderRepository) Find(ctx context.Context, id uint) (*models.OrderHeader, error) {
	var order models.OrderHeader
	err := r.db.WithContext(ctx).
		Preload("OrderDetails", func(db *gorm.DB) *gorm.DB { return db.Order("order_details.id ASC") }).
		Preload("OrderDetails.MenuItem").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateHeader inserts h without its details.
func (r *OrderRepository) CreateHeader(ctx context.Context, tx *gorm.DB, h *models.OrderHeader) error {
	return conn(ctx, r.db, tx).Omit("OrderDetails").Create(h).Error
}

// CreateDetails inserts the lines of one order.
func (r *OrderRepository) CreateDetails(ctx context.Context, tx *gorm.DB, details []models.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	return conn(ctx, r.db, tx).Omit("MenuItem").Create(&details).Error
}
