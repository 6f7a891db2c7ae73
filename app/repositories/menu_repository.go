package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
)

// MenuStore is the menu persistence used by the menu service. The gorm
// repository and its cached decorator both satisfy it.
type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	Find(ctx context.Context, id uint) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Save(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uint) error
}

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// All returns every item in id order.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

// Find returns nil, nil when id is unknown.
func (r *MenuRepository) Find(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) Save(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}
