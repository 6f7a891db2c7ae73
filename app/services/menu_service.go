package services

import (
	"context"
	"io"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/app/repositories"
	"github.com/hpfoods/hpfoods-api/pkg/apperr"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/metrics"
	"github.com/hpfoods/hpfoods-api/pkg/storage"
	"github.com/hpfoods/hpfoods-api/pkg/validate"
)

// MenuItemInput carries the form fields of a menu item write. ID is only
// read on update, where it must equal the path id.
type MenuItemInput struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	SpecialTag  string  `json:"specialTag"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"       validate:"gte=0"`
}

// Upload is an image file sent with a menu item.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

func (u *Upload) empty() bool { return u == nil || u.Body == nil || u.Size <= 0 }

// MenuService manages menu items and their images.
type MenuService struct {
	store repositories.MenuStore
	disk  storage.Disk
}

func NewMenuService(store repositories.MenuStore, disk storage.Disk) *MenuService {
	return &MenuService{store: store, disk: disk}
}

// List returns every item in id order.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.store.All(ctx)
	if err != nil {
		return nil, apperr.Persistence("Error while loading the menu", err)
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	if id == 0 {
		return nil, apperr.NotFound("Menu item not found")
	}
	item, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("Error while loading the menu item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("Menu item not found")
	}
	return item, nil
}

// Create stores the image and then the row. If the row cannot be saved
// the image is removed again, unless it replaced an existing file.
func (s *MenuService) Create(ctx context.Context, in MenuItemInput, up *Upload) (*models.MenuItem, error) {
	if up.empty() {
		return nil, apperr.Validation("File is required")
	}
	if err := validate.Check(&in); err != nil {
		return nil, err
	}

	staged, err := storage.Stage(ctx, s.disk, storage.ImageKey(up.Filename), up.Body)
	if err != nil {
		return nil, apperr.Persistence("Error while saving the image", err)
	}

	item := &models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		SpecialTag:  in.SpecialTag,
		Category:    in.Category,
		Price:       in.Price,
		Image:       staged.Key,
	}
	if err := s.store.Create(ctx, item); err != nil {
		staged.Discard(ctx)
		return nil, apperr.Persistence("Error while creating the menu item", err)
	}
	return item, nil
}

// Update rewrites the fields of item id. A non-empty upload replaces the
// image and the previous file is deleted once the row is saved.
func (s *MenuService) Update(ctx context.Context, id uint, in MenuItemInput, up *Upload) (*models.MenuItem, error) {
	if in.ID != id {
		return nil, apperr.BadRequest("Menu item id does not match")
	}
	if err := validate.Check(&in); err != nil {
		return nil, err
	}

	item, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("Error while loading the menu item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("Menu item not found")
	}

	var staged *storage.Staged
	oldKey := item.Image
	if !up.empty() {
		staged, err = storage.Stage(ctx, s.disk, storage.ImageKey(up.Filename), up.Body)
		if err != nil {
			return nil, apperr.Persistence("Error while saving the image", err)
		}
		item.Image = staged.Key
	}

	item.Name = in.Name
	item.Description = in.Description
	item.SpecialTag = in.SpecialTag
	item.Category = in.Category
	item.Price = in.Price

	if err := s.store.Save(ctx, item); err != nil {
		staged.Discard(ctx)
		return nil, apperr.Persistence("Error while updating the menu item", err)
	}

	if staged != nil && oldKey != "" && oldKey != staged.Key {
		s.deleteImage(ctx, oldKey)
	}
	return item, nil
}

// Delete removes the image and then the row.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if item.Image != "" {
		if err := s.disk.Delete(ctx, item.Image); err != nil {
			return apperr.Persistence("Error while deleting the image", err)
		}
		metrics.ImageOperations.WithLabelValues("delete").Inc()
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return apperr.Persistence("Error while deleting the menu item", err)
	}
	return nil
}

func (s *MenuService) deleteImage(ctx context.Context, key string) {
	if err := s.disk.Delete(ctx, key); err != nil {
		logger.WithCtx(ctx).Warn("old image delete failed", "key", key, "error", err)
		return
	}
	metrics.ImageOperations.WithLabelValues("delete").Inc()
}
