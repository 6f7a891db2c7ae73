package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/pkg/cache"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
)

const (
	menuAllKey = "menu:all"
	menuTTL    = 10 * time.Minute
)

func menuItemKey(id uint) string { return "menu:" + strconv.FormatUint(uint64(id), 10) }

// CachedMenu reads through c before next. Writes go to next and then
// drop the affected keys. Cache failures never fail a request.
type CachedMenu struct {
	next  MenuStore
	cache cache.Store
}

func NewCachedMenu(next MenuStore, c cache.Store) *CachedMenu {
	return &CachedMenu{next: next, cache: c}
}

func (m *CachedMenu) All(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if m.cache.Get(ctx, menuAllKey, &items) {
		return items, nil
	}

	items, err := m.next.All(ctx)
	if err != nil {
		return nil, err
	}
	m.set(ctx, menuAllKey, items)
	return items, nil
}

func (m *CachedMenu) Find(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if m.cache.Get(ctx, menuItemKey(id), &item) {
		return &item, nil
	}

	found, err := m.next.Find(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	m.set(ctx, menuItemKey(id), found)
	return found, nil
}

func (m *CachedMenu) Create(ctx context.Context, item *models.MenuItem) error {
	if err := m.next.Create(ctx, item); err != nil {
		return err
	}
	m.invalidate(ctx, menuAllKey)
	return nil
}

func (m *CachedMenu) Save(ctx context.Context, item *models.MenuItem) error {
	if err := m.next.Save(ctx, item); err != nil {
		return err
	}
	m.invalidate(ctx, menuAllKey, menuItemKey(item.ID))
	return nil
}

func (m *CachedMenu) Delete(ctx context.Context, id uint) error {
	if err := m.next.Delete(ctx, id); err != nil {
		return err
	}
	m.invalidate(ctx, menuAllKey, menuItemKey(id))
	return nil
}

func (m *CachedMenu) set(ctx context.Context, key string, v any) {
	if err := m.cache.Set(ctx, key, v, menuTTL); err != nil {
		logger.WithCtx(ctx).Warn("menu cache write failed", "key", key, "error", err)
	}
}

func (m *CachedMenu) invalidate(ctx context.Context, keys ...string) {
	if err := m.cache.Del(ctx, keys...); err != nil {
		logger.WithCtx(ctx).Warn("menu cache invalidation failed", "keys", keys, "error", err)
	}
}
