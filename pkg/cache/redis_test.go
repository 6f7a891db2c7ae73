package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hpfoods/hpfoods-api/pkg/cache"
)

func TestDisabledStoreIsAlwaysEmpty(t *testing.T) {
	ctx := context.Background()
	c := cache.New(nil, "menu")

	assert.NoError(t, c.Set(ctx, "menu:all", []int{1, 2}, time.Minute))

	var got []int
	assert.False(t, c.Get(ctx, "menu:all", &got))
	assert.Nil(t, got)
	assert.NoError(t, c.Del(ctx, "menu:all"))
}

func TestConnectWithoutAddressDisablesCache(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")

	assert.NoError(t, cache.Connect(context.Background()))
	assert.Nil(t, cache.RDB)
	assert.NoError(t, cache.Close())
}
