package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"digital-store-backend/internal/cache"
)

func TestPageCache_PutGet(t *testing.T) {
	c := cache.NewPageCache()

	_, ok := c.Get(cache.ProductsPath)
	assert.False(t, ok)

	c.Put(cache.ProductsPath, "listing")
	v, ok := c.Get(cache.ProductsPath)
	assert.True(t, ok)
	assert.Equal(t, "listing", v)
}

func TestPageCache_InvalidateOnlyNamedPaths(t *testing.T) {
	c := cache.NewPageCache()
	c.Put(cache.HomePath, "home")
	c.Put(cache.ProductsPath, "listing")
	c.Put("/other", "other")

	c.Invalidate(cache.HomePath, cache.ProductsPath)

	_, ok := c.Get(cache.HomePath)
	assert.False(t, ok)
	_, ok = c.Get(cache.ProductsPath)
	assert.False(t, ok)

	v, ok := c.Get("/other")
	assert.True(t, ok)
	assert.Equal(t, "other", v)
}
