package service

import (
	"container/list"
	"sync"

	"github.com/shree6791/gramvana/internal/models"
)

// DefaultCacheSize bounds the recipe cache. A browsing session generates
// tens of recipes, not thousands; least-recently-used entries fall out once
// the bound is hit.
const DefaultCacheSize = 256

// RecipeCache is a bounded in-memory LRU of generated recipes, keyed by
// recipe id. It resolves detail-view navigations without re-generating.
// Shared process-wide; per-user session state lives in SessionStore.
type RecipeCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	items    map[string]*list.Element
}

type cacheEntry struct {
	id     string
	recipe models.Recipe
}

// NewRecipeCache creates a cache bounded to capacity entries. A
// non-positive capacity falls back to DefaultCacheSize.
func NewRecipeCache(capacity int) *RecipeCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &RecipeCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Put upserts a recipe by id and marks it most recently used.
func (c *RecipeCache) Put(recipe models.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[recipe.ID]; ok {
		el.Value.(*cacheEntry).recipe = recipe
		c.order.MoveToFront(el)
		return
	}

	c.items[recipe.ID] = c.order.PushFront(&cacheEntry{id: recipe.ID, recipe: recipe})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).id)
	}
}

// Get returns a copy of the cached recipe, if present.
func (c *RecipeCache) Get(id string) (models.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[id]
	if !ok {
		return models.Recipe{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).recipe, true
}

// Remove drops a single entry.
func (c *RecipeCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[id]; ok {
		c.order.Remove(el)
		delete(c.items, id)
	}
}

// Clear drops every entry.
func (c *RecipeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element)
}

// Len reports the number of cached recipes.
func (c *RecipeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
