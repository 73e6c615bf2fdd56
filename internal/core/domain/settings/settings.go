// Package settings models process-wide configuration that crosses execution
// contexts, currently just the mute flag. The value is loaded once at
// startup and replaced whenever another writer changes it; it is injected
// into consumers instead of being read from ambient global state.
package settings

import (
	"context"
	"sync"
)

type Settings struct {
	Muted bool
}

// Repository stores the settings under their own key, separate from the
// reminder list. Watch delivers the new settings value after an external
// change.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Set(ctx context.Context, s Settings) error
	Watch(ctx context.Context) (<-chan Settings, error)
}

// Cache is the in-process view of the settings value.
type Cache struct {
	lock    sync.RWMutex
	current Settings
}

func NewCache(initial Settings) *Cache {
	return &Cache{current: initial}
}

func (c *Cache) Current() Settings {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.current
}

func (c *Cache) Muted() bool {
	return c.Current().Muted
}

func (c *Cache) Replace(s Settings) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.current = s
}
