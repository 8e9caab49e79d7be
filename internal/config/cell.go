package config

import "sync/atomic"

// Cell publishes the current configuration snapshot. Readers never block and
// never observe a partially written snapshot: replacement is a pointer swap.
type Cell struct {
	current atomic.Pointer[AppConfig]
}

func NewCell(initial *AppConfig) *Cell {
	c := &Cell{}
	c.Replace(initial)
	return c
}

// Load returns the active snapshot. Callers must treat it as read-only.
func (c *Cell) Load() *AppConfig {
	return c.current.Load()
}

// Replace swaps in next and returns the snapshot it displaced. Snapshots
// obtained before the swap stay valid.
func (c *Cell) Replace(next *AppConfig) *AppConfig {
	if next == nil {
		panic("config: nil snapshot")
	}
	return c.current.Swap(next)
}

// Update derives a new snapshot from the current one and installs it. fn gets
// a copy and may be called more than once if another writer races.
func (c *Cell) Update(fn func(AppConfig) AppConfig) *AppConfig {
	for {
		prev := c.current.Load()
		next := fn(*prev)
		if c.current.CompareAndSwap(prev, &next) {
			return &next
		}
	}
}
