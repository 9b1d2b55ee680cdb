package client

import "sync"

// SummaryCache is the local, non-authoritative copy of the signed-in
// author's summary. Injectable so sessions can share, swap or fake it.
type SummaryCache interface {
	Get() (string, bool)
	Set(summary string)
	Clear()
}

// MemoryCache is the default in-process SummaryCache.
type MemoryCache struct {
	mu      sync.RWMutex
	summary string
	set     bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summary, c.set
}

func (c *MemoryCache) Set(summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = summary
	c.set = true
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = ""
	c.set = false
}
