package cache

import (
	"encoding/json"
	"time"

	"github.com/caselith/lexfmt/internal/model"
)

// BlockCache stores formatted block lists on top of a byte cache. Entries
// that fail to decode are treated as misses, so a schema change just falls
// through to a fresh format.
type BlockCache struct {
	backend Cache
	ttl     time.Duration
}

// NewBlockCache creates a block cache with the given default TTL
func NewBlockCache(backend Cache, ttl time.Duration) *BlockCache {
	return &BlockCache{backend: backend, ttl: ttl}
}

// Get retrieves a formatted block list
func (c *BlockCache) Get(key string) ([]model.ResolvedBlock, bool) {
	data, found := c.backend.Get(key)
	if !found {
		return nil, false
	}
	var blocks []model.ResolvedBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, false
	}
	return blocks, true
}

// Set stores a formatted block list
func (c *BlockCache) Set(key string, blocks []model.ResolvedBlock) error {
	data, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	return c.backend.Set(key, data, c.ttl)
}
