package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"mercator-hq/stc/pkg/stc/ast"
	"mercator-hq/stc/pkg/telemetry/metrics"

	"github.com/golang/groupcache/lru"
)

// Name labels this cache in metrics.
const Name = "trees"

// Format names the notation of a cached input.
type Format string

const (
	FormatSTCS Format = "stcs"
	FormatSTCX Format = "stcx"
)

// Key is the content fingerprint of a parser input.
type Key string

// Fingerprint returns the key of a parser input. The format is part of the
// key, so the same text parsed as STC-S and as STC-X never collides.
func Fingerprint(format Format, text string) Key {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return Key(hex.EncodeToString(h.Sum(nil)))
}

// Config configures the tree cache.
type Config struct {
	Enabled    bool // Enable caching
	MaxEntries int  // Maximum number of cached inputs; 0 means unlimited
}

type entry struct {
	trees []*ast.Tree
	owner string
}

// Cache holds parsed trees keyed by input fingerprint. Entries may belong to
// an owner (a descriptor id) so that every tree parsed from a descriptor can
// be dropped when that descriptor changes.
//
// Trees are cloned on the way in and on the way out; callers may modify what
// they receive.
type Cache struct {
	config  Config
	metrics *metrics.Collector

	mu     sync.Mutex
	lru    *lru.Cache
	owners map[string]map[Key]struct{}
}

// New creates a tree cache. collector may be nil.
func New(cfg Config, collector *metrics.Collector) *Cache {
	c := &Cache{
		config:  cfg,
		metrics: collector,
		lru:     lru.New(cfg.MaxEntries),
		owners:  make(map[string]map[Key]struct{}),
	}
	c.lru.OnEvicted = c.onEvicted
	return c
}

// onEvicted runs with c.mu held, from Add, Remove and Clear alike.
func (c *Cache) onEvicted(k lru.Key, v interface{}) {
	if e, ok := v.(*entry); ok {
		c.disown(k.(Key), e.owner)
	}
	c.metrics.RecordCacheEviction(Name)
}

// disown drops key from owner's index. c.mu must be held.
func (c *Cache) disown(key Key, owner string) {
	if owner == "" {
		return
	}
	if keys := c.owners[owner]; keys != nil {
		delete(keys, key)
		if len(keys) == 0 {
			delete(c.owners, owner)
		}
	}
}

// Get returns copies of the trees cached under key.
func (c *Cache) Get(key Key) ([]*ast.Tree, bool) {
	if !c.config.Enabled {
		return nil, false
	}

	c.mu.Lock()
	v, ok := c.lru.Get(key)
	c.mu.Unlock()

	if !ok {
		c.metrics.RecordCacheMiss(Name)
		return nil, false
	}
	c.metrics.RecordCacheHit(Name)
	return cloneTrees(v.(*entry).trees), true
}

// Add stores copies of trees under key. A non-empty owner ties the entry to
// that owner for InvalidateOwner.
func (c *Cache) Add(key Key, owner string, trees []*ast.Tree) {
	if !c.config.Enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A replaced entry is not an eviction, but its old owner must let go.
	if v, ok := c.lru.Get(key); ok {
		c.disown(key, v.(*entry).owner)
	}
	c.lru.Add(key, &entry{trees: cloneTrees(trees), owner: owner})
	if owner != "" {
		keys := c.owners[owner]
		if keys == nil {
			keys = make(map[Key]struct{})
			c.owners[owner] = keys
		}
		keys[key] = struct{}{}
	}
	c.metrics.UpdateCacheSize(Name, c.lru.Len())
}

// InvalidateOwner removes every entry added for owner and returns how many
// were removed.
func (c *Cache) InvalidateOwner(owner string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := c.owners[owner]
	n := len(keys)
	for key := range keys {
		c.lru.Remove(key)
	}
	delete(c.owners, owner)
	c.metrics.UpdateCacheSize(Name, c.lru.Len())
	return n
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
	c.owners = make(map[string]map[Key]struct{})
	c.metrics.UpdateCacheSize(Name, 0)
}

// Len returns the current number of cached inputs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func cloneTrees(trees []*ast.Tree) []*ast.Tree {
	out := make([]*ast.Tree, len(trees))
	for i, t := range trees {
		out[i] = t.Clone()
	}
	return out
}
