// Package cache keeps recently parsed trees so repeated resprof, parseX and
// conform calls on the same input skip the parser. It is a bounded LRU
// (github.com/golang/groupcache/lru) keyed by a SHA-256 fingerprint of the
// input, with owner-scoped invalidation used by the descriptor watcher.
package cache
