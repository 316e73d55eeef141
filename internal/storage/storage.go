package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key layout: prefix, 8-byte big-endian hash, 1-byte depth.
const (
	keyPrefixPerft = 'p'
	perftKeyLen    = 1 + 8 + 1
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("storage: cache is closed")

// PerftEntry is the stored value for one (position, depth) pair.
type PerftEntry struct {
	FEN      string    `json:"fen"`
	Depth    int       `json:"depth"`
	Nodes    uint64    `json:"nodes"`
	Recorded time.Time `json:"recorded"`
}

// CacheStats counts lookups since the cache was opened.
type CacheStats struct {
	Hits       uint64
	Misses     uint64
	Collisions uint64
	Writes     uint64
}

// PerftCache wraps BadgerDB for persistent perft results.
// Get and Put may be called concurrently; Close may not.
type PerftCache struct {
	db *badger.DB

	hits       atomic.Uint64
	misses     atomic.Uint64
	collisions atomic.Uint64
	writes     atomic.Uint64
}

// Open opens (or creates) a perft cache in dir. An empty dir uses the
// platform data directory.
func Open(dir string) (*PerftCache, error) {
	if dir == "" {
		var err error
		dir, err = GetDatabaseDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	return open(opts)
}

// OpenInMemory opens a cache that lives only as long as the process.
func OpenInMemory() (*PerftCache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*PerftCache, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &PerftCache{db: db}, nil
}

// Close closes the database
func (c *PerftCache) Close() error {
	if c.db != nil {
		err := c.db.Close()
		c.db = nil
		return err
	}
	return nil
}

func perftKey(hash uint64, depth int) []byte {
	key := make([]byte, perftKeyLen)
	key[0] = keyPrefixPerft
	binary.BigEndian.PutUint64(key[1:9], hash)
	key[9] = byte(depth)
	return key
}

// Get returns the stored node count for the position. A stored entry whose
// FEN differs from fen is a hash collision and counts as a miss.
func (c *PerftCache) Get(hash uint64, depth int, fen string) (uint64, bool) {
	if c.db == nil || depth < 0 || depth > 255 {
		c.misses.Add(1)
		return 0, false
	}

	var entry PerftEntry
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})

	switch {
	case err != nil || !found:
		c.misses.Add(1)
		return 0, false
	case entry.FEN != fen || entry.Depth != depth:
		c.collisions.Add(1)
		c.misses.Add(1)
		return 0, false
	}

	c.hits.Add(1)
	return entry.Nodes, true
}

// Put stores the node count for the position, replacing any earlier entry.
func (c *PerftCache) Put(hash uint64, depth int, fen string, nodes uint64) error {
	if c.db == nil {
		return ErrClosed
	}
	if depth < 0 || depth > 255 {
		return nil
	}

	data, err := json.Marshal(PerftEntry{
		FEN:      fen,
		Depth:    depth,
		Nodes:    nodes,
		Recorded: time.Now(),
	})
	if err != nil {
		return err
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, depth), data)
	})
	if err == nil {
		c.writes.Add(1)
	}
	return err
}

// Len returns the number of stored entries.
func (c *PerftCache) Len() (int, error) {
	if c.db == nil {
		return 0, ErrClosed
	}

	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte{keyPrefixPerft}

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Clear removes every entry.
func (c *PerftCache) Clear() error {
	if c.db == nil {
		return ErrClosed
	}
	return c.db.DropAll()
}

// Stats returns the lookup counters.
func (c *PerftCache) Stats() CacheStats {
	return CacheStats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Collisions: c.collisions.Load(),
		Writes:     c.writes.Load(),
	}
}

// HitRate returns hits as a percentage (0-100) of all lookups.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
