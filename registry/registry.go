// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry keeps the trusted bridge emitter of every remote chain.
package registry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/geth/common"
)

const DefaultCacheSize = 256

var emitterPrefix = []byte("emitter")

// Registry maps a chain id to the single emitter trusted for it. A later
// registration for the same chain replaces the earlier one.
type Registry struct {
	mu    sync.RWMutex
	db    database.Database
	cache *lru.Cache[uint16, common.Hash]
}

// New returns a registry persisted in db
func New(db database.Database, cacheSize int) *Registry {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Registry{
		db:    prefixdb.New(emitterPrefix, db),
		cache: lru.NewCache[uint16, common.Hash](cacheSize),
	}
}

// Register trusts emitter for chainID
func (r *Registry) Register(chainID uint16, emitter common.Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Put(chainKey(chainID), emitter.Bytes()); err != nil {
		return fmt.Errorf("failed to store emitter for chain %d: %w", chainID, err)
	}
	r.cache.Put(chainID, emitter)
	return nil
}

// IsTrusted reports whether candidate is the registered emitter of chainID.
// Chains without a registration trust nobody.
func (r *Registry) IsTrusted(chainID uint16, candidate common.Hash) (bool, error) {
	emitter, ok, err := r.Emitter(chainID)
	if err != nil || !ok {
		return false, err
	}
	return emitter == candidate, nil
}

// Emitter returns the emitter registered for chainID
func (r *Registry) Emitter(chainID uint16) (common.Hash, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if emitter, ok := r.cache.Get(chainID); ok {
		return emitter, true, nil
	}

	b, err := r.db.Get(chainKey(chainID))
	if errors.Is(err, database.ErrNotFound) {
		return common.Hash{}, false, nil
	}
	if err != nil {
		return common.Hash{}, false, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, false, fmt.Errorf("corrupt emitter for chain %d: %d bytes", chainID, len(b))
	}

	emitter := common.BytesToHash(b)
	r.cache.Put(chainID, emitter)
	return emitter, true, nil
}

// Emitters returns every registration
func (r *Registry) Emitters() (map[uint16]common.Hash, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it := r.db.NewIterator()
	defer it.Release()

	emitters := make(map[uint16]common.Hash)
	for it.Next() {
		key, value := it.Key(), it.Value()
		if len(key) != 2 || len(value) != common.HashLength {
			return nil, fmt.Errorf("corrupt emitter entry %x", key)
		}
		emitters[binary.BigEndian.Uint16(key)] = common.BytesToHash(value)
	}
	return emitters, it.Error()
}

func chainKey(chainID uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, chainID)
}
