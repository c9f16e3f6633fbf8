// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package replay records which inbound messages have been completed.
package replay

import (
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftbridge"
)

var processedPrefix = []byte("processed")

// Guard is an append-only set of processed message ids. There is no way to
// remove an id once marked.
type Guard struct {
	// lock makes the check and insert in MarkProcessed atomic
	lock sync.Mutex
	db   database.Database
}

func New(db database.Database) *Guard {
	return &Guard{
		db: prefixdb.New(processedPrefix, db),
	}
}

// IsProcessed reports whether id has been marked
func (g *Guard) IsProcessed(id ids.ID) (bool, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.db.Has(id[:])
}

// MarkProcessed records id. Marking an id that is already present fails with
// an AlreadyCompleted error.
func (g *Guard) MarkProcessed(id ids.ID) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	has, err := g.db.Has(id[:])
	if err != nil {
		return err
	}
	if has {
		return nftbridge.NewError(nftbridge.KindAlreadyCompleted, id.String(), nil)
	}
	if err := g.db.Put(id[:], []byte{database.BoolTrue}); err != nil {
		return fmt.Errorf("failed to mark %s processed: %w", id, err)
	}
	return nil
}
