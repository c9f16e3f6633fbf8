// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package admin authorizes administrative changes against a single owner.
package admin

import (
	"sync"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/nftbridge"
)

// Gate holds the administrative principal
type Gate struct {
	mu    sync.RWMutex
	owner common.Address
}

func New(owner common.Address) *Gate {
	return &Gate{owner: owner}
}

// Owner returns the current principal
func (g *Gate) Owner() common.Address {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.owner
}

// RequireAdmin fails with an Unauthorized error unless caller is the owner
func (g *Gate) RequireAdmin(caller common.Address) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.requireAdmin(caller)
}

// TransferOwnership hands the gate to newOwner. Only the current owner may
// call it.
func (g *Gate) TransferOwnership(caller, newOwner common.Address) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireAdmin(caller); err != nil {
		return err
	}
	g.owner = newOwner
	return nil
}

func (g *Gate) requireAdmin(caller common.Address) error {
	if caller != g.owner {
		return nftbridge.NewError(nftbridge.KindUnauthorized, "caller", nil)
	}
	return nil
}
