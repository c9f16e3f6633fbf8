// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package nft is an ERC-721 style asset registry with one descriptor string
// per asset.
package nft

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

var (
	ErrNonexistentAsset    = errors.New("nonexistent asset")
	ErrAssetExists         = errors.New("asset already minted")
	ErrNotOwnerNorApproved = errors.New("caller is not owner nor approved")
	ErrZeroAddress         = errors.New("zero address")
	ErrIncorrectOwner      = errors.New("incorrect owner")
	ErrApprovalToOwner     = errors.New("approval to current owner")
	ErrNilAssetID          = errors.New("nil asset id")
)

// Registry tracks ownership of non-fungible assets
type Registry struct {
	mu          sync.RWMutex
	owners      map[uint256.Int]common.Address
	approved    map[uint256.Int]common.Address
	descriptors map[uint256.Int]string
	operators   map[common.Address]map[common.Address]bool
	balances    map[common.Address]uint64
}

func NewRegistry() *Registry {
	return &Registry{
		owners:      make(map[uint256.Int]common.Address),
		approved:    make(map[uint256.Int]common.Address),
		descriptors: make(map[uint256.Int]string),
		operators:   make(map[common.Address]map[common.Address]bool),
		balances:    make(map[common.Address]uint64),
	}
}

// OwnerOf returns the owner of assetID
func (r *Registry) OwnerOf(assetID *uint256.Int) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ownerOf(assetID)
}

// BalanceOf returns the number of assets held by owner
func (r *Registry) BalanceOf(owner common.Address) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[owner]
}

// GetApproved returns the address approved for assetID, if any
func (r *Registry) GetApproved(assetID *uint256.Int) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := r.ownerOf(assetID); err != nil {
		return common.Address{}, err
	}
	return r.approved[*assetID], nil
}

// IsApprovedForAll reports whether operator manages every asset of owner
func (r *Registry) IsApprovedForAll(owner, operator common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.operators[owner][operator]
}

// Approve lets to transfer or burn assetID. The caller must be the owner or
// one of its operators.
func (r *Registry) Approve(caller, to common.Address, assetID *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := r.ownerOf(assetID)
	if err != nil {
		return err
	}
	if to == owner {
		return ErrApprovalToOwner
	}
	if caller != owner && !r.operators[owner][caller] {
		return ErrNotOwnerNorApproved
	}
	if to == (common.Address{}) {
		delete(r.approved, *assetID)
		return nil
	}
	r.approved[*assetID] = to
	return nil
}

// SetApprovalForAll adds or removes operator for every asset of caller
func (r *Registry) SetApprovalForAll(caller, operator common.Address, approved bool) error {
	if caller == operator {
		return ErrApprovalToOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !approved {
		delete(r.operators[caller], operator)
		return nil
	}
	ops, ok := r.operators[caller]
	if !ok {
		ops = make(map[common.Address]bool)
		r.operators[caller] = ops
	}
	ops[operator] = true
	return nil
}

// TransferFrom moves assetID from from to to and clears its approval
func (r *Registry) TransferFrom(caller, from, to common.Address, assetID *uint256.Int) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := r.ownerOf(assetID)
	if err != nil {
		return err
	}
	if owner != from {
		return ErrIncorrectOwner
	}
	if !r.isOwnerOrDelegate(caller, owner, assetID) {
		return ErrNotOwnerNorApproved
	}

	delete(r.approved, *assetID)
	r.balances[from]--
	r.balances[to]++
	r.owners[*assetID] = to
	return nil
}

// OwnerOrDelegate reports whether caller may dispose of assetID. Nonexistent
// assets have no owner and no delegates.
func (r *Registry) OwnerOrDelegate(_ context.Context, caller common.Address, assetID *uint256.Int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, err := r.ownerOf(assetID)
	if errors.Is(err, ErrNonexistentAsset) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.isOwnerOrDelegate(caller, owner, assetID), nil
}

// DescriptorOf returns the descriptor of assetID
func (r *Registry) DescriptorOf(_ context.Context, assetID *uint256.Int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := r.ownerOf(assetID); err != nil {
		return "", err
	}
	return r.descriptors[*assetID], nil
}

// Burn destroys assetID along with its approval and descriptor
func (r *Registry) Burn(_ context.Context, assetID *uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := r.ownerOf(assetID)
	if err != nil {
		return err
	}

	delete(r.owners, *assetID)
	delete(r.approved, *assetID)
	delete(r.descriptors, *assetID)
	r.balances[owner]--
	if r.balances[owner] == 0 {
		delete(r.balances, owner)
	}
	return nil
}

// Mint creates assetID owned by to
func (r *Registry) Mint(_ context.Context, to common.Address, assetID *uint256.Int, descriptor string) error {
	if assetID == nil {
		return ErrNilAssetID
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[*assetID]; exists {
		return fmt.Errorf("%w: %s", ErrAssetExists, assetID.Dec())
	}
	r.owners[*assetID] = to
	r.descriptors[*assetID] = descriptor
	r.balances[to]++
	return nil
}

func (r *Registry) ownerOf(assetID *uint256.Int) (common.Address, error) {
	if assetID == nil {
		return common.Address{}, ErrNilAssetID
	}
	owner, ok := r.owners[*assetID]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s", ErrNonexistentAsset, assetID.Dec())
	}
	return owner, nil
}

func (r *Registry) isOwnerOrDelegate(caller, owner common.Address, assetID *uint256.Int) bool {
	if caller == owner || r.operators[owner][caller] {
		return true
	}
	approved, ok := r.approved[*assetID]
	return ok && approved == caller
}
