// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

var (
	ErrUnknownValidator = errors.New("unknown validator")
	ErrWeightOverflow   = errors.New("weight overflowed")
)

// Validator represents a validator in the network
type Validator struct {
	PublicKey      *bls.PublicKey
	PublicKeyBytes []byte
	Weight         uint64
	NodeID         ids.NodeID
}

// NewValidator creates a new validator
func NewValidator(publicKey *bls.PublicKey, weight uint64, nodeID ids.NodeID) *Validator {
	return &Validator{
		PublicKey:      publicKey,
		PublicKeyBytes: bls.PublicKeyToUncompressedBytes(publicKey),
		Weight:         weight,
		NodeID:         nodeID,
	}
}

// Compare orders validators by public key bytes
func (v *Validator) Compare(other *Validator) int {
	return bytes.Compare(v.PublicKeyBytes, other.PublicKeyBytes)
}

// CanonicalValidatorSet is a validator set in canonical (public key) order
type CanonicalValidatorSet struct {
	Validators  []*Validator
	TotalWeight uint64
}

// NewCanonicalValidatorSet checks and sorts validators
func NewCanonicalValidatorSet(validators []*Validator) (*CanonicalValidatorSet, error) {
	if len(validators) == 0 {
		return nil, errors.New("empty validator set")
	}

	seen := make(map[string]struct{}, len(validators))
	for i, v := range validators {
		if v == nil {
			return nil, fmt.Errorf("nil validator at index %d", i)
		}
		if v.Weight == 0 {
			return nil, fmt.Errorf("validator at index %d has zero weight", i)
		}
		if v.PublicKey == nil || len(v.PublicKeyBytes) == 0 {
			return nil, fmt.Errorf("validator at index %d has no public key", i)
		}
		key := string(v.PublicKeyBytes)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("duplicate validator public key: %x", v.PublicKeyBytes)
		}
		seen[key] = struct{}{}
	}

	totalWeight, err := SumWeight(validators)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(validators)
	slices.SortFunc(sorted, (*Validator).Compare)
	return &CanonicalValidatorSet{
		Validators:  sorted,
		TotalWeight: totalWeight,
	}, nil
}

// IndexOf returns the canonical index of the validator holding pk
func (c *CanonicalValidatorSet) IndexOf(pk *bls.PublicKey) (int, bool) {
	pkBytes := bls.PublicKeyToUncompressedBytes(pk)
	for i, v := range c.Validators {
		if bytes.Equal(v.PublicKeyBytes, pkBytes) {
			return i, true
		}
	}
	return 0, false
}

// FilterValidators returns the validators whose indices are set in indices
func FilterValidators(indices set.Bits, vdrs []*Validator) ([]*Validator, error) {
	if indices.BitLen() > len(vdrs) {
		return nil, fmt.Errorf(
			"%w: NumIndices (%d) >= NumFilteredValidators (%d)",
			ErrUnknownValidator,
			indices.BitLen()-1,
			len(vdrs),
		)
	}

	filtered := make([]*Validator, 0, len(vdrs))
	for i, vdr := range vdrs {
		if indices.Contains(i) {
			filtered = append(filtered, vdr)
		}
	}
	return filtered, nil
}

// SumWeight returns the total weight of the provided validators
func SumWeight(vdrs []*Validator) (uint64, error) {
	var weight uint64
	for _, vdr := range vdrs {
		if weight > math.MaxUint64-vdr.Weight {
			return 0, ErrWeightOverflow
		}
		weight += vdr.Weight
	}
	return weight, nil
}

// AggregatePublicKeys returns the aggregate public key of the validators
func AggregatePublicKeys(vdrs []*Validator) (*bls.PublicKey, error) {
	pks := make([]*bls.PublicKey, len(vdrs))
	for i, vdr := range vdrs {
		pks[i] = vdr.PublicKey
	}
	return bls.AggregatePublicKeys(pks)
}

// ValidatorState returns the validator set that signs for a source chain
type ValidatorState interface {
	GetValidatorSet(ctx context.Context, sourceChain uint16) (*CanonicalValidatorSet, error)
}

// StaticValidatorState is a fixed per-chain validator registry
type StaticValidatorState struct {
	mu   sync.RWMutex
	sets map[uint16]*CanonicalValidatorSet
}

// NewStaticValidatorState creates an empty validator registry
func NewStaticValidatorState() *StaticValidatorState {
	return &StaticValidatorState{
		sets: make(map[uint16]*CanonicalValidatorSet),
	}
}

// SetValidators replaces the validator set of sourceChain
func (s *StaticValidatorState) SetValidators(sourceChain uint16, validators []*Validator) error {
	vdrSet, err := NewCanonicalValidatorSet(validators)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[sourceChain] = vdrSet
	return nil
}

// GetValidatorSet implements ValidatorState
func (s *StaticValidatorState) GetValidatorSet(_ context.Context, sourceChain uint16) (*CanonicalValidatorSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vdrSet, ok := s.sets[sourceChain]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSourceChain, sourceChain)
	}
	return vdrSet, nil
}
