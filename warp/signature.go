// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"errors"
	"fmt"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/math/set"
)

var (
	ErrInvalidBitSet  = errors.New("bitset is invalid")
	ErrParseSignature = errors.New("failed to parse signature")
)

// BitSetSignature is an aggregate BLS signature plus a big-endian bitset of
// the canonical indices of the validators that signed
type BitSetSignature struct {
	Signers   []byte
	Signature [bls.SignatureLen]byte
}

// NumSigners returns the number of validators that signed
func (s *BitSetSignature) NumSigners() (int, error) {
	signerIndices := set.BitsFromBytes(s.Signers)
	// Reject zero padding so every signer set has exactly one encoding.
	if len(signerIndices.Bytes()) != len(s.Signers) {
		return 0, ErrInvalidBitSet
	}
	return signerIndices.Len(), nil
}

// Verify that this signature was signed by at least quorumNum/quorumDen of
// the weight of validators
func (s *BitSetSignature) Verify(
	msg *UnsignedMessage,
	networkID uint32,
	validators *CanonicalValidatorSet,
	quorumNum uint64,
	quorumDen uint64,
) error {
	if msg.NetworkID != networkID {
		return fmt.Errorf("%w: expected %d, got %d", ErrWrongNetworkID, networkID, msg.NetworkID)
	}

	signerIndices := set.BitsFromBytes(s.Signers)
	if len(signerIndices.Bytes()) != len(s.Signers) {
		return ErrInvalidBitSet
	}

	signers, err := FilterValidators(signerIndices, validators.Validators)
	if err != nil {
		return err
	}

	// signers is a subset of validators, so this cannot overflow.
	sigWeight, _ := SumWeight(signers)
	if err := VerifyWeight(sigWeight, validators.TotalWeight, quorumNum, quorumDen); err != nil {
		return err
	}

	aggSig, err := bls.SignatureFromBytes(s.Signature[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParseSignature, err)
	}
	aggPubKey, err := AggregatePublicKeys(signers)
	if err != nil {
		return err
	}
	if !bls.Verify(aggPubKey, aggSig, msg.Bytes()) {
		return ErrInvalidSignature
	}
	return nil
}

// Equal returns true if two signatures are equal
func (s *BitSetSignature) Equal(other *BitSetSignature) bool {
	if s == nil || other == nil {
		return s == other
	}
	return string(s.Signers) == string(other.Signers) && s.Signature == other.Signature
}

func (s *BitSetSignature) String() string {
	return fmt.Sprintf("BitSetSignature(Signers = %x, Signature = %x)", s.Signers, s.Signature)
}

// VerifyWeight returns nil if sigWeight is at least quorumNum/quorumDen of
// totalWeight
func VerifyWeight(sigWeight, totalWeight, quorumNum, quorumDen uint64) error {
	if sigWeight == 0 {
		return fmt.Errorf("%w: signed weight is 0", ErrInsufficientWeight)
	}

	// quorumNum * totalWeight <= quorumDen * sigWeight, checked without overflow
	lhs, ok := mulUint64(quorumNum, totalWeight)
	if !ok {
		return fmt.Errorf("%w: quorumNum * totalWeight overflows", ErrWeightOverflow)
	}
	rhs, ok := mulUint64(quorumDen, sigWeight)
	if !ok {
		return fmt.Errorf("%w: quorumDen * sigWeight overflows", ErrWeightOverflow)
	}
	if lhs > rhs {
		return fmt.Errorf("%w: signed weight %d / total weight %d < quorum %d / %d",
			ErrInsufficientWeight, sigWeight, totalWeight, quorumNum, quorumDen)
	}
	return nil
}

func mulUint64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	return c, c/b == a
}
