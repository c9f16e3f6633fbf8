// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/math/set"
)

func bitsOf(indices ...int) []byte {
	bits := set.NewBits()
	for _, i := range indices {
		bits.Add(i)
	}
	return bits.Bytes()
}

func TestNumSigners(t *testing.T) {
	tests := map[string]struct {
		signers []byte
		count   int
		err     error
	}{
		"empty signers": {},
		"invalid signers": {
			signers: make([]byte, 1),
			err:     ErrInvalidBitSet,
		},
		"no signers": {
			signers: bitsOf(),
		},
		"1 signer": {
			signers: bitsOf(2),
			count:   1,
		},
		"multiple signers": {
			signers: bitsOf(0, 1, 4),
			count:   3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			sig := &BitSetSignature{Signers: tt.signers}
			count, err := sig.NumSigners()
			require.ErrorIs(err, tt.err)
			require.Equal(tt.count, count)
		})
	}
}

func TestVerifyWeight(t *testing.T) {
	tests := []struct {
		name        string
		sigWeight   uint64
		totalWeight uint64
		quorumNum   uint64
		quorumDen   uint64
		err         error
	}{
		{
			name:        "zero weight",
			sigWeight:   0,
			totalWeight: 100,
			quorumNum:   67,
			quorumDen:   100,
			err:         ErrInsufficientWeight,
		},
		{
			name:        "exact quorum",
			sigWeight:   67,
			totalWeight: 100,
			quorumNum:   67,
			quorumDen:   100,
		},
		{
			name:        "below quorum",
			sigWeight:   66,
			totalWeight: 100,
			quorumNum:   67,
			quorumDen:   100,
			err:         ErrInsufficientWeight,
		},
		{
			name:        "all weight",
			sigWeight:   9,
			totalWeight: 9,
			quorumNum:   67,
			quorumDen:   100,
		},
		{
			name:        "total weight overflow",
			sigWeight:   1,
			totalWeight: math.MaxUint64,
			quorumNum:   2,
			quorumDen:   3,
			err:         ErrWeightOverflow,
		},
		{
			name:        "signed weight overflow",
			sigWeight:   math.MaxUint64,
			totalWeight: 1,
			quorumNum:   1,
			quorumDen:   2,
			err:         ErrWeightOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyWeight(tt.sigWeight, tt.totalWeight, tt.quorumNum, tt.quorumDen)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSignAndVerify(t *testing.T) {
	vdrs := newTestValidators(t, 3, 3)
	vdrSet, err := NewCanonicalValidatorSet(validatorsOf(vdrs))
	require.NoError(t, err)

	tests := []struct {
		name      string
		signers   []*testValidator
		networkID uint32
		quorumNum uint64
		quorumDen uint64
		err       error
	}{
		{
			name:      "all signers",
			signers:   vdrs,
			networkID: testNetworkID,
			quorumNum: DefaultQuorumNumerator,
			quorumDen: DefaultQuorumDenominator,
		},
		{
			name:      "two of three below default quorum",
			signers:   vdrs[:2],
			networkID: testNetworkID,
			quorumNum: DefaultQuorumNumerator,
			quorumDen: DefaultQuorumDenominator,
			err:       ErrInsufficientWeight,
		},
		{
			name:      "two of three at two thirds quorum",
			signers:   vdrs[1:],
			networkID: testNetworkID,
			quorumNum: 2,
			quorumDen: 3,
		},
		{
			name:      "wrong network",
			signers:   vdrs,
			networkID: testNetworkID + 1,
			quorumNum: DefaultQuorumNumerator,
			quorumDen: DefaultQuorumDenominator,
			err:       ErrWrongNetworkID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			unsigned := newTestUnsignedMessage(t, 0, []byte("payload"))
			msg, err := SignMessage(unsigned, signersOf(tt.signers), vdrSet)
			require.NoError(err)

			numSigners, err := msg.Signature.NumSigners()
			require.NoError(err)
			require.Equal(len(tt.signers), numSigners)

			err = msg.Signature.Verify(unsigned, tt.networkID, vdrSet, tt.quorumNum, tt.quorumDen)
			require.ErrorIs(err, tt.err)
		})
	}
}

func TestVerifyRejectsAlteredMessage(t *testing.T) {
	require := require.New(t)

	vdrs := newTestValidators(t, 3, 1)
	vdrSet, err := NewCanonicalValidatorSet(validatorsOf(vdrs))
	require.NoError(err)

	msg, err := SignMessage(newTestUnsignedMessage(t, 0, []byte("payload")), signersOf(vdrs), vdrSet)
	require.NoError(err)

	altered := *msg.UnsignedMessage
	altered.Nonce++
	err = msg.Signature.Verify(&altered, testNetworkID, vdrSet, DefaultQuorumNumerator, DefaultQuorumDenominator)
	require.ErrorIs(err, ErrInvalidSignature)
}

func TestSignMessageErrors(t *testing.T) {
	require := require.New(t)

	vdrs := newTestValidators(t, 2, 1)
	vdrSet, err := NewCanonicalValidatorSet(validatorsOf(vdrs))
	require.NoError(err)
	unsigned := newTestUnsignedMessage(t, 0, nil)

	_, err = SignMessage(unsigned, nil, vdrSet)
	require.ErrorIs(err, ErrNoSigners)

	outsider := newTestValidator(t, 1)
	_, err = SignMessage(unsigned, signersOf([]*testValidator{outsider}), vdrSet)
	require.ErrorIs(err, ErrSignerNotInSet)

	_, err = SignMessage(unsigned, signersOf([]*testValidator{vdrs[0], vdrs[0]}), vdrSet)
	require.ErrorIs(err, ErrDuplicateSigner)
}

func TestCanonicalValidatorSet(t *testing.T) {
	require := require.New(t)

	vdrs := newTestValidators(t, 3, 5)
	shuffled := []*Validator{vdrs[2].vdr, vdrs[0].vdr, vdrs[1].vdr}

	vdrSet, err := NewCanonicalValidatorSet(shuffled)
	require.NoError(err)
	require.Equal(validatorsOf(vdrs), vdrSet.Validators)
	require.Equal(uint64(15), vdrSet.TotalWeight)

	index, ok := vdrSet.IndexOf(vdrs[1].sk.PublicKey())
	require.True(ok)
	require.Equal(1, index)

	_, err = NewCanonicalValidatorSet(nil)
	require.Error(err)

	_, err = NewCanonicalValidatorSet([]*Validator{vdrs[0].vdr, vdrs[0].vdr})
	require.Error(err)

	heavy := newTestValidator(t, math.MaxUint64)
	_, err = NewCanonicalValidatorSet([]*Validator{heavy.vdr, vdrs[0].vdr})
	require.ErrorIs(err, ErrWeightOverflow)
}
