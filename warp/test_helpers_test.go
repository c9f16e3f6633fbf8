// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/crypto/bls/signer/localsigner"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

const (
	testNetworkID   uint32 = 1337
	testSourceChain uint16 = 2
	testDestChain   uint16 = 7
)

var testEmitter = common.HexToHash("0x000000000000000000000000a0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")

type testValidator struct {
	sk  *localsigner.LocalSigner
	vdr *Validator
}

func newTestValidator(t *testing.T, weight uint64) *testValidator {
	sk, err := localsigner.New()
	require.NoError(t, err)
	return &testValidator{
		sk:  sk,
		vdr: NewValidator(sk.PublicKey(), weight, ids.GenerateTestNodeID()),
	}
}

// newTestValidators returns n validators of the given weight in canonical order
func newTestValidators(t *testing.T, n int, weight uint64) []*testValidator {
	vdrs := make([]*testValidator, n)
	for i := range vdrs {
		vdrs[i] = newTestValidator(t, weight)
	}
	slices.SortFunc(vdrs, func(a, b *testValidator) int {
		return a.vdr.Compare(b.vdr)
	})
	return vdrs
}

func validatorsOf(vdrs []*testValidator) []*Validator {
	out := make([]*Validator, len(vdrs))
	for i, v := range vdrs {
		out[i] = v.vdr
	}
	return out
}

func signersOf(vdrs []*testValidator) []bls.Signer {
	out := make([]bls.Signer, len(vdrs))
	for i, v := range vdrs {
		out[i] = v.sk
	}
	return out
}

func newTestUnsignedMessage(t *testing.T, sequence uint64, payload []byte) *UnsignedMessage {
	call, err := NewAddressedCall(testEmitter, payload)
	require.NoError(t, err)
	msg, err := NewUnsignedMessage(testNetworkID, testSourceChain, sequence, 42, 1, call.Bytes())
	require.NoError(t, err)
	return msg
}
