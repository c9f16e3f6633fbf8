// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package admin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/nftbridge"
)

var (
	owner    = common.HexToAddress("0x1000000000000000000000000000000000000001")
	stranger = common.HexToAddress("0x2000000000000000000000000000000000000002")
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		caller common.Address
		err    error
	}{
		{
			name:   "owner",
			caller: owner,
		},
		{
			name:   "stranger",
			caller: stranger,
			err:    nftbridge.ErrUnauthorized,
		},
		{
			name:   "zero address",
			caller: common.Address{},
			err:    nftbridge.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(owner).RequireAdmin(tt.caller)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTransferOwnership(t *testing.T) {
	require := require.New(t)

	g := New(owner)
	require.ErrorIs(g.TransferOwnership(stranger, stranger), nftbridge.ErrUnauthorized)
	require.Equal(owner, g.Owner())

	require.NoError(g.TransferOwnership(owner, stranger))
	require.Equal(stranger, g.Owner())
	require.ErrorIs(g.RequireAdmin(owner), nftbridge.ErrUnauthorized)
	require.NoError(g.RequireAdmin(stranger))
}
