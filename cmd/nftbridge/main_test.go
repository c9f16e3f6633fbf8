// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftbridge"
)

const testAdmin = "0x00000000000000000000000000000000000ad001"

func run(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	require := require.New(t)

	out, err := run(t,
		"encode",
		"--asset-id", "42",
		"--descriptor", "ipfs://abc",
		"--recipient", "0x01",
		"--recipient-chain", "5",
	)
	require.NoError(err)

	msg, err := nftbridge.NewTransferMessage(uint256.NewInt(42), "ipfs://abc", common.HexToHash("0x01"), 5)
	require.NoError(err)
	expected, err := msg.Encode()
	require.NoError(err)
	require.Equal("0x"+common.Bytes2Hex(expected)+"\n", out)

	out, err = run(t, "decode", common.Bytes2Hex(expected))
	require.NoError(err)
	require.Contains(out, "Asset ID:        42\n")
	require.Contains(out, "Descriptor:      \"ipfs://abc\"\n")
	require.Contains(out, "Recipient chain: 5\n")
}

func TestEncodeHexAssetID(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "encode", "--asset-id", "0x2a", "--recipient", "0x01")
	require.NoError(err)

	decoded, err := nftbridge.ParseTransferMessage(common.FromHex(out[:len(out)-1]))
	require.NoError(err)
	require.Equal(*uint256.NewInt(42), decoded.AssetID)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := run(t, "decode", "0x0100")
	require.ErrorIs(t, err, nftbridge.ErrMalformedMessage)
}

func TestEmitterCommands(t *testing.T) {
	require := require.New(t)

	dataDir := t.TempDir()
	base := []string{"--data-dir", dataDir, "--admin", testAdmin, "--chain-id", "5"}

	_, err := run(t, append([]string{"emitter", "register",
		"--caller", "0x0000000000000000000000000000000000000bad",
		"--chain", "9",
		"--emitter", "0xe1",
	}, base...)...)
	require.ErrorIs(err, nftbridge.ErrUnauthorized)

	out, err := run(t, append([]string{"emitter", "register",
		"--caller", testAdmin,
		"--chain", "9",
		"--emitter", "0xe1",
	}, base...)...)
	require.NoError(err)
	require.Contains(out, "chain 9 -> "+common.HexToHash("0xe1").Hex())

	out, err = run(t, append([]string{"emitter", "list"}, base...)...)
	require.NoError(err)
	require.Equal("chain 9 -> "+common.HexToHash("0xe1").Hex()+"\n", out)

	id := ids.GenerateTestID()
	out, err = run(t, append([]string{"processed", id.String()}, base...)...)
	require.NoError(err)
	require.Equal(id.String()+" processed: false\n", out)
}
