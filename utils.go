// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package nftbridge

import "math"

const (
	// TransferPayloadTag identifies version 1 of the transfer payload
	TransferPayloadTag byte = 1

	// MaxDescriptorLen is the longest descriptor a single length byte can carry
	MaxDescriptorLen = math.MaxUint8

	// AssetIDLen is the width of a big-endian asset id on the wire
	AssetIDLen = 32

	// AddressLen is the width of a recipient or emitter address on the wire
	AddressLen = 32

	// ChainIDLen is the width of a chain id on the wire
	ChainIDLen = 2

	// transferFixedLen is every byte of the payload except the descriptor
	transferFixedLen = 1 + AssetIDLen + 1 + AddressLen + ChainIDLen
)

// TransferLen returns the exact wire length of a payload whose descriptor
// is descriptorLen bytes long.
func TransferLen(descriptorLen int) int {
	return transferFixedLen + descriptorLen
}
