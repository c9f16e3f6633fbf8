// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"

	"github.com/luxfi/nftbridge/warp"
)

// Transport publishes outbound payloads and verifies inbound envelopes.
// *warp.Transport implements it.
type Transport interface {
	// Publish dispatches payload and returns the sequence number assigned to it
	Publish(ctx context.Context, nonce uint32, payload []byte, finality uint8) (uint64, error)

	// ParseAndVerify returns the content of envelope if it carries a valid
	// proof of publication on its source chain
	ParseAndVerify(ctx context.Context, envelope []byte) (*warp.VerifiedMessage, error)
}

// AssetRegistry is the local registry of non-fungible assets.
// *nft.Registry implements it.
type AssetRegistry interface {
	// OwnerOrDelegate reports whether caller owns assetID or is approved to
	// dispose of it
	OwnerOrDelegate(ctx context.Context, caller common.Address, assetID *uint256.Int) (bool, error)
	DescriptorOf(ctx context.Context, assetID *uint256.Int) (string, error)
	Burn(ctx context.Context, assetID *uint256.Int) error
	Mint(ctx context.Context, to common.Address, assetID *uint256.Int, descriptor string) error
}

// EmitterRegistry is implemented by *registry.Registry
type EmitterRegistry interface {
	Register(chainID uint16, emitter common.Hash) error
	IsTrusted(chainID uint16, candidate common.Hash) (bool, error)
}

// ReplayGuard is implemented by *replay.Guard
type ReplayGuard interface {
	IsProcessed(id ids.ID) (bool, error)
	MarkProcessed(id ids.ID) error
}

// AdminGate is implemented by *admin.Gate
type AdminGate interface {
	RequireAdmin(caller common.Address) error
}
