// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package bridge moves non-fungible assets between chains: the source side
// burns the asset and publishes a transfer message, and the destination side
// mints the asset once the message has been verified, at most once.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/nftbridge"
)

var errMissingDependency = errors.New("missing dependency")

// Config for a Bridge
type Config struct {
	// ChainID of the local chain
	ChainID uint16
	// Finality level requested from the transport for outbound messages
	Finality uint8

	Transport Transport
	Assets    AssetRegistry
	Emitters  EmitterRegistry
	Guard     ReplayGuard
	Admin     AdminGate
	Metrics   *Metrics
	Log       log.Logger
}

func (c *Config) verify() error {
	switch {
	case c.Transport == nil:
		return fmt.Errorf("%w: transport", errMissingDependency)
	case c.Assets == nil:
		return fmt.Errorf("%w: asset registry", errMissingDependency)
	case c.Emitters == nil:
		return fmt.Errorf("%w: emitter registry", errMissingDependency)
	case c.Guard == nil:
		return fmt.Errorf("%w: replay guard", errMissingDependency)
	case c.Admin == nil:
		return fmt.Errorf("%w: admin gate", errMissingDependency)
	case c.Metrics == nil:
		return fmt.Errorf("%w: metrics", errMissingDependency)
	case c.Log == nil:
		return fmt.Errorf("%w: logger", errMissingDependency)
	}
	return nil
}

// Completion describes an inbound transfer that reached the mint step
type Completion struct {
	MessageID   ids.ID
	SourceChain uint16
	Sequence    uint64
	AssetID     uint256.Int
	Descriptor  string
	Recipient   common.Address
}

// Bridge is the protocol engine. Initiate, Complete and RegisterEmitter each
// run as one serialized unit against the shared state.
type Bridge struct {
	config Config
	log    log.Logger

	lock sync.Mutex
}

func New(config Config) (*Bridge, error) {
	if err := config.verify(); err != nil {
		return nil, err
	}
	return &Bridge{
		config: config,
		log:    config.Log,
	}, nil
}

// ChainID returns the local chain id
func (b *Bridge) ChainID() uint16 {
	return b.config.ChainID
}

// Initiate burns assetID on behalf of caller and publishes a transfer of it
// to recipient on recipientChain. It returns the transport sequence number.
//
// The burn is irrevocable. If publishing fails after the burn the error is of
// kind DispatchFailed and the asset needs manual remediation.
func (b *Bridge) Initiate(
	ctx context.Context,
	caller common.Address,
	assetID *uint256.Int,
	recipient common.Hash,
	recipientChain uint16,
	nonce uint32,
) (uint64, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if assetID == nil {
		return 0, nftbridge.NewError(nftbridge.KindEncoding, "assetId", errors.New("nil asset id"))
	}

	allowed, err := b.config.Assets.OwnerOrDelegate(ctx, caller, assetID)
	if err != nil {
		return 0, fmt.Errorf("failed to check asset authorization: %w", err)
	}
	if !allowed {
		return 0, nftbridge.NewError(nftbridge.KindUnauthorized, "assetId", nil)
	}

	descriptor, err := b.config.Assets.DescriptorOf(ctx, assetID)
	if err != nil {
		return 0, fmt.Errorf("failed to read asset descriptor: %w", err)
	}

	msg, err := nftbridge.NewTransferMessage(assetID, descriptor, recipient, recipientChain)
	if err != nil {
		return 0, err
	}
	payload, err := msg.Encode()
	if err != nil {
		return 0, err
	}

	if err := b.config.Assets.Burn(ctx, assetID); err != nil {
		return 0, fmt.Errorf("failed to burn asset %s: %w", assetID.Dec(), err)
	}

	sequence, err := b.config.Transport.Publish(ctx, nonce, payload, b.config.Finality)
	if err != nil {
		b.config.Metrics.transferStuck(stageDispatch)
		b.log.Error("asset burned but transfer was not dispatched",
			log.String("assetID", assetID.Dec()),
			log.Uint32("nonce", nonce),
			log.Err(err),
		)
		return 0, nftbridge.NewError(nftbridge.KindDispatchFailed, "assetId", err)
	}

	b.config.Metrics.transferInitiated(recipientChain)
	b.log.Info("initiated transfer",
		log.String("assetID", assetID.Dec()),
		log.Uint64("sequence", sequence),
		log.Uint32("recipientChain", uint32(recipientChain)),
	)
	return sequence, nil
}

// Complete verifies envelope and mints the asset it transfers to this chain.
//
// The message id is marked processed before minting and is never unmarked. A
// mint failure after that point is of kind MintFailed and the transfer needs
// manual remediation.
func (b *Bridge) Complete(ctx context.Context, envelope []byte) (*Completion, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	completion, err := b.complete(ctx, envelope)
	if err != nil {
		b.config.Metrics.transferRejected(failureReason(err))
		return nil, err
	}
	b.config.Metrics.transferCompleted(completion.SourceChain)
	return completion, nil
}

func (b *Bridge) complete(ctx context.Context, envelope []byte) (*Completion, error) {
	verified, err := b.config.Transport.ParseAndVerify(ctx, envelope)
	if err != nil {
		return nil, nftbridge.NewError(nftbridge.KindUnverifiedMessage, "envelope", err)
	}

	trusted, err := b.config.Emitters.IsTrusted(verified.EmitterChain, verified.Emitter)
	if err != nil {
		return nil, fmt.Errorf("failed to check emitter: %w", err)
	}
	if !trusted {
		b.log.Debug("rejecting message from untrusted emitter",
			log.Stringer("messageID", verified.ID),
			log.Uint32("emitterChain", uint32(verified.EmitterChain)),
			log.String("emitter", verified.Emitter.Hex()),
		)
		return nil, nftbridge.NewError(nftbridge.KindUntrustedEmitter, "emitter", nil)
	}

	msg, err := nftbridge.ParseTransferMessage(verified.Payload)
	if err != nil {
		return nil, err
	}

	processed, err := b.config.Guard.IsProcessed(verified.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check replay guard: %w", err)
	}
	if processed {
		return nil, nftbridge.NewError(nftbridge.KindAlreadyCompleted, verified.ID.String(), nil)
	}
	if err := b.config.Guard.MarkProcessed(verified.ID); err != nil {
		return nil, err
	}

	if msg.RecipientChain != b.config.ChainID {
		return nil, nftbridge.NewError(
			nftbridge.KindWrongDestination,
			"recipientChain",
			fmt.Errorf("message is for chain %d, local chain is %d", msg.RecipientChain, b.config.ChainID),
		)
	}

	completion := &Completion{
		MessageID:   verified.ID,
		SourceChain: verified.EmitterChain,
		Sequence:    verified.Sequence,
		AssetID:     msg.AssetID,
		Descriptor:  msg.Descriptor,
		Recipient:   msg.NativeRecipient(),
	}
	if err := b.config.Assets.Mint(ctx, completion.Recipient, &completion.AssetID, completion.Descriptor); err != nil {
		b.config.Metrics.transferStuck(stageMint)
		b.log.Error("message marked processed but mint failed",
			log.Stringer("messageID", verified.ID),
			log.String("assetID", completion.AssetID.Dec()),
			log.String("recipient", completion.Recipient.Hex()),
			log.Err(err),
		)
		return nil, nftbridge.NewError(nftbridge.KindMintFailed, verified.ID.String(), err)
	}

	b.log.Info("completed transfer",
		log.Stringer("messageID", verified.ID),
		log.String("assetID", completion.AssetID.Dec()),
		log.Uint32("sourceChain", uint32(completion.SourceChain)),
	)
	return completion, nil
}

// RegisterEmitter trusts emitter as the bridge of chainID. Only the admin may
// call it.
func (b *Bridge) RegisterEmitter(caller common.Address, chainID uint16, emitter common.Hash) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if err := b.config.Admin.RequireAdmin(caller); err != nil {
		return err
	}
	if err := b.config.Emitters.Register(chainID, emitter); err != nil {
		return err
	}

	b.log.Info("registered emitter",
		log.Uint32("chainID", uint32(chainID)),
		log.String("emitter", emitter.Hex()),
	)
	return nil
}

func failureReason(err error) string {
	if kind, ok := nftbridge.KindOf(err); ok {
		return kind.String()
	}
	return "internal"
}
