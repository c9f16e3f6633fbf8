// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

const (
	DefaultQuorumNumerator   = 67
	DefaultQuorumDenominator = 100
)

var errInvalidQuorum = errors.New("invalid quorum")

// Config for a Transport
type Config struct {
	// NetworkID every envelope must carry
	NetworkID uint32
	// ChainID of the local chain, stamped as SourceChain on published messages
	ChainID uint16
	// Emitter is the local bridge address published messages originate from
	Emitter common.Hash

	QuorumNumerator   uint64
	QuorumDenominator uint64
}

// Verify checks the transport configuration
func (c Config) Verify() error {
	if c.QuorumDenominator == 0 || c.QuorumNumerator == 0 || c.QuorumNumerator > c.QuorumDenominator {
		return fmt.Errorf("%w: %d/%d", errInvalidQuorum, c.QuorumNumerator, c.QuorumDenominator)
	}
	return nil
}

// VerifiedMessage is the content of an envelope whose signatures checked out
// against the source chain's validator set
type VerifiedMessage struct {
	ID           ids.ID
	EmitterChain uint16
	Emitter      common.Hash
	Sequence     uint64
	Nonce        uint32
	Finality     uint8
	Payload      []byte
}

// Transport publishes payloads as signed envelopes and verifies envelopes
// received from other chains
type Transport struct {
	config     Config
	signers    []bls.Signer
	validators ValidatorState
	backend    Backend
	log        log.Logger

	// publishLock serializes sequence assignment
	publishLock sync.Mutex
}

// NewTransport creates a transport. signers sign every published message and
// must all belong to the local chain's validator set in validators.
func NewTransport(
	config Config,
	signers []bls.Signer,
	validators ValidatorState,
	backend Backend,
	logger log.Logger,
) (*Transport, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	return &Transport{
		config:     config,
		signers:    signers,
		validators: validators,
		backend:    backend,
		log:        logger,
	}, nil
}

// Publish wraps payload in a signed envelope and returns its sequence number
func (t *Transport) Publish(ctx context.Context, nonce uint32, payload []byte, finality uint8) (uint64, error) {
	t.publishLock.Lock()
	defer t.publishLock.Unlock()

	call, err := NewAddressedCall(t.config.Emitter, payload)
	if err != nil {
		return 0, err
	}

	sequence, err := t.backend.NextSequence()
	if err != nil {
		return 0, fmt.Errorf("failed to get next sequence: %w", err)
	}

	unsigned, err := NewUnsignedMessage(
		t.config.NetworkID,
		t.config.ChainID,
		sequence,
		nonce,
		finality,
		call.Bytes(),
	)
	if err != nil {
		return 0, err
	}

	vdrSet, err := t.validators.GetValidatorSet(ctx, t.config.ChainID)
	if err != nil {
		return 0, fmt.Errorf("failed to get validator set: %w", err)
	}

	msg, err := SignMessage(unsigned, t.signers, vdrSet)
	if err != nil {
		return 0, err
	}
	if err := t.backend.AddMessage(msg); err != nil {
		return 0, err
	}

	t.log.Debug("published message",
		log.Stringer("messageID", msg.ID()),
		log.Uint64("sequence", sequence),
		log.Uint32("nonce", nonce),
	)
	return sequence, nil
}

// Envelope returns the serialized signed message published under sequence
func (t *Transport) Envelope(sequence uint64) ([]byte, error) {
	msg, err := t.backend.GetMessage(sequence)
	if err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}

// ParseAndVerify parses envelope and checks its signature against the
// validator set of the chain it claims to come from
func (t *Transport) ParseAndVerify(ctx context.Context, envelope []byte) (*VerifiedMessage, error) {
	msg, err := ParseMessage(envelope)
	if err != nil {
		return nil, err
	}

	unsigned := msg.UnsignedMessage
	vdrSet, err := t.validators.GetValidatorSet(ctx, unsigned.SourceChain)
	if err != nil {
		return nil, err
	}

	err = msg.Signature.Verify(
		unsigned,
		t.config.NetworkID,
		vdrSet,
		t.config.QuorumNumerator,
		t.config.QuorumDenominator,
	)
	if err != nil {
		return nil, err
	}

	call, err := ParseAddressedCall(unsigned.Payload)
	if err != nil {
		return nil, err
	}

	return &VerifiedMessage{
		ID:           msg.ID(),
		EmitterChain: unsigned.SourceChain,
		Emitter:      call.Emitter(),
		Sequence:     unsigned.Sequence,
		Nonce:        unsigned.Nonce,
		Finality:     unsigned.Finality,
		Payload:      call.Payload,
	}, nil
}
