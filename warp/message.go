// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package warp is an in-process message transport: published payloads are
// wrapped in a sequenced, validator-signed envelope, and envelopes from other
// chains are parsed and checked against the source chain's validator set.
package warp

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
)

const (
	CodecVersion   = 0
	KiB            = 1024
	MaxMessageSize = 256 * KiB
)

var (
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidMessage     = errors.New("invalid message")
	ErrWrongNetworkID     = errors.New("wrong network ID")
	ErrUnknownSourceChain = errors.New("unknown source chain")
	ErrInsufficientWeight = errors.New("insufficient weight")
)

// UnsignedMessage is an unsigned warp message
type UnsignedMessage struct {
	NetworkID   uint32
	SourceChain uint16
	Sequence    uint64
	Nonce       uint32
	Finality    uint8
	Payload     []byte
}

// NewUnsignedMessage creates a new unsigned message
func NewUnsignedMessage(
	networkID uint32,
	sourceChain uint16,
	sequence uint64,
	nonce uint32,
	finality uint8,
	payload []byte,
) (*UnsignedMessage, error) {
	msg := &UnsignedMessage{
		NetworkID:   networkID,
		SourceChain: sourceChain,
		Sequence:    sequence,
		Nonce:       nonce,
		Finality:    finality,
		Payload:     payload,
	}
	if err := msg.Verify(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Verify verifies the unsigned message
func (u *UnsignedMessage) Verify() error {
	b, err := Codec.Marshal(CodecVersion, u)
	if err != nil {
		return fmt.Errorf("failed to marshal unsigned message: %w", err)
	}
	if len(b) > MaxMessageSize {
		return fmt.Errorf("%w: message size %d exceeds maximum %d", ErrInvalidMessage, len(b), MaxMessageSize)
	}
	return nil
}

// Bytes returns the byte representation of the unsigned message
func (u *UnsignedMessage) Bytes() []byte {
	b, _ := Codec.Marshal(CodecVersion, u)
	return b
}

// ID returns the hash of the unsigned message
func (u *UnsignedMessage) ID() ids.ID {
	return ids.ID(sha256.Sum256(u.Bytes()))
}

// Message is a signed warp message
type Message struct {
	UnsignedMessage *UnsignedMessage
	Signature       *BitSetSignature
}

// NewMessage creates a new signed message
func NewMessage(unsigned *UnsignedMessage, signature *BitSetSignature) (*Message, error) {
	msg := &Message{
		UnsignedMessage: unsigned,
		Signature:       signature,
	}
	if err := msg.Verify(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Verify verifies the message format
func (m *Message) Verify() error {
	if m.UnsignedMessage == nil {
		return fmt.Errorf("%w: unsigned message is nil", ErrInvalidMessage)
	}
	if err := m.UnsignedMessage.Verify(); err != nil {
		return err
	}
	if m.Signature == nil {
		return fmt.Errorf("%w: signature is nil", ErrInvalidSignature)
	}
	return nil
}

// Bytes returns the byte representation of the message
func (m *Message) Bytes() []byte {
	b, _ := Codec.Marshal(CodecVersion, m)
	return b
}

// ID returns the ID of the message (hash of unsigned message)
func (m *Message) ID() ids.ID {
	return m.UnsignedMessage.ID()
}

// Equal returns true if two messages are equal
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.UnsignedMessage == nil || other.UnsignedMessage == nil {
		return m.UnsignedMessage == other.UnsignedMessage
	}
	if !bytes.Equal(m.UnsignedMessage.Bytes(), other.UnsignedMessage.Bytes()) {
		return false
	}
	return m.Signature.Equal(other.Signature)
}

// ParseMessage parses a message from bytes
func ParseMessage(b []byte) (*Message, error) {
	msg := &Message{}
	if _, err := Codec.Unmarshal(b, msg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal message: %w", ErrInvalidMessage, err)
	}
	if err := msg.Verify(); err != nil {
		return nil, err
	}
	return msg, nil
}

// ParseUnsignedMessage parses an unsigned message from bytes
func ParseUnsignedMessage(b []byte) (*UnsignedMessage, error) {
	msg := &UnsignedMessage{}
	if _, err := Codec.Unmarshal(b, msg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal unsigned message: %w", ErrInvalidMessage, err)
	}
	if err := msg.Verify(); err != nil {
		return nil, err
	}
	return msg, nil
}
