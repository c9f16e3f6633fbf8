// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"
)

// ErrInvalidPayload is returned when a payload is invalid
var ErrInvalidPayload = errors.New("invalid payload")

// AddressedCall names the contract on the source chain that emitted Payload
type AddressedCall struct {
	SourceAddress []byte
	Payload       []byte
}

// NewAddressedCall creates a new addressed call payload
func NewAddressedCall(sourceAddress common.Hash, payload []byte) (*AddressedCall, error) {
	ac := &AddressedCall{
		SourceAddress: sourceAddress.Bytes(),
		Payload:       payload,
	}
	if err := ac.Verify(); err != nil {
		return nil, err
	}
	return ac, nil
}

// ParseAddressedCall parses an addressed call from bytes
func ParseAddressedCall(b []byte) (*AddressedCall, error) {
	ac := &AddressedCall{}
	if _, err := Codec.Unmarshal(b, ac); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if err := ac.Verify(); err != nil {
		return nil, err
	}
	return ac, nil
}

// Verify verifies the addressed call payload
func (a *AddressedCall) Verify() error {
	if len(a.SourceAddress) != common.HashLength {
		return fmt.Errorf("%w: source address must be %d bytes, got %d",
			ErrInvalidPayload, common.HashLength, len(a.SourceAddress))
	}
	return nil
}

// Emitter returns the source address as a 32-byte emitter address
func (a *AddressedCall) Emitter() common.Hash {
	return common.BytesToHash(a.SourceAddress)
}

// Bytes returns the byte representation of the payload
func (a *AddressedCall) Bytes() []byte {
	b, _ := Codec.Marshal(CodecVersion, a)
	return b
}
