// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package nftbridge defines the transfer payload carried between the bridge
// endpoints of two chains and the errors shared by the protocol packages.
package nftbridge

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// TransferMessage is the intent to recreate a burned asset on another chain
type TransferMessage struct {
	// AssetID is the asset's key in its origin registry
	AssetID uint256.Int
	// Descriptor is the asset metadata, usually a resource locator
	Descriptor string
	// Recipient is left-padded to 32 bytes so any chain's address fits
	Recipient common.Hash
	// RecipientChain is the chain the asset must be minted on
	RecipientChain uint16
}

// NewTransferMessage creates a new transfer message
func NewTransferMessage(
	assetID *uint256.Int,
	descriptor string,
	recipient common.Hash,
	recipientChain uint16,
) (*TransferMessage, error) {
	msg := &TransferMessage{
		Descriptor:     descriptor,
		Recipient:      recipient,
		RecipientChain: recipientChain,
	}
	if assetID != nil {
		msg.AssetID.Set(assetID)
	}
	if err := msg.Verify(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Verify checks that the message can be represented on the wire
func (m *TransferMessage) Verify() error {
	if len(m.Descriptor) > MaxDescriptorLen {
		return NewError(KindEncoding, "descriptor",
			fmt.Errorf("length %d exceeds maximum %d", len(m.Descriptor), MaxDescriptorLen))
	}
	return nil
}

// Len returns the encoded length of the message
func (m *TransferMessage) Len() int {
	return TransferLen(len(m.Descriptor))
}

// Encode returns the v1 wire form of the message
func (m *TransferMessage) Encode() ([]byte, error) {
	if err := m.Verify(); err != nil {
		return nil, err
	}

	assetID := m.AssetID.Bytes32()
	p := newPacker(m.Len())
	p.packByte(TransferPayloadTag)
	p.packFixedBytes(assetID[:])
	p.packByte(byte(len(m.Descriptor)))
	p.packFixedBytes([]byte(m.Descriptor))
	p.packFixedBytes(m.Recipient[:])
	p.packUint16(m.RecipientChain)
	return p.b, nil
}

// NativeRecipient returns the recipient as a 20-byte address, taken from the
// low-order bytes
func (m *TransferMessage) NativeRecipient() common.Address {
	return common.BytesToAddress(m.Recipient[:])
}

// String implements fmt.Stringer
func (m *TransferMessage) String() string {
	return fmt.Sprintf("TransferMessage(AssetID = %s, Descriptor = %q, Recipient = %s, RecipientChain = %d)",
		m.AssetID.Dec(), m.Descriptor, m.Recipient.Hex(), m.RecipientChain)
}

// ParseTransferMessage decodes a v1 payload. The input must be consumed
// exactly: a wrong tag, a short buffer or trailing bytes are all rejected.
func ParseTransferMessage(b []byte) (*TransferMessage, error) {
	r := newReader(b)

	tag, err := r.readByte("tag")
	if err != nil {
		return nil, err
	}
	if tag != TransferPayloadTag {
		return nil, NewError(KindMalformedMessage, "tag",
			fmt.Errorf("expected %d, got %d", TransferPayloadTag, tag))
	}

	msg := &TransferMessage{}
	assetID, err := r.readBytes(AssetIDLen, "assetId")
	if err != nil {
		return nil, err
	}
	msg.AssetID.SetBytes32(assetID)

	descriptorLen, err := r.readByte("descriptorLength")
	if err != nil {
		return nil, err
	}
	descriptor, err := r.readBytes(int(descriptorLen), "descriptor")
	if err != nil {
		return nil, err
	}
	msg.Descriptor = string(descriptor)

	recipient, err := r.readBytes(AddressLen, "recipient")
	if err != nil {
		return nil, err
	}
	copy(msg.Recipient[:], recipient)

	msg.RecipientChain, err = r.readUint16("recipientChain")
	if err != nil {
		return nil, err
	}

	if err := r.done(); err != nil {
		return nil, err
	}
	return msg, nil
}
