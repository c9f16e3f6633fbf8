// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
)

var (
	ErrMessageNotFound = errors.New("message not found")

	messagePrefix   = []byte("msg")
	metadataPrefix  = []byte("meta")
	nextSequenceKey = []byte("nextSequence")
)

// Backend stores the signed messages published by this chain
type Backend interface {
	// AddMessage stores a signed message under its sequence number
	AddMessage(msg *Message) error

	// GetMessage retrieves a signed message by sequence number
	GetMessage(sequence uint64) (*Message, error)

	// NextSequence returns the sequence number the next message will get
	NextSequence() (uint64, error)
}

// DBBackend is a database.Database backed Backend
type DBBackend struct {
	mu       sync.RWMutex
	messages database.Database
	metadata database.Database
}

// NewDBBackend creates a backend on top of db
func NewDBBackend(db database.Database) *DBBackend {
	return &DBBackend{
		messages: prefixdb.New(messagePrefix, db),
		metadata: prefixdb.New(metadataPrefix, db),
	}
}

// AddMessage implements Backend. Messages must be added in sequence order.
func (b *DBBackend) AddMessage(msg *Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := b.nextSequence()
	if err != nil {
		return err
	}
	sequence := msg.UnsignedMessage.Sequence
	if sequence != next {
		return fmt.Errorf("%w: expected sequence %d, got %d", ErrInvalidMessage, next, sequence)
	}

	if err := b.messages.Put(sequenceKey(sequence), msg.Bytes()); err != nil {
		return fmt.Errorf("failed to store message %d: %w", sequence, err)
	}
	return database.PutUInt64(b.metadata, nextSequenceKey, sequence+1)
}

// GetMessage implements Backend
func (b *DBBackend) GetMessage(sequence uint64) (*Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	msgBytes, err := b.messages.Get(sequenceKey(sequence))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: sequence %d", ErrMessageNotFound, sequence)
	}
	if err != nil {
		return nil, err
	}
	return ParseMessage(msgBytes)
}

// NextSequence implements Backend
func (b *DBBackend) NextSequence() (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.nextSequence()
}

func (b *DBBackend) nextSequence() (uint64, error) {
	next, err := database.GetUInt64(b.metadata, nextSequenceKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return next, err
}

func sequenceKey(sequence uint64) []byte {
	return database.PackUInt64(sequence)
}
