// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package nftbridge

import (
	"errors"
	"fmt"
)

// ErrorKind classifies protocol failures
type ErrorKind uint8

const (
	KindEncoding ErrorKind = iota + 1
	KindMalformedMessage
	KindUnverifiedMessage
	KindUntrustedEmitter
	KindAlreadyCompleted
	KindWrongDestination
	KindUnauthorized
	KindDispatchFailed
	KindMintFailed
)

var (
	ErrEncoding          = errors.New("encoding error")
	ErrMalformedMessage  = errors.New("malformed message")
	ErrUnverifiedMessage = errors.New("unverified message")
	ErrUntrustedEmitter  = errors.New("untrusted emitter")
	ErrAlreadyCompleted  = errors.New("transfer already completed")
	ErrWrongDestination  = errors.New("wrong destination chain")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDispatchFailed    = errors.New("dispatch failed after burn")
	ErrMintFailed        = errors.New("mint failed after completion was recorded")

	kindSentinels = map[ErrorKind]error{
		KindEncoding:          ErrEncoding,
		KindMalformedMessage:  ErrMalformedMessage,
		KindUnverifiedMessage: ErrUnverifiedMessage,
		KindUntrustedEmitter:  ErrUntrustedEmitter,
		KindAlreadyCompleted:  ErrAlreadyCompleted,
		KindWrongDestination:  ErrWrongDestination,
		KindUnauthorized:      ErrUnauthorized,
		KindDispatchFailed:    ErrDispatchFailed,
		KindMintFailed:        ErrMintFailed,
	}
)

func (k ErrorKind) String() string {
	switch k {
	case KindEncoding:
		return "EncodingError"
	case KindMalformedMessage:
		return "MalformedMessage"
	case KindUnverifiedMessage:
		return "UnverifiedMessage"
	case KindUntrustedEmitter:
		return "UntrustedEmitter"
	case KindAlreadyCompleted:
		return "AlreadyCompleted"
	case KindWrongDestination:
		return "WrongDestination"
	case KindUnauthorized:
		return "Unauthorized"
	case KindDispatchFailed:
		return "DispatchFailed"
	case KindMintFailed:
		return "MintFailed"
	default:
		return "Unknown"
	}
}

// Correctable reports whether the operation may succeed after the caller or an
// administrator fixes the input or the configuration. No kind is transient.
func (k ErrorKind) Correctable() bool {
	switch k {
	case KindEncoding, KindUnverifiedMessage, KindUntrustedEmitter, KindUnauthorized:
		return true
	default:
		return false
	}
}

// Error is a protocol failure. Field names the offending field or identifier.
type Error struct {
	Kind  ErrorKind
	Field string
	Err   error
}

// NewError returns an error of the given kind
func NewError(kind ErrorKind, field string, err error) *Error {
	return &Error{
		Kind:  kind,
		Field: field,
		Err:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := kindSentinels[e.Kind]
	if msg == nil {
		msg = fmt.Errorf("error kind %d", e.Kind)
	}
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s (%s): %s", msg, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s (%s)", msg, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", msg, e.Err)
	default:
		return msg.Error()
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's kind
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
