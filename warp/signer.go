// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package warp

import (
	"errors"
	"fmt"

	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/math/set"
)

var (
	ErrNoSigners       = errors.New("no signers")
	ErrDuplicateSigner = errors.New("duplicate signer")
	ErrSignerNotInSet  = errors.New("signer not found in validator set")
)

// SignMessage signs msg with every signer and aggregates the result into a
// BitSetSignature over the canonical indices of the signers in validators
func SignMessage(
	msg *UnsignedMessage,
	signers []bls.Signer,
	validators *CanonicalValidatorSet,
) (*Message, error) {
	if len(signers) == 0 {
		return nil, ErrNoSigners
	}

	msgBytes := msg.Bytes()
	signerBits := set.NewBits()
	signatures := make([]*bls.Signature, 0, len(signers))
	for _, signer := range signers {
		index, ok := validators.IndexOf(signer.PublicKey())
		if !ok {
			return nil, ErrSignerNotInSet
		}
		if signerBits.Contains(index) {
			return nil, ErrDuplicateSigner
		}

		sig, err := signer.Sign(msgBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to sign: %w", err)
		}

		signerBits.Add(index)
		signatures = append(signatures, sig)
	}

	aggSig, err := bls.AggregateSignatures(signatures)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate signatures: %w", err)
	}

	signature := &BitSetSignature{
		Signers: signerBits.Bytes(),
	}
	copy(signature.Signature[:], bls.SignatureToBytes(aggSig))
	return NewMessage(msg, signature)
}
