// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package nftbridge

import (
	"encoding/binary"
	"fmt"
)

// reader is a cursor over a payload. Every read is bounds checked and fails
// with ErrMalformedMessage instead of slicing past the end.
type reader struct {
	b   []byte
	off int
}

func newReader(b []byte) *reader {
	return &reader{b: b}
}

func (r *reader) remaining() int {
	return len(r.b) - r.off
}

func (r *reader) readBytes(n int, field string) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, NewError(KindMalformedMessage, field,
			fmt.Errorf("need %d bytes at offset %d, have %d", n, r.off, r.remaining()))
	}
	v := r.b[r.off : r.off+n]
	r.off += n
	return v, nil
}

func (r *reader) readByte(field string) (byte, error) {
	v, err := r.readBytes(1, field)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func (r *reader) readUint16(field string) (uint16, error) {
	v, err := r.readBytes(2, field)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(v), nil
}

// done fails unless every byte has been consumed
func (r *reader) done() error {
	if n := r.remaining(); n != 0 {
		return NewError(KindMalformedMessage, "length",
			fmt.Errorf("%d trailing bytes after offset %d", n, r.off))
	}
	return nil
}

// packer appends fields to a buffer sized up front
type packer struct {
	b []byte
}

func newPacker(size int) *packer {
	return &packer{b: make([]byte, 0, size)}
}

func (p *packer) packByte(v byte) {
	p.b = append(p.b, v)
}

func (p *packer) packFixedBytes(v []byte) {
	p.b = append(p.b, v...)
}

func (p *packer) packUint16(v uint16) {
	p.b = binary.BigEndian.AppendUint16(p.b, v)
}
