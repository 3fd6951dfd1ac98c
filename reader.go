// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package packetbuf

import (
	"strings"

	"github.com/pkg/errors"
)

// stringTerminator ends every wire string. It is never part of the
// decoded value.
const stringTerminator = 10

// Reader drains one received packet. It owns a fixed-size store and a
// cursor; it never reallocates. The opcode is expected to have been
// consumed by the dispatcher before a decoder gets hold of the Reader.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	access
	buf []byte
	pos int
}

// NewReader wraps data in a Reader positioned at its start. The Reader
// takes ownership of the slice for its lifetime.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// SetAccess switches the access mode. Bit-addressed reading is not
// part of the wire format and always fails; the mode stays unchanged.
func (r *Reader) SetAccess(m AccessMode) error {
	if m == BitAccess {
		return ErrBitReadUnsupported
	}
	r.access.switchTo(m, &r.pos)
	return nil
}

// Position returns the current byte cursor.
func (r *Reader) Position() int { return r.pos }

// Remaining returns how many bytes are left to consume.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Skip advances the cursor over n bytes without decoding them.
func (r *Reader) Skip(n int) error {
	if r.pos+n > len(r.buf) {
		return errors.Wrapf(ErrBufferExhausted, "skip %d of %d remaining", n, r.Remaining())
	}
	r.pos += n
	return nil
}

// ReadUint8 consumes one byte, undoes the value transform and returns
// the result either sign-extended or masked to 0..255.
func (r *Reader) ReadUint8(signed bool, t ValueType) (int, error) {
	if r.pos >= len(r.buf) {
		return 0, errors.Wrap(ErrBufferExhausted, "read byte")
	}
	v := t.decode(int(int8(r.buf[r.pos])))
	r.pos++
	if !signed {
		return v & 0xff, nil
	}
	// the transform can push the value out of int8 range (negating
	// -128 gives 128); wrap it back so signed reads stay in [-128,127]
	return int(int8(byte(v))), nil
}

// readValue composes ReadUint8 calls per the byte-order sequence. The
// value transform is consumed with the last byte of the sequence.
func (r *Reader) readValue(width int, t ValueType, o ByteOrder) (uint64, error) {
	seq, err := o.sequence(width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i, idx := range seq {
		bt := Standard
		if i == len(seq)-1 {
			bt = t
		}
		b, err := r.ReadUint8(false, bt)
		if err != nil {
			return 0, err
		}
		v |= uint64(b) << uint(8*idx)
	}
	return v, nil
}

// ReadShort consumes a 16-bit value.
func (r *Reader) ReadShort(signed bool, t ValueType, o ByteOrder) (int, error) {
	v, err := r.readValue(2, t, o)
	if err != nil {
		return 0, err
	}
	if signed {
		return int(int16(v)), nil
	}
	return int(v & 0xffff), nil
}

// ReadInt consumes a 32-bit value. The unsigned range does not fit an
// int32, so the result is widened to int64 either way.
func (r *Reader) ReadInt(signed bool, t ValueType, o ByteOrder) (int64, error) {
	v, err := r.readValue(4, t, o)
	if err != nil {
		return 0, err
	}
	if signed {
		return int64(int32(v)), nil
	}
	return int64(v & 0xffffffff), nil
}

// ReadLong consumes a 64-bit value. Longs are always signed on the
// wire.
func (r *Reader) ReadLong(t ValueType, o ByteOrder) (int64, error) {
	v, err := r.readValue(8, t, o)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ReadString consumes bytes up to and including the terminator and
// returns everything before it. A missing terminator surfaces as
// ErrBufferExhausted, never as a hang.
func (r *Reader) ReadString() (string, error) {
	var b strings.Builder
	for {
		v, err := r.ReadUint8(true, Standard)
		if err != nil {
			return "", errors.Wrap(err, "unterminated string")
		}
		if v == stringTerminator {
			return b.String(), nil
		}
		b.WriteByte(byte(v))
	}
}

// ReadBytes consumes n bytes, each through the value transform.
func (r *Reader) ReadBytes(n int, t ValueType) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, errors.Wrapf(ErrBufferExhausted, "read %d of %d remaining", n, r.Remaining())
	}
	data := make([]byte, n)
	for i := range data {
		v, err := r.ReadUint8(true, t)
		if err != nil {
			return nil, err
		}
		data[i] = byte(v)
	}
	return data, nil
}

// ReadBytesReverse peeks n bytes starting at cursor+n-1 down to the
// cursor, each through the value transform. The cursor does NOT
// advance; callers that want to consume the run must Skip it
// themselves. This asymmetry with ReadBytes is part of the wire
// format's contract.
func (r *Reader) ReadBytesReverse(n int, t ValueType) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, errors.Wrapf(ErrBufferExhausted, "reverse read %d of %d remaining", n, r.Remaining())
	}
	data := make([]byte, n)
	for i, j := 0, r.pos+n-1; j >= r.pos; i, j = i+1, j-1 {
		data[i] = byte(t.decode(int(int8(r.buf[j]))))
	}
	return data, nil
}
