// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package packetbuf

import "github.com/pkg/errors"

// defaultWriterSize is the initial capacity used when the caller does
// not name one. Most packets are small; growth doubles from here.
const defaultWriterSize = 16

// Writer builds one outgoing packet. It exclusively owns a growable
// byte store: any write that would run past capacity reallocates to at
// least double, preserving content, cursor and any open length mark
// (all of which are offsets, not store identities).
//
// A Writer is not safe for concurrent use.
type Writer struct {
	access
	buf []byte
	pos int

	// lengthPos is the deferred-length mark, -1 while no variable
	// header is open.
	lengthPos int
}

// NewWriter returns a Writer with the given initial capacity, or a
// small default for size <= 0.
func NewWriter(size int) *Writer {
	if size <= 0 {
		size = defaultWriterSize
	}
	return &Writer{
		buf:       make([]byte, size),
		lengthPos: -1,
	}
}

// SetAccess switches between byte- and bit-addressed writing,
// reconciling the byte and bit cursors.
func (w *Writer) SetAccess(m AccessMode) error {
	w.access.switchTo(m, &w.pos)
	return nil
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.pos }

// Bytes returns the finished store, up to the cursor. Leave bit access
// before calling so the cursor covers the last partial byte.
func (w *Writer) Bytes() []byte { return w.buf[:w.pos] }

// ensure grows the store until a write of n more bytes fits. Existing
// bytes keep their offsets, so the cursor and the length mark survive
// every reallocation.
func (w *Writer) ensure(n int) {
	for w.pos+n+1 >= len(w.buf) {
		w.grow(len(w.buf) * 2)
	}
}

func (w *Writer) grow(size int) {
	if size <= len(w.buf) {
		size = len(w.buf)*2 + 1
	}
	next := make([]byte, size)
	copy(next, w.buf)
	w.buf = next
}

// WriteUint8 applies the value transform, grows the store if needed and
// appends one byte. Requires byte access.
func (w *Writer) WriteUint8(v int, t ValueType) error {
	if w.mode != ByteAccess {
		return errors.Wrap(ErrInvalidAccessMode, "write byte")
	}
	w.ensure(1)
	w.buf[w.pos] = byte(t.encode(v))
	w.pos++
	return nil
}

// writeValue composes WriteUint8 calls per the byte-order sequence. The
// value transform rides on the last byte of the sequence.
func (w *Writer) writeValue(v uint64, width int, t ValueType, o ByteOrder) error {
	seq, err := o.sequence(width)
	if err != nil {
		return err
	}
	for i, idx := range seq {
		bt := Standard
		if i == len(seq)-1 {
			bt = t
		}
		if err := w.WriteUint8(int(v>>uint(8*idx)), bt); err != nil {
			return err
		}
	}
	return nil
}

// WriteShort emits a 16-bit value.
func (w *Writer) WriteShort(v int, t ValueType, o ByteOrder) error {
	return w.writeValue(uint64(int64(v)), 2, t, o)
}

// WriteInt emits a 32-bit value.
func (w *Writer) WriteInt(v int, t ValueType, o ByteOrder) error {
	return w.writeValue(uint64(int64(v)), 4, t, o)
}

// WriteLong emits a 64-bit value.
func (w *Writer) WriteLong(v int64, t ValueType, o ByteOrder) error {
	return w.writeValue(uint64(v), 8, t, o)
}

// WriteString emits the raw bytes of s followed by the terminator.
func (w *Writer) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := w.WriteUint8(int(s[i]), Standard); err != nil {
			return err
		}
	}
	return w.WriteUint8(stringTerminator, Standard)
}

// WriteBytes appends p as-is.
func (w *Writer) WriteBytes(p []byte) error {
	if w.mode != ByteAccess {
		return errors.Wrap(ErrInvalidAccessMode, "write bytes")
	}
	w.ensure(len(p))
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return nil
}

// WriteBytesReverse appends p back to front.
func (w *Writer) WriteBytesReverse(p []byte) error {
	for i := len(p) - 1; i >= 0; i-- {
		if err := w.WriteUint8(int(p[i]), Standard); err != nil {
			return err
		}
	}
	return nil
}

// WriteHeader emits the opcode of a fixed-length packet.
func (w *Writer) WriteHeader(opcode int) error {
	return w.WriteUint8(opcode, Standard)
}

// WriteVariablePacketHeader emits the opcode, marks the cursor and
// reserves one placeholder byte for the length. The matching
// FinishVariablePacketHeader must run once the body is written.
func (w *Writer) WriteVariablePacketHeader(opcode int) error {
	if err := w.WriteHeader(opcode); err != nil {
		return err
	}
	w.lengthPos = w.pos
	return w.WriteUint8(0, Standard)
}

// WriteVariableShortPacketHeader is WriteVariablePacketHeader with a
// two-byte length placeholder.
func (w *Writer) WriteVariableShortPacketHeader(opcode int) error {
	if err := w.WriteHeader(opcode); err != nil {
		return err
	}
	w.lengthPos = w.pos
	return w.WriteShort(0, Standard, Big)
}

// FinishVariablePacketHeader patches the body length into the reserved
// byte. The cursor does not move and the mark is cleared; finishing
// without an open mark, or twice, fails.
func (w *Writer) FinishVariablePacketHeader() error {
	if w.lengthPos < 0 {
		return errors.Wrap(ErrNoLengthMark, "finish variable header")
	}
	w.buf[w.lengthPos] = byte(w.pos - w.lengthPos - 1)
	w.lengthPos = -1
	return nil
}

// FinishVariableShortPacketHeader patches the body length into the two
// reserved bytes, big-endian.
func (w *Writer) FinishVariableShortPacketHeader() error {
	if w.lengthPos < 0 {
		return errors.Wrap(ErrNoLengthMark, "finish variable short header")
	}
	length := w.pos - w.lengthPos - 2
	w.buf[w.lengthPos] = byte(length >> 8)
	w.buf[w.lengthPos+1] = byte(length)
	w.lengthPos = -1
	return nil
}

// WriteBits merges the low count bits of value into the store at the
// bit cursor, most significant bit first. Requires bit access and a
// count in [0,32]. The bit cursor advances by count before capacity is
// ensured, so growth planning sees the post-write position.
func (w *Writer) WriteBits(count, value int) error {
	if w.mode != BitAccess {
		return errors.Wrap(ErrInvalidAccessMode, "write bits")
	}
	if count < 0 || count > 32 {
		return errors.Wrapf(ErrInvalidBitCount, "got %d", count)
	}

	bytePos := w.bitPos >> 3
	bitOffset := 8 - (w.bitPos & 7)
	w.bitPos += count

	if need := bytePos + (count+7)/8 + 1; need > len(w.buf) {
		w.grow(len(w.buf) + need)
	}

	for ; count > bitOffset; bitOffset = 8 {
		b := w.buf[bytePos]
		b &= ^byte(bitmask[bitOffset])
		b |= byte(uint32(value)>>uint(count-bitOffset)) & byte(bitmask[bitOffset])
		w.buf[bytePos] = b
		bytePos++
		count -= bitOffset
	}
	b := w.buf[bytePos]
	if count == bitOffset {
		b &= ^byte(bitmask[bitOffset])
		b |= byte(uint32(value) & bitmask[bitOffset])
	} else {
		b &= ^(byte(bitmask[count]) << uint(bitOffset-count))
		b |= byte(uint32(value)&bitmask[count]) << uint(bitOffset-count)
	}
	w.buf[bytePos] = b
	return nil
}

// WriteBit emits a single flag bit.
func (w *Writer) WriteBit(flag bool) error {
	if flag {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(1, 0)
}
