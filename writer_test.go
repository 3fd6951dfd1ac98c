// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package packetbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariablePacketHeader(t *testing.T) {
	for _, bodyLen := range []int{0, 1, 255} {
		w := NewWriter(0)
		require.NoError(t, w.WriteVariablePacketHeader(10))
		require.NoError(t, w.WriteBytes(make([]byte, bodyLen)))
		require.NoError(t, w.FinishVariablePacketHeader())

		out := w.Bytes()
		require.Equal(t, byte(10), out[0])
		require.Equal(t, byte(bodyLen), out[1], "body of %d bytes", bodyLen)
		require.Len(t, out, bodyLen+2)
	}
}

func TestVariableShortPacketHeader(t *testing.T) {
	for _, bodyLen := range []int{0, 1, 255, 256, 4000} {
		w := NewWriter(0)
		require.NoError(t, w.WriteVariableShortPacketHeader(10))
		require.NoError(t, w.WriteBytes(make([]byte, bodyLen)))
		require.NoError(t, w.FinishVariableShortPacketHeader())

		out := w.Bytes()
		require.Equal(t, byte(10), out[0])
		require.Equal(t, bodyLen, int(out[1])<<8|int(out[2]), "body of %d bytes", bodyLen)
		require.Len(t, out, bodyLen+3)
	}
}

func TestFinishWithoutOpenMark(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.ErrorIs(w.FinishVariablePacketHeader(), ErrNoLengthMark)
	r.ErrorIs(w.FinishVariableShortPacketHeader(), ErrNoLengthMark)

	r.NoError(w.WriteVariablePacketHeader(3))
	r.NoError(w.WriteUint8(42, Standard))
	r.NoError(w.FinishVariablePacketHeader())
	// the mark is consumed, a second finish is a caller bug
	r.ErrorIs(w.FinishVariablePacketHeader(), ErrNoLengthMark)
}

func TestFinishDoesNotMoveCursor(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.WriteVariablePacketHeader(7))
	r.NoError(w.WriteBytes([]byte{1, 2, 3}))
	before := w.Len()
	r.NoError(w.FinishVariablePacketHeader())
	r.Equal(before, w.Len())
}

func TestGrowthPreservesContent(t *testing.T) {
	r := require.New(t)

	w := NewWriter(2)
	var want []byte
	for i := 0; i < 300; i++ {
		r.NoError(w.WriteUint8(i, Standard))
		want = append(want, byte(i))
	}
	r.Equal(want, w.Bytes())
}

func TestGrowthPreservesOpenLengthMark(t *testing.T) {
	r := require.New(t)

	w := NewWriter(2)
	r.NoError(w.WriteVariablePacketHeader(99))
	body := make([]byte, 200)
	for i := range body {
		body[i] = byte(i)
	}
	r.NoError(w.WriteBytes(body))
	r.NoError(w.FinishVariablePacketHeader())

	out := w.Bytes()
	r.Equal(byte(99), out[0])
	r.Equal(byte(200), out[1])
	r.Equal(body, out[2:])
}

func TestWriteBitsPacking(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.SetAccess(BitAccess))
	r.NoError(w.WriteBits(3, 5))
	r.NoError(w.WriteBits(13, 4000))
	r.NoError(w.WriteBit(true))
	r.NoError(w.SetAccess(ByteAccess))

	// 101 | 0111110100000 | 1, packed most significant bit first
	r.Equal([]byte{0xaf, 0xa0, 0x80}, w.Bytes())
}

func TestWriteBitsAfterBytes(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.WriteUint8(0x42, Standard))
	r.NoError(w.SetAccess(BitAccess))
	r.NoError(w.WriteBits(8, 0xff))
	r.NoError(w.SetAccess(ByteAccess))
	r.NoError(w.WriteUint8(0x21, Standard))

	r.Equal([]byte{0x42, 0xff, 0x21}, w.Bytes())
}

func TestWriteBitsGrowth(t *testing.T) {
	r := require.New(t)

	w := NewWriter(2)
	r.NoError(w.SetAccess(BitAccess))
	for i := 0; i < 100; i++ {
		r.NoError(w.WriteBits(8, i))
	}
	r.NoError(w.SetAccess(ByteAccess))

	out := w.Bytes()
	r.Len(out, 100)
	for i := range out {
		r.Equal(byte(i), out[i])
	}
}

func TestWriteBitsValidation(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	// still in byte access
	r.ErrorIs(w.WriteBits(4, 1), ErrInvalidAccessMode)

	r.NoError(w.SetAccess(BitAccess))
	r.ErrorIs(w.WriteBits(-1, 0), ErrInvalidBitCount)
	r.ErrorIs(w.WriteBits(33, 0), ErrInvalidBitCount)
	r.NoError(w.WriteBits(0, 0))
	r.NoError(w.WriteBits(32, -1))

	// byte writes are refused while in bit access
	r.ErrorIs(w.WriteUint8(1, Standard), ErrInvalidAccessMode)
	r.ErrorIs(w.WriteBytes([]byte{1}), ErrInvalidAccessMode)
}

func TestAccessSwitchReconcilesCursors(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.WriteUint8(1, Standard))
	r.NoError(w.SetAccess(BitAccess))
	r.NoError(w.WriteBits(3, 7))
	r.NoError(w.SetAccess(ByteAccess))
	// 8 bits from the byte write plus 3 bits round up to 2 bytes
	r.Equal(2, w.Len())
}

func TestWriterRedundantAccessSwitchKeepsCursor(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.WriteUint8(1, Standard))
	r.NoError(w.SetAccess(BitAccess))
	r.NoError(w.WriteBits(3, 7))
	r.NoError(w.SetAccess(ByteAccess))
	r.NoError(w.WriteUint8(2, Standard))
	r.Equal(3, w.Len())

	// the bit cursor from the earlier session is stale; re-setting
	// byte access must not rewind onto it
	r.NoError(w.SetAccess(ByteAccess))
	r.Equal(3, w.Len())

	r.NoError(w.WriteUint8(3, Standard))
	r.Equal([]byte{1, 0xe0, 2, 3}, w.Bytes())
}

func TestWriteBytesReverse(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.WriteBytesReverse([]byte{1, 2, 3}))
	r.Equal([]byte{3, 2, 1}, w.Bytes())
}
