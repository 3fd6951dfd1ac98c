// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package packetbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allTransforms = []ValueType{Standard, AddBias, Negate, SubtractFromBias}

func TestShortRoundTrip(t *testing.T) {
	values := []int{0, 1, 0x80, 0xff, 0x1234, 0x7fff, -1, -0x8000}

	for _, order := range []ByteOrder{Big, Little} {
		for _, vt := range allTransforms {
			for _, v := range values {
				w := NewWriter(0)
				require.NoError(t, w.WriteShort(v, vt, order))
				require.Equal(t, 2, w.Len())

				rd := NewReader(w.Bytes())
				got, err := rd.ReadShort(true, vt, order)
				require.NoError(t, err)
				require.Equal(t, int(int16(v)), got, "%s/%s signed %#x", order, vt, v)

				rd = NewReader(w.Bytes())
				ugot, err := rd.ReadShort(false, vt, order)
				require.NoError(t, err)
				require.Equal(t, v&0xffff, ugot, "%s/%s unsigned %#x", order, vt, v)
			}
		}
	}
}

func TestIntRoundTrip(t *testing.T) {
	values := []int{0, 1, 0xff, 0x1234, 0x11223344, 0x7fffffff, -1, -0x80000000}

	for _, order := range []ByteOrder{Big, Little, Middle, InverseMiddle} {
		for _, vt := range allTransforms {
			for _, v := range values {
				w := NewWriter(0)
				require.NoError(t, w.WriteInt(v, vt, order))
				require.Equal(t, 4, w.Len())

				rd := NewReader(w.Bytes())
				got, err := rd.ReadInt(true, vt, order)
				require.NoError(t, err)
				require.Equal(t, int64(int32(v)), got, "%s/%s signed %#x", order, vt, v)

				rd = NewReader(w.Bytes())
				ugot, err := rd.ReadInt(false, vt, order)
				require.NoError(t, err)
				require.Equal(t, int64(uint32(v)), ugot, "%s/%s unsigned %#x", order, vt, v)
			}
		}
	}
}

func TestLongRoundTrip(t *testing.T) {
	values := []int64{0, 1, 0xff, 0x1122334455667788, 0x7fffffffffffffff, -1, -0x8000000000000000}

	for _, order := range []ByteOrder{Big, Little} {
		for _, vt := range allTransforms {
			for _, v := range values {
				w := NewWriter(0)
				require.NoError(t, w.WriteLong(v, vt, order))
				require.Equal(t, 8, w.Len())

				rd := NewReader(w.Bytes())
				got, err := rd.ReadLong(vt, order)
				require.NoError(t, err)
				require.Equal(t, v, got, "%s/%s %#x", order, vt, v)
			}
		}
	}
}

func TestMiddleEndianIntLayout(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.WriteInt(0x11223344, Standard, Middle))
	r.Equal([]byte{0x33, 0x44, 0x11, 0x22}, w.Bytes())

	w = NewWriter(0)
	r.NoError(w.WriteInt(0x11223344, Standard, InverseMiddle))
	r.Equal([]byte{0x22, 0x11, 0x33, 0x44}, w.Bytes())
}

func TestUnsupportedOrderWidthCombinations(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.ErrorIs(w.WriteShort(1, Standard, Middle), ErrUnsupportedOrder)
	r.ErrorIs(w.WriteShort(1, Standard, InverseMiddle), ErrUnsupportedOrder)
	r.ErrorIs(w.WriteLong(1, Standard, Middle), ErrUnsupportedOrder)
	r.ErrorIs(w.WriteLong(1, Standard, InverseMiddle), ErrUnsupportedOrder)
	// nothing was produced by the failed writes
	r.Equal(0, w.Len())

	rd := NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	_, err := rd.ReadShort(true, Standard, Middle)
	r.ErrorIs(err, ErrUnsupportedOrder)
	_, err = rd.ReadLong(Standard, InverseMiddle)
	r.ErrorIs(err, ErrUnsupportedOrder)
	// nothing was consumed by the failed reads
	r.Equal(0, rd.Position())
}

func TestStringRoundTrip(t *testing.T) {
	r := require.New(t)

	w := NewWriter(0)
	r.NoError(w.WriteString("hello"))
	r.Equal([]byte{'h', 'e', 'l', 'l', 'o', 10}, w.Bytes())

	rd := NewReader(w.Bytes())
	s, err := rd.ReadString()
	r.NoError(err)
	r.Equal("hello", s)
	r.Equal(0, rd.Remaining())
}
