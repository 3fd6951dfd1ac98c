// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package packetbuf

import "github.com/pkg/errors"

// ByteOrder is the order in which the bytes of a multi-byte value are
// put on the wire. Beyond the usual big and little endianness the
// protocol scrambles 32-bit values two more ways.
type ByteOrder uint8

const (
	// Big emits the most significant byte first.
	Big ByteOrder = iota
	// Little emits the least significant byte first.
	Little
	// Middle emits byte indices 1,0,3,2. Defined for 32-bit values
	// only.
	Middle
	// InverseMiddle emits byte indices 2,3,1,0. Defined for 32-bit
	// values only.
	InverseMiddle
)

func (o ByteOrder) String() string {
	switch o {
	case Big:
		return "big-endian"
	case Little:
		return "little-endian"
	case Middle:
		return "middle-endian"
	case InverseMiddle:
		return "inverse-middle-endian"
	}
	return "unknown-endian"
}

var (
	middleSequence        = []int{1, 0, 3, 2}
	inverseMiddleSequence = []int{2, 3, 1, 0}
)

// sequence returns the byte indices of a width-byte value in emission
// order, index 0 being the least significant byte. The ValueType of a
// field always rides on the LAST index of the returned sequence, never
// on a fixed significance position; keeping that choice here, in one
// place, is what keeps Reader and Writer symmetric.
//
// Middle and InverseMiddle exist only at width 4. Asking for them at
// any other width fails before a single byte is touched.
func (o ByteOrder) sequence(width int) ([]int, error) {
	switch o {
	case Big:
		seq := make([]int, width)
		for i := range seq {
			seq[i] = width - 1 - i
		}
		return seq, nil
	case Little:
		seq := make([]int, width)
		for i := range seq {
			seq[i] = i
		}
		return seq, nil
	case Middle:
		if width != 4 {
			return nil, errors.Wrapf(ErrUnsupportedOrder, "middle-endian %d-byte value", width)
		}
		return middleSequence, nil
	case InverseMiddle:
		if width != 4 {
			return nil, errors.Wrapf(ErrUnsupportedOrder, "inverse-middle-endian %d-byte value", width)
		}
		return inverseMiddleSequence, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOrder, "byte order %d", o)
}
