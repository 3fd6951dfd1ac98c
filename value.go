// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package packetbuf

// ValueType is the per-byte obfuscation transform of the protocol. It
// is applied to exactly one byte of a multi-byte field: the byte that
// is emitted or consumed last in the field's byte-order sequence.
type ValueType uint8

const (
	// Standard leaves the byte untouched.
	Standard ValueType = iota
	// AddBias adds 128 on encode and subtracts it on decode.
	AddBias
	// Negate arithmetically negates the byte. Its own inverse.
	Negate
	// SubtractFromBias replaces the byte with 128 minus it. Its own
	// inverse.
	SubtractFromBias
)

func (t ValueType) String() string {
	switch t {
	case Standard:
		return "standard"
	case AddBias:
		return "add-bias"
	case Negate:
		return "negate"
	case SubtractFromBias:
		return "subtract-from-bias"
	}
	return "unknown-transform"
}

// encode applies the write half of the transform. The caller truncates
// the result to a byte; the transforms are byte-local so pre- and
// post-truncation arithmetic agree modulo 256.
func (t ValueType) encode(v int) int {
	switch t {
	case AddBias:
		v += 128
	case Negate:
		v = -v
	case SubtractFromBias:
		v = 128 - v
	}
	return v
}

// decode applies the read half. Not the same function called twice:
// AddBias inverts by direct subtraction.
func (t ValueType) decode(v int) int {
	switch t {
	case AddBias:
		v -= 128
	case Negate:
		v = -v
	case SubtractFromBias:
		v = 128 - v
	}
	return v
}
