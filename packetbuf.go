// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

// Package packetbuf implements the binary packet codec of the game
// protocol. It serializes and deserializes primitive values (bytes,
// shorts, ints, longs, strings, raw byte runs and sub-byte bit fields)
// into a growable byte store using the protocol's obfuscated wire
// format: four byte orders, four per-byte value transforms, deferred
// variable-length packet headers and a bit-addressed write mode
// multiplexed onto the same store.
//
// A Writer builds exactly one outgoing packet, a Reader drains exactly
// one incoming packet. Instances are not safe for concurrent use;
// isolation comes from never sharing a buffer across packets.
package packetbuf

// AccessMode selects whether a buffer is currently addressed at byte
// or at bit granularity.
type AccessMode uint8

const (
	// ByteAccess addresses the store one whole byte at a time.
	ByteAccess AccessMode = iota
	// BitAccess addresses the store at bit granularity. Only the
	// Writer supports it.
	BitAccess
)

func (m AccessMode) String() string {
	switch m {
	case ByteAccess:
		return "byte-access"
	case BitAccess:
		return "bit-access"
	}
	return "unknown-access"
}

// bitmask holds the masks for 0 to 32 bits, used by the bit writer to
// clear and merge partial bytes.
var bitmask = [33]uint32{
	0, 0x1, 0x3, 0x7, 0xf, 0x1f, 0x3f, 0x7f, 0xff,
	0x1ff, 0x3ff, 0x7ff, 0xfff, 0x1fff, 0x3fff, 0x7fff, 0xffff,
	0x1ffff, 0x3ffff, 0x7ffff, 0xfffff, 0x1fffff, 0x3fffff, 0x7fffff, 0xffffff,
	0x1ffffff, 0x3ffffff, 0x7ffffff, 0xfffffff, 0x1fffffff, 0x3fffffff, 0x7fffffff, 0xffffffff,
}

// access is the cursor bookkeeping shared by Reader and Writer. The
// byte cursor stays with the owner; access only tracks the mode and
// the bit cursor and keeps the two cursors reconciled on every switch.
type access struct {
	mode   AccessMode
	bitPos int
}

// switchTo changes the access mode and reconciles both cursors.
// Entering bit access derives the bit cursor from the byte cursor,
// leaving it rounds the bit cursor up to the next whole byte. Setting
// the mode already in effect is a no-op: without a transition there is
// nothing to reconcile, and recomputing a cursor from the other, stale
// one would rewind it.
func (a *access) switchTo(m AccessMode, bytePos *int) {
	if m == a.mode {
		return
	}
	switch m {
	case BitAccess:
		a.bitPos = *bytePos * 8
	case ByteAccess:
		*bytePos = (a.bitPos + 7) / 8
	}
	a.mode = m
}
