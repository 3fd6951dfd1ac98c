// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package packetbuf

import "github.com/pkg/errors"

// The codec never retries and never logs; every failure is synchronous
// and surfaces to the immediate caller wrapped around one of these
// sentinels. Discriminate with errors.Is.
var (
	// ErrUnsupportedOrder marks a byte-order/width combination the
	// wire format does not define, such as a middle-endian short.
	ErrUnsupportedOrder = errors.New("packetbuf: unsupported byte order for this width")

	// ErrBitReadUnsupported is returned when a Reader is switched to
	// bit access. The protocol only ever writes bit-packed regions;
	// readers must not silently grow the capability.
	ErrBitReadUnsupported = errors.New("packetbuf: bit-addressed reads are not supported")

	// ErrInvalidAccessMode marks a byte-mode operation attempted in
	// bit mode, or the reverse.
	ErrInvalidAccessMode = errors.New("packetbuf: operation not allowed in current access mode")

	// ErrInvalidBitCount marks a bit count outside [0,32].
	ErrInvalidBitCount = errors.New("packetbuf: bit count must be between 0 and 32")

	// ErrBufferExhausted marks a read past the end of the backing
	// store. The transport treats this as a malformed packet.
	ErrBufferExhausted = errors.New("packetbuf: read past end of buffer")

	// ErrNoLengthMark marks finishing a variable packet header that
	// was never opened, or finishing one twice.
	ErrNoLengthMark = errors.New("packetbuf: no open variable-length header")
)
