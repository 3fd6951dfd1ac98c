// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

// Package schema loads TOML descriptions of packet field layouts for
// the debug tools. The codec itself imposes no schema (field order is
// agreed between peers in code); a schema file stands in for the
// encoder/decoder pair when poking at captured packets by hand.
package schema

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/komkom/toml"
	"github.com/pkg/errors"

	"github.com/runevale/packetbuf"
)

// Length variants of the packet frame.
const (
	LengthFixed         = "fixed"
	LengthVariableByte  = "variable-byte"
	LengthVariableShort = "variable-short"
)

// Field kinds.
const (
	KindByte   = "byte"
	KindShort  = "short"
	KindInt    = "int"
	KindLong   = "long"
	KindString = "string"
	KindBytes  = "bytes"
)

// Packet describes one packet: its opcode, its length framing and its
// body fields in wire order.
type Packet struct {
	Name   string  `json:"name"`
	Opcode int     `json:"opcode"`
	Length string  `json:"length"`
	Fields []Field `json:"-"`
}

// Field describes one body field.
type Field struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Transform string `json:"transform"`
	Order     string `json:"order"`
	Signed    bool   `json:"signed"`
	Count     int    `json:"count"`
}

// document is the on-disk shape: a [packet] table plus [[fields]].
type document struct {
	Packet Packet  `json:"packet"`
	Fields []Field `json:"fields"`
}

var transforms = map[string]packetbuf.ValueType{
	"":         packetbuf.Standard,
	"standard": packetbuf.Standard,
	"add":      packetbuf.AddBias,
	"negate":   packetbuf.Negate,
	"subtract": packetbuf.SubtractFromBias,
}

var orders = map[string]packetbuf.ByteOrder{
	"":               packetbuf.Big,
	"big":            packetbuf.Big,
	"little":         packetbuf.Little,
	"middle":         packetbuf.Middle,
	"inverse-middle": packetbuf.InverseMiddle,
}

// Load reads and validates a schema file.
func Load(path string) (*Packet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "schema: failed to read file")
	}
	return Parse(data)
}

// Parse decodes a TOML schema document. The TOML is streamed through a
// JSON transcoder and decoded with the stdlib, so the struct tags above
// are json tags.
func Parse(data []byte) (*Packet, error) {
	var doc document
	dec := json.NewDecoder(toml.New(bytes.NewBuffer(data)))
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "schema: failed to decode document")
	}

	pkt := doc.Packet
	pkt.Fields = doc.Fields
	if pkt.Length == "" {
		pkt.Length = LengthFixed
	}
	if err := pkt.validate(); err != nil {
		return nil, err
	}
	return &pkt, nil
}

// validate checks the whole document and reports every problem at
// once rather than stopping at the first.
func (p *Packet) validate() error {
	var result *multierror.Error

	if p.Opcode < 0 || p.Opcode > 255 {
		result = multierror.Append(result, errors.Errorf("schema: opcode %d outside 0..255", p.Opcode))
	}
	switch p.Length {
	case LengthFixed, LengthVariableByte, LengthVariableShort:
	default:
		result = multierror.Append(result, errors.Errorf("schema: unknown length framing %q", p.Length))
	}

	for i, f := range p.Fields {
		if f.Name == "" {
			result = multierror.Append(result, errors.Errorf("schema: field %d has no name", i))
		}
		switch f.Kind {
		case KindByte, KindShort, KindInt, KindLong, KindString:
			if f.Count != 0 {
				result = multierror.Append(result, errors.Errorf("schema: field %q: count is only valid for kind %q", f.Name, KindBytes))
			}
		case KindBytes:
			if f.Count <= 0 {
				result = multierror.Append(result, errors.Errorf("schema: field %q: kind %q needs a positive count", f.Name, KindBytes))
			}
		default:
			result = multierror.Append(result, errors.Errorf("schema: field %q: unknown kind %q", f.Name, f.Kind))
		}
		if _, ok := transforms[f.Transform]; !ok {
			result = multierror.Append(result, errors.Errorf("schema: field %q: unknown transform %q", f.Name, f.Transform))
		}
		if _, ok := orders[f.Order]; !ok {
			result = multierror.Append(result, errors.Errorf("schema: field %q: unknown byte order %q", f.Name, f.Order))
		}
	}

	return result.ErrorOrNil()
}

func (f Field) transform() packetbuf.ValueType { return transforms[f.Transform] }
func (f Field) order() packetbuf.ByteOrder     { return orders[f.Order] }
