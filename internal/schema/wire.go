// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

package schema

import (
	"encoding/hex"
	"strconv"

	"github.com/pkg/errors"

	"github.com/runevale/packetbuf"
)

// Value is one decoded field.
type Value struct {
	Name string
	Kind string
	Raw  interface{}
}

// Decode drains a whole packet (opcode, length frame and body fields)
// from r per the schema.
func (p *Packet) Decode(r *packetbuf.Reader) ([]Value, error) {
	opcode, err := r.ReadUint8(false, packetbuf.Standard)
	if err != nil {
		return nil, errors.Wrap(err, "schema: opcode")
	}
	if opcode != p.Opcode {
		return nil, errors.Errorf("schema: packet has opcode %d, schema %q wants %d", opcode, p.Name, p.Opcode)
	}

	var length int
	switch p.Length {
	case LengthVariableByte:
		length, err = r.ReadUint8(false, packetbuf.Standard)
	case LengthVariableShort:
		length, err = r.ReadShort(false, packetbuf.Standard, packetbuf.Big)
	default:
		length = r.Remaining()
	}
	if err != nil {
		return nil, errors.Wrap(err, "schema: length field")
	}
	if length != r.Remaining() {
		return nil, errors.Errorf("schema: length field says %d bytes but %d remain", length, r.Remaining())
	}

	values := make([]Value, 0, len(p.Fields))
	for _, f := range p.Fields {
		raw, err := f.read(r)
		if err != nil {
			return nil, errors.Wrapf(err, "schema: field %q", f.Name)
		}
		values = append(values, Value{Name: f.Name, Kind: f.Kind, Raw: raw})
	}
	if n := r.Remaining(); n != 0 {
		return nil, errors.Errorf("schema: %d trailing bytes after last field", n)
	}
	return values, nil
}

func (f Field) read(r *packetbuf.Reader) (interface{}, error) {
	switch f.Kind {
	case KindByte:
		return r.ReadUint8(f.Signed, f.transform())
	case KindShort:
		return r.ReadShort(f.Signed, f.transform(), f.order())
	case KindInt:
		return r.ReadInt(f.Signed, f.transform(), f.order())
	case KindLong:
		return r.ReadLong(f.transform(), f.order())
	case KindString:
		return r.ReadString()
	case KindBytes:
		return r.ReadBytes(f.Count, f.transform())
	}
	return nil, errors.Errorf("unknown kind %q", f.Kind)
}

// Encode builds a packet from one textual argument per field: numbers
// for the integer kinds (hex with an 0x prefix works), raw text for
// strings, hex digits for byte runs.
func (p *Packet) Encode(args []string) ([]byte, error) {
	if len(args) != len(p.Fields) {
		return nil, errors.Errorf("schema: %q has %d fields, got %d values", p.Name, len(p.Fields), len(args))
	}

	w := packetbuf.NewWriter(0)
	var err error
	switch p.Length {
	case LengthVariableByte:
		err = w.WriteVariablePacketHeader(p.Opcode)
	case LengthVariableShort:
		err = w.WriteVariableShortPacketHeader(p.Opcode)
	default:
		err = w.WriteHeader(p.Opcode)
	}
	if err != nil {
		return nil, errors.Wrap(err, "schema: header")
	}

	for i, f := range p.Fields {
		if err := f.write(w, args[i]); err != nil {
			return nil, errors.Wrapf(err, "schema: field %q", f.Name)
		}
	}

	switch p.Length {
	case LengthVariableByte:
		err = w.FinishVariablePacketHeader()
	case LengthVariableShort:
		err = w.FinishVariableShortPacketHeader()
	}
	if err != nil {
		return nil, errors.Wrap(err, "schema: finish header")
	}
	return w.Bytes(), nil
}

func (f Field) write(w *packetbuf.Writer, arg string) error {
	switch f.Kind {
	case KindString:
		return w.WriteString(arg)
	case KindBytes:
		data, err := hex.DecodeString(arg)
		if err != nil {
			return errors.Wrap(err, "bad hex")
		}
		if len(data) != f.Count {
			return errors.Errorf("want %d bytes, got %d", f.Count, len(data))
		}
		// byte runs go through the transform on both paths, so a
		// generated packet decodes back to the same run
		for _, b := range data {
			if err := w.WriteUint8(int(b), f.transform()); err != nil {
				return err
			}
		}
		return nil
	}

	v, err := strconv.ParseInt(arg, 0, 64)
	if err != nil {
		return errors.Wrap(err, "bad number")
	}
	switch f.Kind {
	case KindByte:
		return w.WriteUint8(int(v), f.transform())
	case KindShort:
		return w.WriteShort(int(v), f.transform(), f.order())
	case KindInt:
		return w.WriteInt(int(v), f.transform(), f.order())
	case KindLong:
		return w.WriteLong(v, f.transform(), f.order())
	}
	return errors.Errorf("unknown kind %q", f.Kind)
}
