// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

// pktdump decodes a captured packet against a TOML field schema and
// prints one log line per field.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	"github.com/runevale/packetbuf"
	"github.com/runevale/packetbuf/internal/schema"
	"github.com/runevale/packetbuf/internal/testutils"
)

var logger log.Logger

func check(err error) {
	if err != nil {
		level.Error(logger).Log("event", "fatal", "err", err)
		os.Exit(1)
	}
}

func main() {
	logger = testutils.NewRelativeTimeLogger(nil)

	app := cli.App{
		Name:      "pktdump",
		Usage:     "decode a hex packet against a field schema",
		ArgsUsage: "<hex bytes>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "schema", Usage: "TOML schema describing the packet", Required: true},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "spew the decoded values"},
		},
		Action: dump,
	}

	if err := app.Run(os.Args); err != nil {
		check(err)
	}
}

func dump(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one hex argument, got %d", ctx.NArg())
	}

	pkt, err := schema.Load(ctx.String("schema"))
	if err != nil {
		return err
	}
	level.Info(logger).Log("event", "schema loaded", "packet", pkt.Name, "opcode", pkt.Opcode, "fields", len(pkt.Fields))

	raw := strings.NewReplacer(" ", "", "\n", "").Replace(ctx.Args().First())
	wire, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("bad hex input: %w", err)
	}

	values, err := pkt.Decode(packetbuf.NewReader(wire))
	if err != nil {
		return err
	}

	for _, v := range values {
		level.Info(logger).Log("field", v.Name, "kind", v.Kind, "value", fmt.Sprint(v.Raw))
	}
	if ctx.Bool("verbose") {
		spew.Fdump(os.Stderr, values)
	}

	level.Info(logger).Log("event", "done", "size", humanize.Bytes(uint64(len(wire))))
	return nil
}
