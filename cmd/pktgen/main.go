// SPDX-FileCopyrightText: 2025 The Packetbuf Authors
//
// SPDX-License-Identifier: MIT

// pktgen builds a packet from a TOML field schema and one value
// argument per field, then hex dumps it to stdout.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.mindeco.de/log/level"

	"github.com/runevale/packetbuf/internal/schema"
	"github.com/runevale/packetbuf/internal/testutils"
)

func main() {
	logger := testutils.NewRelativeTimeLogger(nil)

	app := cli.App{
		Name:      "pktgen",
		Usage:     "encode field values into a packet",
		ArgsUsage: "<value>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "schema", Usage: "TOML schema describing the packet", Required: true},
		},
		Action: func(ctx *cli.Context) error {
			pkt, err := schema.Load(ctx.String("schema"))
			if err != nil {
				return err
			}

			wire, err := pkt.Encode(ctx.Args().Slice())
			if err != nil {
				return err
			}

			fmt.Print(hex.Dump(wire))
			level.Info(logger).Log("event", "encoded", "packet", pkt.Name, "bytes", len(wire))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pktgen:", err)
		os.Exit(1)
	}
}
