// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/rei-network/reimint/log"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: int(log.LevelInfo),
		Usage: "log verbosity (slog level, lower is more verbose)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the consensus config file",
	}
	roundsFlag = cli.IntFlag{
		Name:  "rounds",
		Value: 10,
		Usage: "number of rounds to print",
	}
	hexFlag = cli.StringFlag{
		Name:  "hex",
		Usage: "hex encoded header extra data",
	}
	heightFlag = cli.Uint64Flag{
		Name:  "height",
		Usage: "height of the header",
	}
	hashFlag = cli.StringFlag{
		Name:  "hash",
		Usage: "header hash with vote slots excluded",
	}
	timestampFlag = cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "header timestamp",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory of the evidence database",
	}
	fromFlag = cli.Uint64Flag{
		Name:  "from",
		Usage: "lowest height to list",
	}
	toFlag = cli.Uint64Flag{
		Name:  "to",
		Value: math.MaxUint64,
		Usage: "highest height to list",
	}
	limitFlag = cli.IntFlag{
		Name:  "limit",
		Value: 100,
		Usage: "maximum number of evidence to list",
	}
	committedFlag = cli.BoolFlag{
		Name:  "committed",
		Usage: "list committed evidence instead of pending",
	}
)
