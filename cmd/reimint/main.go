// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/rei-network/reimint/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "reimint",
		Usage:   "Inspection tool for Reimint consensus data",
		Flags: []cli.Flag{
			verbosityFlag,
		},
		Commands: []cli.Command{
			{
				Name:   "schedule",
				Usage:  "print the proposer of upcoming rounds",
				Flags:  []cli.Flag{configFlag, roundsFlag, verbosityFlag},
				Action: scheduleAction,
			},
			{
				Name:  "extra",
				Usage: "decode header extra data",
				Flags: []cli.Flag{
					configFlag,
					hexFlag,
					heightFlag,
					hashFlag,
					timestampFlag,
					verbosityFlag,
				},
				Action: extraAction,
			},
			{
				Name:   "evidence",
				Usage:  "list evidence stored in a database",
				Flags:  []cli.Flag{dataDirFlag, fromFlag, toFlag, limitFlag, committedFlag, verbosityFlag},
				Action: evidenceAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}
