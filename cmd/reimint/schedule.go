// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rei-network/reimint/validatorset"
)

func scheduleAction(ctx *cli.Context) error {
	initLogger(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	set, err := validatorset.GenesisActiveSet(validatorset.NewGenesis(cfg.GenesisValidators))
	if err != nil {
		return err
	}
	return printSchedule(os.Stdout, set, ctx.Int(roundsFlag.Name))
}

// printSchedule writes the proposer of rounds 0 to rounds-1 of the height set belongs to.
func printSchedule(w io.Writer, set *validatorset.ActiveSet, rounds int) error {
	if rounds <= 0 {
		return errors.New("rounds must be positive")
	}
	fmt.Fprintf(w, "round 0\t%v\n", set.Proposer())
	for round := 1; round < rounds; round++ {
		rotated, err := set.WithIncrementedPriority(round)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "round %d\t%v\n", round, rotated.Proposer())
	}
	return nil
}
