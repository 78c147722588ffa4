// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/reimint"
	"github.com/rei-network/reimint/validatorset"
)

func extraAction(ctx *cli.Context) error {
	initLogger(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	extra, err := hexutil.Decode(ctx.String(hexFlag.Name))
	if err != nil {
		return errors.Wrap(err, "decode hex")
	}
	var hash rei.Bytes32
	if s := ctx.String(hashFlag.Name); s != "" {
		if hash, err = rei.ParseBytes32(s); err != nil {
			return err
		}
	}
	valSet, err := validatorset.GenesisActiveSet(validatorset.NewGenesis(cfg.GenesisValidators))
	if err != nil {
		return err
	}

	ed, err := reimint.DecodeExtraData(extra, &reimint.ExtraDataOptions{
		ChainID:          cfg.ChainID,
		Height:           ctx.Uint64(heightFlag.Name),
		Hash:             hash,
		Timestamp:        ctx.Uint64(timestampFlag.Name),
		ValSet:           valSet,
		MaxEvidenceCount: cfg.MaxEvidenceCount,
	})
	if err != nil {
		return err
	}
	printExtraData(os.Stdout, ed)
	return nil
}

func printExtraData(w io.Writer, ed *reimint.ExtraData) {
	fmt.Fprintf(w, "round:        %d\n", ed.Round)
	fmt.Fprintf(w, "commit round: %d\n", ed.CommitRound)
	fmt.Fprintf(w, "POL round:    %d\n", ed.POLRound)

	if proposer, err := ed.Proposal.Proposer(); err != nil {
		fmt.Fprintf(w, "proposer:     invalid signature (%v)\n", err)
	} else {
		fmt.Fprintf(w, "proposer:     %v\n", proposer)
	}

	fmt.Fprintf(w, "evidence:     %d\n", len(ed.Evidence))
	for _, ev := range ed.Evidence {
		fmt.Fprintf(w, "  %v at %d\n", ev.Hash(), ev.Height())
	}

	if ed.VoteSet == nil {
		fmt.Fprintln(w, "votes:        none")
		return
	}
	fmt.Fprintf(w, "votes:        %v (power %v of %v, commit %v)\n",
		ed.VoteSet.BitArray(), ed.VoteSet.Sum(), ed.VoteSet.ValSet().TotalVotingPower(), ed.VoteSet.IsCommit())
}
