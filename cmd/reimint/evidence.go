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

	"github.com/rei-network/reimint/evidence"
	"github.com/rei-network/reimint/lvldb"
	"github.com/rei-network/reimint/reimint"
)

func evidenceAction(ctx *cli.Context) error {
	initLogger(ctx)
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return errors.Errorf("--%s is required", dataDirFlag.Name)
	}
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		return err
	}
	defer func() {
		logger.Debug("closing evidence database...")
		db.Close()
	}()

	store := evidence.NewStore(db)
	from, to, limit := ctx.Uint64(fromFlag.Name), ctx.Uint64(toFlag.Name), ctx.Int(limitFlag.Name)

	var list []reimint.Evidence
	if ctx.Bool(committedFlag.Name) {
		list, err = store.LoadCommitted(from, to, false, limit)
	} else {
		list, err = store.LoadPending(from, to, false, limit)
	}
	if err != nil {
		return err
	}
	printEvidence(os.Stdout, list)
	return nil
}

func printEvidence(w io.Writer, list []reimint.Evidence) {
	for _, ev := range list {
		vals, err := ev.Validators()
		if err != nil {
			fmt.Fprintf(w, "%d\t%v\tinvalid (%v)\n", ev.Height(), ev.Hash(), err)
			continue
		}
		fmt.Fprintf(w, "%d\t%v\t%v\n", ev.Height(), ev.Hash(), vals)
	}
	fmt.Fprintf(w, "total %d\n", len(list))
}
