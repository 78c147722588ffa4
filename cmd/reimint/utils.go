// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rei-network/reimint/config"
	"github.com/rei-network/reimint/log"
)

func initLogger(ctx *cli.Context) {
	level := slog.Level(ctx.Int(verbosityFlag.Name))
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewTerminalLogger(os.Stderr, level, useColor))
}

func loadConfig(ctx *cli.Context) (config.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return config.Config{}, errors.Errorf("--%s is required", configFlag.Name)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded", "path", path, "chainId", cfg.ChainID, "genesis", len(cfg.GenesisValidators))
	return cfg, nil
}
