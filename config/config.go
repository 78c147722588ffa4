// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config holds the consensus parameters of a chain. A Config is loaded
// once and passed explicitly to whatever needs it.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rei-network/reimint/rei"
)

// Config is the consensus related chain configuration.
type Config struct {
	ChainID           uint64        `yaml:"chainId"`
	GenesisValidators []rei.Address `yaml:"genesisValidators"`
	MaxValidators     int           `yaml:"maxValidators"`    // size bound of the active validator set
	MinValidators     int           `yaml:"minValidators"`    // below this the genesis set takes over
	BlsOnly           bool          `yaml:"blsOnly"`          // candidates without a BLS key are not selected
	MaxEvidenceCount  int           `yaml:"maxEvidenceCount"` // evidence allowed in one block
	Evidence          Evidence      `yaml:"evidence"`
}

// Evidence configures the evidence pool.
type Evidence struct {
	MaxAgeNumBlocks uint64 `yaml:"maxAgeNumBlocks"`
	MaxCacheSize    int    `yaml:"maxCacheSize"`
}

// Default returns the default config, without genesis validators.
func Default() Config {
	return Config{
		ChainID:          47805,
		MaxValidators:    21,
		MinValidators:    5,
		MaxEvidenceCount: 100,
		Evidence: Evidence{
			MaxAgeNumBlocks: 10000,
			MaxCacheSize:    100,
		},
	}
}

// Load reads a yaml config file. Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes and validates a yaml config.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for inconsistent values.
func (c *Config) Validate() error {
	if len(c.GenesisValidators) == 0 {
		return errors.New("no genesis validators")
	}
	seen := make(map[rei.Address]struct{}, len(c.GenesisValidators))
	for _, addr := range c.GenesisValidators {
		if _, ok := seen[addr]; ok {
			return errors.Errorf("duplicated genesis validator %v", addr)
		}
		seen[addr] = struct{}{}
	}
	if c.MaxValidators <= 0 {
		return errors.New("maxValidators must be positive")
	}
	if c.MinValidators < 0 || c.MinValidators > c.MaxValidators {
		return errors.Errorf("minValidators out of range [0, %d]", c.MaxValidators)
	}
	if c.MaxEvidenceCount < 0 {
		return errors.New("maxEvidenceCount must not be negative")
	}
	if c.Evidence.MaxCacheSize <= 0 {
		return errors.New("evidence.maxCacheSize must be positive")
	}
	return nil
}
