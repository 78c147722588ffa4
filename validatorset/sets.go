// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/config"
)

// Sets pairs the indexed and active sets of one state root.
type Sets struct {
	Indexed *IndexedSet
	Active  *ActiveSet
}

// Params bounds the size of the active set.
type Params struct {
	MaxValidators int
	MinValidators int
	BlsOnly       bool
}

// ParamsFromConfig extracts the active set bounds and selection rule.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		MaxValidators: cfg.MaxValidators,
		MinValidators: cfg.MinValidators,
		BlsOnly:       cfg.BlsOnly,
	}
}

// CopyAndMerge derives the sets of the next block from the parent sets and
// the stake changes of the block. The result owns its own copies; the
// receiver stays untouched.
func (s *Sets) CopyAndMerge(changes *Changes, bls BlsView, params Params, genesis *Genesis) (*Sets, error) {
	indexed, err := s.Indexed.Merge(changes, bls, genesis)
	if err != nil {
		return nil, errors.Wrap(err, "merge indexed set")
	}

	var active *ActiveSet
	candidates := indexed.Sort(params.MaxValidators, params.BlsOnly)
	if len(candidates) < params.MinValidators {
		if s.Active.IsGenesis(genesis) {
			active = s.Active
		} else if active, err = GenesisActiveSet(genesis); err != nil {
			return nil, errors.Wrap(err, "genesis active set")
		}
	} else if active, err = s.Active.Merge(candidates); err != nil {
		return nil, errors.Wrap(err, "merge active set")
	}

	if active, err = active.WithIncrementedPriority(1); err != nil {
		return nil, err
	}
	return &Sets{Indexed: indexed, Active: active}, nil
}
