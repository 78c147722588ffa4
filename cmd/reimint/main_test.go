// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/validatorset"
)

func TestPrintSchedule(t *testing.T) {
	var addrs []rei.Address
	for i := byte(1); i <= 4; i++ {
		var a rei.Address
		a[len(a)-1] = i
		addrs = append(addrs, a)
	}
	set, err := validatorset.GenesisActiveSet(validatorset.NewGenesis(addrs))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printSchedule(&buf, set, 8))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "round 0\t"))
	assert.Contains(t, lines[0], set.Proposer().String())

	rotated, err := set.WithIncrementedPriority(5)
	require.NoError(t, err)
	assert.Equal(t, "round 5\t"+rotated.Proposer().String(), lines[5])

	assert.Error(t, printSchedule(&buf, set, 0))
}

func TestPrintEvidenceEmpty(t *testing.T) {
	var buf bytes.Buffer
	printEvidence(&buf, nil)
	assert.Equal(t, "total 0\n", buf.String())
}
