// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load("testdata/raffle.toml")
	require.NoError(t, err)
	assert.Equal(t, "raffle-devnet", cfg.Title)
	assert.Equal(t, "debug", cfg.Log.Loglevel)
	assert.True(t, cfg.Log.CallerFile)
	// not in the file, default kept
	assert.Equal(t, uint32(28), cfg.Log.MaxAge)
	assert.Equal(t, "memdb", cfg.Store.Driver)
	assert.Equal(t, []string{"*"}, cfg.RPC.Whitelist)
	assert.Equal(t, 10.0, cfg.RPC.IPLimit)
	assert.False(t, cfg.RPC.EnableSignCheck)
	assert.True(t, cfg.Metrics.EnableMetrics)
	assert.True(t, cfg.Raffle.ClaimByWinnerOnly)
	assert.False(t, cfg.Raffle.EnforceEndTime)
	assert.Equal(t, "oracle", cfg.Raffle.DefaultRandomness)
	require.Len(t, cfg.Token.Genesis, 1)
	assert.Equal(t, "usdt", cfg.Token.Genesis[0].Symbol)
	assert.Equal(t, int64(1000*1e8), cfg.Token.Genesis[0].Amount)
}

func TestLoadError(t *testing.T) {
	_, err := Load("testdata/missing.toml")
	assert.Error(t, err)
	_, err = LoadString("Title=")
	assert.Error(t, err)
	assert.Panics(t, func() { Init("testdata/missing.toml") })

	cfg, err := LoadString("")
	require.NoError(t, err)
	assert.Equal(t, "leveldb", cfg.Store.Driver)
	assert.True(t, cfg.RPC.EnableSignCheck)
}
