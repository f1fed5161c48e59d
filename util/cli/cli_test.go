// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"path/filepath"
	"testing"

	_ "github.com/33cn/raffle/system"
	"github.com/33cn/raffle/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	root := NewRootCmd("raffle", "http://localhost:8801")
	for _, name := range []string{"account", "node", "tx", "raffle", "token", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	cmd, _, err := root.Find([]string{"raffle", "buy"})
	require.NoError(t, err)
	assert.NotNil(t, cmd.Flags().Lookup("quantity"))
	assert.NotNil(t, cmd.Flags().Lookup("key"))
	rpcLaddr, err := root.PersistentFlags().GetString("rpc_laddr")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8801", rpcLaddr)
}

func TestResetDatadir(t *testing.T) {
	cfg := types.DefaultConfig()
	dir := t.TempDir()
	resetDatadir(cfg, dir)
	assert.Equal(t, filepath.Join(dir, "datadir"), cfg.Store.DbPath)
	assert.Equal(t, filepath.Join(dir, "logs/raffle.log"), cfg.Log.LogFile)
}

func TestNewNode(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Store.Driver = "memdb"
	cfg.RPC.JrpcBindAddr = "localhost:0"
	node, err := newNode(cfg)
	require.NoError(t, err)
	defer node.Close()
	assert.Equal(t, int64(0), node.exec.Height())
}
