// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raffle raffle dapp 插件
package raffle

import (
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/system/dapp/raffle/commands"
	"github.com/33cn/raffle/system/dapp/raffle/executor"
	"github.com/33cn/raffle/system/dapp/raffle/rpc"
	"github.com/33cn/raffle/system/dapp/raffle/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     "system.raffle",
		ExecName: types.RaffleX,
		Exec:     executor.Init,
		Cmd:      commands.RaffleCmd,
		RPC:      rpc.Init,
	})
}
