// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token token dapp 插件
package token

import (
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/system/dapp/token/commands"
	"github.com/33cn/raffle/system/dapp/token/executor"
	"github.com/33cn/raffle/system/dapp/token/rpc"
	"github.com/33cn/raffle/system/dapp/token/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     "system.token",
		ExecName: types.TokenX,
		Exec:     executor.Init,
		Cmd:      commands.TokenCmd,
		RPC:      rpc.Init,
	})
}
