// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr dapp 插件注册: 执行器, 命令行, json-rpc
package pluginmgr

import (
	"github.com/33cn/raffle/rpc/types"
	rtypes "github.com/33cn/raffle/types"
	"github.com/spf13/cobra"
)

// Plugin a dapp: its executor, its cli commands and its json-rpc service
type Plugin interface {
	// 获取整个插件的包名，用以计算唯一值、做前缀等
	GetName() string
	// 获取插件中执行器名
	GetExecutorName() string
	// 初始化执行器时会调用该接口
	InitExec(cfg *rtypes.Config)
	AddCmd(rootCmd *cobra.Command)
	AddRPC(s types.RPCServer)
}
