// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"
	"sync"

	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/rpc/types"
	rtypes "github.com/33cn/raffle/types"
	"github.com/spf13/cobra"
)

var (
	mgrlog      = log.New("module", "plugin.manager")
	pluginItems = make(map[string]Plugin)
	once        = &sync.Once{}
)

// InitExec 初始化所有插件的执行器, only the first call has effect
func InitExec(cfg *rtypes.Config) {
	once.Do(func() {
		for _, item := range items() {
			mgrlog.Debug("InitExec", "plugin", item.GetName())
			item.InitExec(cfg)
		}
	})
}

// HasExec whether a plugin provides the executor
func HasExec(name string) bool {
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// Register 注册插件, panics on an empty or duplicated name
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// Names registered plugin names, sorted
func Names() []string {
	var names []string
	for _, item := range items() {
		names = append(names, item.GetName())
	}
	return names
}

// AddCmd 添加插件命令
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range items() {
		item.AddCmd(rootCmd)
	}
}

// AddRPC 注册插件 json-rpc
func AddRPC(s types.RPCServer) {
	for _, item := range items() {
		item.AddRPC(s)
	}
}

// items plugins in name order
func items() []Plugin {
	keys := make([]string, 0, len(pluginItems))
	for k := range pluginItems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]Plugin, 0, len(keys))
	for _, k := range keys {
		list = append(list, pluginItems[k])
	}
	return list
}
