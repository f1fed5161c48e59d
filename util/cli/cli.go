// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	clog "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/33cn/raffle/types"
	"github.com/spf13/cobra"
)

// NewRootCmd the cli with the node commands and every registered dapp plugin
func NewRootCmd(title, rpcAddr string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   title + "-cli",
		Short: title + " client tools",
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Get version of the cli",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(types.Version)
		},
	}
	rootCmd.PersistentFlags().String("rpc_laddr", rpcAddr, "http url")
	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.NodeCmd(),
		commands.TxCmd(),
		versionCmd,
	)
	pluginmgr.AddCmd(rootCmd)
	return rootCmd
}

//Run :
func Run(RPCAddr string) {
	clog.SetLogLevel("error")
	if err := NewRootCmd("raffle", RPCAddr).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
