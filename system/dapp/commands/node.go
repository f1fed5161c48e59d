// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"

	"github.com/33cn/raffle/rpc/jsonclient"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/spf13/cobra"
)

// NodeCmd node command
func NodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Node height and generic queries",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		HeightCmd(),
		QueryCmd(),
	)
	return cmd
}

// HeightCmd committed tx count
func HeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "height",
		Short: "Number of committed transactions",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res rpctypes.ReplyHeight
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.GetHeight", &rpctypes.ReqNil{}, &res)
			ctx.Run()
		},
	}
	return cmd
}

// QueryCmd query any executor with a json payload
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query an executor",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			execer, _ := cmd.Flags().GetString("exec")
			funcName, _ := cmd.Flags().GetString("funcName")
			payload, _ := cmd.Flags().GetString("payload")
			params := &rpctypes.Query4Jrpc{
				Execer:   execer,
				FuncName: funcName,
				Payload:  json.RawMessage(payload),
			}
			var res json.RawMessage
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.Query", params, &res)
			ctx.Run()
		},
	}
	cmd.Flags().StringP("exec", "e", "", "executor name")
	cmd.MarkFlagRequired("exec")
	cmd.Flags().StringP("funcName", "f", "", "query func name")
	cmd.MarkFlagRequired("funcName")
	cmd.Flags().StringP("payload", "p", "{}", "json payload")
	return cmd
}
