// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands token cli commands
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/raffle/rpc/jsonclient"
	"github.com/33cn/raffle/system/dapp/commands"
	tty "github.com/33cn/raffle/system/dapp/token/types"
	"github.com/33cn/raffle/types"
	"github.com/spf13/cobra"
)

// TokenCmd token command
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token transfer, mint and balance",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		TransferCmd(),
		MintCmd(),
		BalanceCmd(),
	)
	return cmd
}

func addAmountFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("symbol", "s", "", "token symbol")
	cmd.MarkFlagRequired("symbol")
	cmd.Flags().StringP("to", "t", "", "receiver address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("amount", "a", "", "amount in coins")
	cmd.MarkFlagRequired("amount")
	commands.AddSignFlags(cmd)
}

// TransferCmd transfer tokens
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer tokens",
		Run: func(cmd *cobra.Command, args []string) {
			symbol, _ := cmd.Flags().GetString("symbol")
			to, _ := cmd.Flags().GetString("to")
			amount, _ := cmd.Flags().GetString("amount")
			amountInt, err := types.ParseAmount(amount)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			commands.CreateAndSend(cmd, "Token.Transfer", &tty.TokenTransfer{Symbol: symbol, To: to, Amount: amountInt})
		},
	}
	addAmountFlags(cmd)
	return cmd
}

// MintCmd mint tokens, devnets only
func MintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint tokens, accepted only by nodes with allowMint",
		Run: func(cmd *cobra.Command, args []string) {
			symbol, _ := cmd.Flags().GetString("symbol")
			to, _ := cmd.Flags().GetString("to")
			amount, _ := cmd.Flags().GetString("amount")
			amountInt, err := types.ParseAmount(amount)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			commands.CreateAndSend(cmd, "Token.Mint", &tty.TokenMint{Symbol: symbol, To: to, Amount: amountInt})
		},
	}
	addAmountFlags(cmd)
	return cmd
}

type balanceResult struct {
	Addr    string `json:"addr"`
	Symbol  string `json:"symbol"`
	Balance string `json:"balance"`
}

// BalanceCmd show a balance
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the token balance of an address",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			symbol, _ := cmd.Flags().GetString("symbol")
			addr, _ := cmd.Flags().GetString("addr")
			var res types.Account
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Token.Balance", &tty.ReqBalance{Symbol: symbol, Addr: addr}, &res)
			ctx.SetResultCb(func(res interface{}) (interface{}, error) {
				acc := res.(*types.Account)
				return &balanceResult{Addr: acc.Addr, Symbol: symbol, Balance: types.FormatAmount(acc.Balance)}, nil
			})
			ctx.Run()
		},
	}
	cmd.Flags().StringP("symbol", "s", "", "token symbol")
	cmd.MarkFlagRequired("symbol")
	cmd.Flags().StringP("addr", "a", "", "address")
	cmd.MarkFlagRequired("addr")
	return cmd
}
