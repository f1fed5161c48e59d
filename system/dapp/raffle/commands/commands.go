// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands raffle cli commands
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/raffle/rpc/jsonclient"
	"github.com/33cn/raffle/system/dapp/commands"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/spf13/cobra"
)

// RaffleCmd raffle command
func RaffleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raffle",
		Short: "Raffle management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreateCmd(),
		DepositCmd(),
		BuyCmd(),
		FinalizeCmd(),
		ClaimCmd(),
		CancelCmd(),
		GetCmd(),
		TicketsCmd(),
		CustodyCmd(),
		ListCmd(),
	)
	return cmd
}

// CreateCmd create a raffle
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a raffle",
		Run:   createRaffle,
	}
	addCreateFlags(cmd)
	return cmd
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("desc", "m", "", "description")
	cmd.Flags().Int64P("end", "e", 0, "end time, unix seconds")
	cmd.MarkFlagRequired("end")
	cmd.Flags().Int64P("max", "n", 0, "max tickets")
	cmd.MarkFlagRequired("max")
	cmd.Flags().BoolP("multiple", "u", false, "allow buying several tickets in one purchase")
	cmd.Flags().StringP("price", "p", "", "ticket price in coins")
	cmd.MarkFlagRequired("price")
	cmd.Flags().StringP("token", "t", "", "payment token symbol")
	cmd.MarkFlagRequired("token")
	cmd.Flags().StringP("prize", "z", "", "prize amount in coins")
	cmd.MarkFlagRequired("prize")
	commands.AddSignFlags(cmd)
}

func createRaffle(cmd *cobra.Command, args []string) {
	desc, _ := cmd.Flags().GetString("desc")
	end, _ := cmd.Flags().GetInt64("end")
	maxTickets, _ := cmd.Flags().GetInt64("max")
	multiple, _ := cmd.Flags().GetBool("multiple")
	price, _ := cmd.Flags().GetString("price")
	token, _ := cmd.Flags().GetString("token")
	prize, _ := cmd.Flags().GetString("prize")

	priceInt, err := types.ParseAmount(price)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	prizeInt, err := types.ParseAmount(prize)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	params := &pty.RaffleCreate{
		Description:   desc,
		EndTime:       end,
		MaxTickets:    maxTickets,
		AllowMultiple: multiple,
		TicketPrice:   priceInt,
		PaymentToken:  token,
		PrizeAmount:   prizeInt,
	}
	commands.CreateAndSend(cmd, "Raffle.Create", params)
}

func addIDFlag(cmd *cobra.Command) {
	cmd.Flags().Int64P("id", "i", 0, "raffle id")
	cmd.MarkFlagRequired("id")
}

// DepositCmd deposit the prize
func DepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit the prize of a raffle, creator only",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt64("id")
			commands.CreateAndSend(cmd, "Raffle.DepositPrize", &pty.RaffleDepositPrize{RaffleID: id})
		},
	}
	addIDFlag(cmd)
	commands.AddSignFlags(cmd)
	return cmd
}

// BuyCmd buy tickets
func BuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy tickets",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt64("id")
			quantity, _ := cmd.Flags().GetInt64("quantity")
			commands.CreateAndSend(cmd, "Raffle.BuyTickets", &pty.RaffleBuy{RaffleID: id, Quantity: quantity})
		},
	}
	addIDFlag(cmd)
	cmd.Flags().Int64P("quantity", "q", 1, "number of tickets")
	commands.AddSignFlags(cmd)
	return cmd
}

// FinalizeCmd draw the winner
func FinalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Draw the winner",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt64("id")
			source, _ := cmd.Flags().GetString("source")
			commands.CreateAndSend(cmd, "Raffle.Finalize", &pty.RaffleFinalize{RaffleID: id, RandomnessSource: source})
		},
	}
	addIDFlag(cmd)
	cmd.Flags().StringP("source", "s", pty.SourcePRNG, "randomness source, prng or oracle")
	commands.AddSignFlags(cmd)
	return cmd
}

// ClaimCmd pay the prize to the winner
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Pay the prize to the winner",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt64("id")
			commands.CreateAndSend(cmd, "Raffle.Claim", &pty.RaffleClaim{RaffleID: id})
		},
	}
	addIDFlag(cmd)
	commands.AddSignFlags(cmd)
	return cmd
}

// CancelCmd cancel and refund
func CancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a raffle and refund buyers and creator, creator only",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt64("id")
			commands.CreateAndSend(cmd, "Raffle.Cancel", &pty.RaffleCancel{RaffleID: id})
		},
	}
	addIDFlag(cmd)
	commands.AddSignFlags(cmd)
	return cmd
}

// raffleResult raffle with coin amounts and status name
type raffleResult struct {
	*pty.Raffle
	StatusName  string `json:"statusName"`
	TicketPrice string `json:"ticketPrice"`
	PrizeAmount string `json:"prizeAmount"`
}

func toRaffleResult(r *pty.Raffle) *raffleResult {
	return &raffleResult{
		Raffle:      r,
		StatusName:  pty.StatusName(r.Status),
		TicketPrice: types.FormatAmount(r.TicketPrice),
		PrizeAmount: types.FormatAmount(r.PrizeAmount),
	}
}

// GetCmd show a raffle
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a raffle",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			id, _ := cmd.Flags().GetInt64("id")
			var res pty.Raffle
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Raffle.GetRaffle", &pty.ReqRaffle{RaffleID: id}, &res)
			ctx.SetResultCb(func(res interface{}) (interface{}, error) {
				return toRaffleResult(res.(*pty.Raffle)), nil
			})
			ctx.Run()
		},
	}
	addIDFlag(cmd)
	return cmd
}

// TicketsCmd list the tickets of a raffle
func TicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List the tickets of a raffle",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			id, _ := cmd.Flags().GetInt64("id")
			var res pty.ReplyTickets
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Raffle.GetTickets", &pty.ReqRaffle{RaffleID: id}, &res)
			ctx.Run()
		},
	}
	addIDFlag(cmd)
	return cmd
}

// CustodyCmd show the custody balance of a raffle
func CustodyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custody",
		Short: "Show the custody balance of a raffle",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			id, _ := cmd.Flags().GetInt64("id")
			var res pty.ReplyCustody
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Raffle.GetCustody", &pty.ReqRaffle{RaffleID: id}, &res)
			ctx.Run()
		},
	}
	addIDFlag(cmd)
	return cmd
}

// ListCmd list raffles by status or creator, tickets by buyer
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List raffles by status or creator, or tickets by buyer",
		Run:   listRaffles,
	}
	cmd.Flags().StringP("status", "s", "", "created, active, finalized, claimed or cancelled")
	cmd.Flags().StringP("creator", "a", "", "creator address")
	cmd.Flags().StringP("buyer", "b", "", "buyer address, lists tickets")
	cmd.Flags().Int32P("count", "n", 20, "page size")
	cmd.Flags().Int32P("direction", "d", 0, "0 descending, 1 ascending")
	cmd.Flags().StringP("primary", "p", "", "primary key of the previous page")
	return cmd
}

func listRaffles(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	status, _ := cmd.Flags().GetString("status")
	creator, _ := cmd.Flags().GetString("creator")
	buyer, _ := cmd.Flags().GetString("buyer")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	primary, _ := cmd.Flags().GetString("primary")

	req := &pty.ReqRaffleList{Count: count, Direction: direction, PrimaryKey: primary}
	switch {
	case buyer != "":
		req.Addr = buyer
		var res pty.ReplyTicketList
		jsonclient.NewRPCCtx(rpcLaddr, "Raffle.ListByBuyer", req, &res).Run()
		return
	case creator != "":
		req.Addr = creator
		var res pty.ReplyRaffleList
		jsonclient.NewRPCCtx(rpcLaddr, "Raffle.ListByCreator", req, &res).Run()
		return
	case status != "":
		req.Status = pty.StatusFromName(status)
		if req.Status == 0 {
			fmt.Fprintln(os.Stderr, "unknown status", status)
			return
		}
		var res pty.ReplyRaffleList
		jsonclient.NewRPCCtx(rpcLaddr, "Raffle.ListByStatus", req, &res).Run()
		return
	}
	fmt.Fprintln(os.Stderr, "one of status, creator or buyer is required")
}
