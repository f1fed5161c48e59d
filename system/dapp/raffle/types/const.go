// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//RaffleX name of the raffle executor
const RaffleX = "raffle"

// action ty
const (
	RaffleActionCreate = 1 + iota
	RaffleActionDepositPrize
	RaffleActionBuy
	RaffleActionFinalize
	RaffleActionClaim
	RaffleActionCancel
)

// log ty
const (
	TyLogRaffleCreate = 801 + iota
	TyLogRaffleDeposit
	TyLogRaffleBuy
	TyLogRaffleFinalize
	TyLogRaffleClaim
	TyLogRaffleCancel
)

// raffle status
const (
	RaffleCreated = 1 + iota
	RaffleActive
	RaffleFinalized
	RaffleClaimed
	RaffleCancelled
)

// randomness sources accepted by finalize
const (
	SourcePRNG   = "prng"
	SourceOracle = "oracle"
)

// query func names
const (
	FuncNameGetRaffle            = "GetRaffle"
	FuncNameGetTickets           = "GetTickets"
	FuncNameListRafflesByStatus  = "ListRafflesByStatus"
	FuncNameListRafflesByCreator = "ListRafflesByCreator"
	FuncNameListTicketsByBuyer   = "ListTicketsByBuyer"
	FuncNameGetCustody           = "GetCustody"
)

// event kinds carried by ReceiptRaffle
const (
	EventRaffleCreated   = "RaffleCreated"
	EventPrizeDeposited  = "PrizeDeposited"
	EventTicketPurchased = "TicketPurchased"
	EventRaffleFinalized = "RaffleFinalized"
	EventPrizeClaimed    = "PrizeClaimed"
	EventRaffleCancelled = "RaffleCancelled"
)

var statusNames = map[int32]string{
	RaffleCreated:   "created",
	RaffleActive:    "active",
	RaffleFinalized: "finalized",
	RaffleClaimed:   "claimed",
	RaffleCancelled: "cancelled",
}

//StatusName readable status
func StatusName(status int32) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "unknown"
}

//StatusFromName parse a readable status, 0 if unknown
func StatusFromName(name string) int32 {
	for status, n := range statusNames {
		if n == name {
			return status
		}
	}
	return 0
}

//AllStatus every status, in lifecycle order
func AllStatus() []int32 {
	return []int32{RaffleCreated, RaffleActive, RaffleFinalized, RaffleClaimed, RaffleCancelled}
}
