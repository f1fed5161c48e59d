// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//Raffle raffle record, stored in the state db
type Raffle struct {
	ID            int64  `json:"id"`
	Creator       string `json:"creator"`
	Description   string `json:"description"`
	EndTime       int64  `json:"endTime"`
	MaxTickets    int64  `json:"maxTickets"`
	AllowMultiple bool   `json:"allowMultiple"`
	TicketPrice   int64  `json:"ticketPrice"`
	PaymentToken  string `json:"paymentToken"`
	PrizeAmount   int64  `json:"prizeAmount"`
	TicketsSold   int64  `json:"ticketsSold"`
	Status        int32  `json:"status"`
	Winner        string `json:"winner,omitempty"`
	// derived, set by the transition that owns them
	WinningIndex     int64  `json:"winningIndex"`
	RandomnessSource string `json:"randomnessSource,omitempty"`
	CreateTime       int64  `json:"createTime"`
	DepositTime      int64  `json:"depositTime,omitempty"`
	FinalizeTime     int64  `json:"finalizeTime,omitempty"`
	ClaimTime        int64  `json:"claimTime,omitempty"`
	CancelTime       int64  `json:"cancelTime,omitempty"`
}

//PrizeDeposited whether custody holds the prize
func (r *Raffle) PrizeDeposited() bool {
	return r.Status == RaffleActive || r.Status == RaffleFinalized
}

//Ticket one ticket, identity (RaffleID, Index)
type Ticket struct {
	RaffleID     int64  `json:"raffleId"`
	Index        int64  `json:"index"`
	Buyer        string `json:"buyer"`
	PurchaseTime int64  `json:"purchaseTime"`
}

//RaffleAction payload of a raffle tx
type RaffleAction struct {
	Ty           int32
	Create       *RaffleCreate
	DepositPrize *RaffleDepositPrize
	Buy          *RaffleBuy
	Finalize     *RaffleFinalize
	Claim        *RaffleClaim
	Cancel       *RaffleCancel
}

//RaffleCreate create a raffle, the caller becomes the creator
type RaffleCreate struct {
	Description   string `json:"description"`
	EndTime       int64  `json:"endTime"`
	MaxTickets    int64  `json:"maxTickets"`
	AllowMultiple bool   `json:"allowMultiple"`
	TicketPrice   int64  `json:"ticketPrice"`
	PaymentToken  string `json:"paymentToken"`
	PrizeAmount   int64  `json:"prizeAmount"`
}

//RaffleDepositPrize fund the prize
type RaffleDepositPrize struct {
	RaffleID int64 `json:"raffleId"`
}

//RaffleBuy buy quantity tickets
type RaffleBuy struct {
	RaffleID int64 `json:"raffleId"`
	Quantity int64 `json:"quantity"`
}

//RaffleFinalize draw the winner
type RaffleFinalize struct {
	RaffleID         int64  `json:"raffleId"`
	RandomnessSource string `json:"randomnessSource"`
}

//RaffleClaim pay the prize to the winner
type RaffleClaim struct {
	RaffleID int64 `json:"raffleId"`
}

//RaffleCancel cancel and refund
type RaffleCancel struct {
	RaffleID int64 `json:"raffleId"`
}

//ReceiptRaffle the audit event of one transition. Fields not relevant to
//Kind are left zero.
type ReceiptRaffle struct {
	Kind       string `json:"kind"`
	RaffleID   int64  `json:"raffleId"`
	Status     int32  `json:"status"`
	PrevStatus int32  `json:"prevStatus"`
	Time       int64  `json:"time"`
	// RaffleCreated
	Creator       string `json:"creator,omitempty"`
	Description   string `json:"description,omitempty"`
	EndTime       int64  `json:"endTime,omitempty"`
	MaxTickets    int64  `json:"maxTickets,omitempty"`
	AllowMultiple bool   `json:"allowMultiple,omitempty"`
	TicketPrice   int64  `json:"ticketPrice,omitempty"`
	PaymentToken  string `json:"paymentToken,omitempty"`
	PrizeAmount   int64  `json:"prizeAmount,omitempty"`
	// TicketPurchased
	Buyer       string `json:"buyer,omitempty"`
	FirstIndex  int64  `json:"firstIndex,omitempty"`
	Quantity    int64  `json:"quantity,omitempty"`
	TotalPaid   int64  `json:"totalPaid,omitempty"`
	TicketsSold int64  `json:"ticketsSold,omitempty"`
	// RaffleFinalized
	Winner           string `json:"winner,omitempty"`
	WinningIndex     int64  `json:"winningIndex,omitempty"`
	RandomnessSource string `json:"randomnessSource,omitempty"`
	// PrizeDeposited, PrizeClaimed
	Amount int64 `json:"amount,omitempty"`
}

//ReqRaffle query one raffle
type ReqRaffle struct {
	RaffleID int64 `json:"raffleId"`
}

//ReplyTickets tickets of one raffle, by index
type ReplyTickets struct {
	Tickets []*Ticket `json:"tickets"`
}

//ReqRaffleList page through an index. PrimaryKey is the last key of the
//previous page, empty for the first page.
type ReqRaffleList struct {
	Status     int32  `json:"status,omitempty"`
	Addr       string `json:"addr,omitempty"`
	Count      int32  `json:"count"`
	Direction  int32  `json:"direction"`
	PrimaryKey string `json:"primaryKey,omitempty"`
}

//ReplyRaffleList raffles of one page
type ReplyRaffleList struct {
	Raffles    []*Raffle `json:"raffles"`
	PrimaryKey string    `json:"primaryKey,omitempty"`
}

//ReplyTicketList tickets of one page
type ReplyTicketList struct {
	Tickets    []*Ticket `json:"tickets"`
	PrimaryKey string    `json:"primaryKey,omitempty"`
}

//ReplyCustody custody address and balance of one raffle
type ReplyCustody struct {
	RaffleID int64  `json:"raffleId"`
	Addr     string `json:"addr"`
	Token    string `json:"token"`
	Balance  int64  `json:"balance"`
	Expected int64  `json:"expected"`
}
