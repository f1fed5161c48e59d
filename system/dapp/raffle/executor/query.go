// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// Query_GetRaffle one raffle
func (r *Raffle) Query_GetRaffle(req *pty.ReqRaffle) (*pty.Raffle, error) {
	return NewRegistry(r.GetStateDB()).Get(req.RaffleID)
}

// Query_GetTickets tickets of one raffle by index
func (r *Raffle) Query_GetTickets(req *pty.ReqRaffle) (*pty.ReplyTickets, error) {
	if _, err := NewRegistry(r.GetStateDB()).Get(req.RaffleID); err != nil {
		return nil, err
	}
	tickets, err := NewTicketLedger(r.GetStateDB()).List(req.RaffleID)
	if err != nil {
		return nil, err
	}
	return &pty.ReplyTickets{Tickets: tickets}, nil
}

// Query_GetCustody custody balance against the expected custody of one raffle
func (r *Raffle) Query_GetCustody(req *pty.ReqRaffle) (*pty.ReplyCustody, error) {
	raffle, err := NewRegistry(r.GetStateDB()).Get(req.RaffleID)
	if err != nil {
		return nil, err
	}
	escrow := NewEscrow(r.GetStateDB(), raffle.ID)
	balance, err := escrow.Balance(raffle.PaymentToken)
	if err != nil {
		return nil, err
	}
	return &pty.ReplyCustody{
		RaffleID: raffle.ID,
		Addr:     escrow.Custody(),
		Token:    raffle.PaymentToken,
		Balance:  balance,
		Expected: ExpectedCustody(raffle),
	}, nil
}

// ExpectedCustody outstanding prize plus ticket prices not refunded
func ExpectedCustody(raffle *pty.Raffle) int64 {
	if raffle.Status == pty.RaffleCancelled {
		return 0
	}
	custody := raffle.TicketsSold * raffle.TicketPrice
	if raffle.PrizeDeposited() {
		custody += raffle.PrizeAmount
	}
	return custody
}

func (r *Raffle) listIDs(prefix []byte, req *pty.ReqRaffleList) ([]int64, error) {
	values, err := r.GetLocalDB().List(prefix, []byte(req.PrimaryKey), req.Count, req.Direction)
	if err == types.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(values))
	for _, value := range values {
		var id pty.ReqRaffle
		if err := types.Decode(value, &id); err != nil {
			return nil, err
		}
		ids = append(ids, id.RaffleID)
	}
	return ids, nil
}

func (r *Raffle) loadRaffles(ids []int64) ([]*pty.Raffle, error) {
	registry := NewRegistry(r.GetStateDB())
	raffles := make([]*pty.Raffle, 0, len(ids))
	for _, id := range ids {
		raffle, err := registry.Get(id)
		if err != nil {
			rlog.Error("loadRaffles", "raffleID", id, "err", err)
			return nil, err
		}
		raffles = append(raffles, raffle)
	}
	return raffles, nil
}

// Query_ListRafflesByStatus raffles currently in req.Status
func (r *Raffle) Query_ListRafflesByStatus(req *pty.ReqRaffleList) (*pty.ReplyRaffleList, error) {
	if pty.StatusName(req.Status) == "unknown" {
		return nil, errors.Wrapf(types.ErrInvalidParam, "status %d", req.Status)
	}
	ids, err := r.listIDs(calcStatusPrefix(req.Status), req)
	if err != nil {
		return nil, err
	}
	raffles, err := r.loadRaffles(ids)
	if err != nil {
		return nil, err
	}
	reply := &pty.ReplyRaffleList{Raffles: raffles}
	if len(ids) > 0 {
		reply.PrimaryKey = string(calcStatusKey(req.Status, ids[len(ids)-1]))
	}
	return reply, nil
}

// Query_ListRafflesByCreator raffles created by req.Addr
func (r *Raffle) Query_ListRafflesByCreator(req *pty.ReqRaffleList) (*pty.ReplyRaffleList, error) {
	if req.Addr == "" {
		return nil, errors.Wrap(types.ErrInvalidParam, "addr is empty")
	}
	ids, err := r.listIDs(calcCreatorPrefix(req.Addr), req)
	if err != nil {
		return nil, err
	}
	raffles, err := r.loadRaffles(ids)
	if err != nil {
		return nil, err
	}
	reply := &pty.ReplyRaffleList{Raffles: raffles}
	if len(ids) > 0 {
		reply.PrimaryKey = string(calcCreatorKey(req.Addr, ids[len(ids)-1]))
	}
	return reply, nil
}

// Query_ListTicketsByBuyer tickets bought by req.Addr across raffles
func (r *Raffle) Query_ListTicketsByBuyer(req *pty.ReqRaffleList) (*pty.ReplyTicketList, error) {
	if req.Addr == "" {
		return nil, errors.Wrap(types.ErrInvalidParam, "addr is empty")
	}
	values, err := r.GetLocalDB().List(calcBuyerPrefix(req.Addr), []byte(req.PrimaryKey), req.Count, req.Direction)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	reply := &pty.ReplyTicketList{}
	for _, value := range values {
		var ticket pty.Ticket
		if err := types.Decode(value, &ticket); err != nil {
			return nil, err
		}
		reply.Tickets = append(reply.Tickets, &ticket)
	}
	if n := len(reply.Tickets); n > 0 {
		last := reply.Tickets[n-1]
		reply.PrimaryKey = string(calcBuyerKey(req.Addr, last.RaffleID, last.Index))
	}
	return reply, nil
}
