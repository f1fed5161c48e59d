// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc raffle json-rpc: unsigned tx builders and queries
package rpc

import (
	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/executor"
	rpctypes "github.com/33cn/raffle/rpc/types"
	rty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var rlog = log.New("module", "raffle.rpc")

// Jrpc raffle json-rpc service, registered as "Raffle"
type Jrpc struct {
	exec *executor.Executor
}

// Init register the service on the server
func Init(name string, s rpctypes.RPCServer) {
	if err := s.JRPC().RegisterName("Raffle", &Jrpc{exec: s.GetExecutor()}); err != nil {
		rlog.Error("Init", "execer", name, "err", err)
		panic(err)
	}
}

// Create unsigned create tx
func (r *Jrpc) Create(in *rty.RaffleCreate, result *string) error {
	*result = rpctypes.EncodeTx(rty.CreateRaffleCreateTx(in))
	return nil
}

// DepositPrize unsigned deposit tx
func (r *Jrpc) DepositPrize(in *rty.RaffleDepositPrize, result *string) error {
	*result = rpctypes.EncodeTx(rty.CreateRaffleDepositTx(in.RaffleID))
	return nil
}

// BuyTickets unsigned buy tx
func (r *Jrpc) BuyTickets(in *rty.RaffleBuy, result *string) error {
	if in.Quantity <= 0 {
		return rty.ErrQuantityZero
	}
	*result = rpctypes.EncodeTx(rty.CreateRaffleBuyTx(in.RaffleID, in.Quantity))
	return nil
}

// Finalize unsigned finalize tx, the randomness source must be named
func (r *Jrpc) Finalize(in *rty.RaffleFinalize, result *string) error {
	if in.RandomnessSource != rty.SourcePRNG && in.RandomnessSource != rty.SourceOracle {
		return errors.Wrapf(rty.ErrUnsupportedRandomnessSource, "source %q", in.RandomnessSource)
	}
	*result = rpctypes.EncodeTx(rty.CreateRaffleFinalizeTx(in.RaffleID, in.RandomnessSource))
	return nil
}

// Claim unsigned claim tx
func (r *Jrpc) Claim(in *rty.RaffleClaim, result *string) error {
	*result = rpctypes.EncodeTx(rty.CreateRaffleClaimTx(in.RaffleID))
	return nil
}

// Cancel unsigned cancel tx
func (r *Jrpc) Cancel(in *rty.RaffleCancel, result *string) error {
	*result = rpctypes.EncodeTx(rty.CreateRaffleCancelTx(in.RaffleID))
	return nil
}

func (r *Jrpc) query(funcName string, in interface{}) (interface{}, error) {
	return r.exec.Query(rty.RaffleX, funcName, types.Encode(in))
}

// GetRaffle raffle record
func (r *Jrpc) GetRaffle(in *rty.ReqRaffle, result *rty.Raffle) error {
	reply, err := r.query(rty.FuncNameGetRaffle, in)
	if err != nil {
		return err
	}
	*result = *reply.(*rty.Raffle)
	return nil
}

// GetTickets tickets in index order
func (r *Jrpc) GetTickets(in *rty.ReqRaffle, result *rty.ReplyTickets) error {
	reply, err := r.query(rty.FuncNameGetTickets, in)
	if err != nil {
		return err
	}
	*result = *reply.(*rty.ReplyTickets)
	return nil
}

// GetCustody custody balance against what the record implies
func (r *Jrpc) GetCustody(in *rty.ReqRaffle, result *rty.ReplyCustody) error {
	reply, err := r.query(rty.FuncNameGetCustody, in)
	if err != nil {
		return err
	}
	*result = *reply.(*rty.ReplyCustody)
	return nil
}

// ListByStatus raffles in a status
func (r *Jrpc) ListByStatus(in *rty.ReqRaffleList, result *rty.ReplyRaffleList) error {
	reply, err := r.query(rty.FuncNameListRafflesByStatus, in)
	if err != nil {
		return err
	}
	*result = *reply.(*rty.ReplyRaffleList)
	return nil
}

// ListByCreator raffles of a creator
func (r *Jrpc) ListByCreator(in *rty.ReqRaffleList, result *rty.ReplyRaffleList) error {
	reply, err := r.query(rty.FuncNameListRafflesByCreator, in)
	if err != nil {
		return err
	}
	*result = *reply.(*rty.ReplyRaffleList)
	return nil
}

// ListByBuyer tickets of a buyer
func (r *Jrpc) ListByBuyer(in *rty.ReqRaffleList, result *rty.ReplyTicketList) error {
	reply, err := r.query(rty.FuncNameListTicketsByBuyer, in)
	if err != nil {
		return err
	}
	*result = *reply.(*rty.ReplyTicketList)
	return nil
}
