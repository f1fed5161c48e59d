// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/raffle/common"
	dbm "github.com/33cn/raffle/common/db"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

// TicketLedger append only tickets of each raffle
type TicketLedger struct {
	db dbm.KV
}

// NewTicketLedger new
func NewTicketLedger(db dbm.KV) *TicketLedger {
	return &TicketLedger{db: db}
}

func (l *TicketLedger) getInt64(key []byte) (int64, error) {
	value, err := l.db.Get(key)
	if err == types.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return common.BytesToInt64(value), nil
}

// Count tickets of raffleID
func (l *TicketLedger) Count(raffleID int64) (int64, error) {
	return l.getInt64(calcTicketCountKey(raffleID))
}

// Append add one ticket for buyer and return it
func (l *TicketLedger) Append(raffleID int64, buyer string, purchaseTime int64) (*pty.Ticket, []*types.KeyValue, error) {
	index, err := l.Count(raffleID)
	if err != nil {
		return nil, nil, err
	}
	ticket := &pty.Ticket{
		RaffleID:     raffleID,
		Index:        index,
		Buyer:        buyer,
		PurchaseTime: purchaseTime,
	}
	kvs := []*types.KeyValue{
		{Key: calcTicketKey(raffleID, index), Value: types.Encode(ticket)},
		{Key: calcTicketCountKey(raffleID), Value: common.Int64ToBytes(index + 1)},
	}
	for _, kv := range kvs {
		if err := l.db.Set(kv.Key, kv.Value); err != nil {
			return nil, nil, err
		}
	}
	return ticket, kvs, nil
}

// Get ticket index of raffleID
func (l *TicketLedger) Get(raffleID, index int64) (*pty.Ticket, error) {
	value, err := l.db.Get(calcTicketKey(raffleID, index))
	if err != nil {
		return nil, err
	}
	var ticket pty.Ticket
	if err := types.Decode(value, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List all tickets of raffleID by index
func (l *TicketLedger) List(raffleID int64) ([]*pty.Ticket, error) {
	count, err := l.Count(raffleID)
	if err != nil {
		return nil, err
	}
	tickets := make([]*pty.Ticket, 0, count)
	for i := int64(0); i < count; i++ {
		ticket, err := l.Get(raffleID, i)
		if err != nil {
			rlog.Error("TicketLedger.List", "raffleID", raffleID, "index", i, "err", err)
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}
