// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

func (r *Raffle) execLocal(tx *types.Transaction, receipt *types.ReceiptData) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.Ty != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		if !pty.IsRaffleLog(item.Ty) {
			continue
		}
		event, err := pty.DecodeEvent(item)
		if err != nil {
			return nil, err
		}
		set.KV = append(set.KV, r.indexEvent(event)...)
	}
	return set, nil
}

func (r *Raffle) indexEvent(event *pty.ReceiptRaffle) (kvs []*types.KeyValue) {
	id := types.Encode(&pty.ReqRaffle{RaffleID: event.RaffleID})
	switch event.Kind {
	case pty.EventRaffleCreated:
		kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(event.Status, event.RaffleID), Value: id})
		kvs = append(kvs, &types.KeyValue{Key: calcCreatorKey(event.Creator, event.RaffleID), Value: id})
	case pty.EventTicketPurchased:
		for i := int64(0); i < event.Quantity; i++ {
			ticket := &pty.Ticket{
				RaffleID:     event.RaffleID,
				Index:        event.FirstIndex + i,
				Buyer:        event.Buyer,
				PurchaseTime: event.Time,
			}
			kvs = append(kvs, &types.KeyValue{Key: calcBuyerKey(event.Buyer, event.RaffleID, ticket.Index), Value: types.Encode(ticket)})
		}
	}
	if event.PrevStatus != 0 && event.PrevStatus != event.Status {
		kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(event.PrevStatus, event.RaffleID), Value: nil})
		kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(event.Status, event.RaffleID), Value: id})
	}
	return kvs
}

// ExecLocal_Create index the new raffle
func (r *Raffle) ExecLocal_Create(payload *pty.RaffleCreate, tx *types.Transaction, receiptData *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(tx, receiptData)
}

// ExecLocal_DepositPrize move the status index
func (r *Raffle) ExecLocal_DepositPrize(payload *pty.RaffleDepositPrize, tx *types.Transaction, receiptData *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(tx, receiptData)
}

// ExecLocal_Buy index the tickets by buyer
func (r *Raffle) ExecLocal_Buy(payload *pty.RaffleBuy, tx *types.Transaction, receiptData *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(tx, receiptData)
}

// ExecLocal_Finalize move the status index
func (r *Raffle) ExecLocal_Finalize(payload *pty.RaffleFinalize, tx *types.Transaction, receiptData *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(tx, receiptData)
}

// ExecLocal_Claim move the status index
func (r *Raffle) ExecLocal_Claim(payload *pty.RaffleClaim, tx *types.Transaction, receiptData *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(tx, receiptData)
}

// ExecLocal_Cancel move the status index
func (r *Raffle) ExecLocal_Cancel(payload *pty.RaffleCancel, tx *types.Transaction, receiptData *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return r.execLocal(tx, receiptData)
}
