// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// CustodyAddress the address holding the funds of one raffle
func CustodyAddress(raffleID int64) string {
	return address.ExecAddress(fmt.Sprintf("raffle.escrow.%d", raffleID))
}

// Escrow moves funds between users and the custody of one raffle.
// Balances live in the token ledger only.
type Escrow struct {
	db      dbm.KV
	custody string
}

// NewEscrow escrow of raffleID
func NewEscrow(db dbm.KV, raffleID int64) *Escrow {
	return &Escrow{db: db, custody: CustodyAddress(raffleID)}
}

// Custody custody address
func (e *Escrow) Custody() string {
	return e.custody
}

// Pull amount of token from addr into custody
func (e *Escrow) Pull(from string, amount int64, token string) (*types.Receipt, error) {
	receipt, err := e.transfer(from, e.custody, amount, token)
	if err != nil {
		return nil, errors.Wrapf(types.ErrTransferFailed, "pull %s %s from %s: %v", types.FormatAmount(amount), token, from, err)
	}
	return receipt, nil
}

// Push amount of token from custody to addr
func (e *Escrow) Push(to string, amount int64, token string) (*types.Receipt, error) {
	receipt, err := e.transfer(e.custody, to, amount, token)
	if err != nil {
		return nil, errors.Wrapf(types.ErrTransferFailed, "push %s %s to %s: %v", types.FormatAmount(amount), token, to, err)
	}
	return receipt, nil
}

func (e *Escrow) transfer(from, to string, amount int64, token string) (*types.Receipt, error) {
	accdb, err := account.NewTokenDB(token, e.db)
	if err != nil {
		return nil, err
	}
	receipt, err := accdb.Transfer(from, to, amount)
	if err != nil {
		rlog.Error("Escrow.transfer", "token", token, "from", from, "to", to, "amount", amount, "err", err)
		return nil, err
	}
	return receipt, nil
}

// Balance custody balance of token
func (e *Escrow) Balance(token string) (int64, error) {
	accdb, err := account.NewTokenDB(token, e.db)
	if err != nil {
		return 0, err
	}
	return accdb.Balance(e.custody), nil
}
