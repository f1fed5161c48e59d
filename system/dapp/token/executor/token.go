// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor the token executor: transfers between addresses and,
// when allowed, minting
package executor

import (
	"reflect"

	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/common/log"
	drivers "github.com/33cn/raffle/system/dapp"
	tty "github.com/33cn/raffle/system/dapp/token/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var tlog = log.New("module", "execs.token")

var executorFunList = make(map[string]reflect.Method)
var executorType = tty.NewType()

func init() {
	executorFunList = types.ListMethod(&Token{})
}

// Init register the token driver
func Init(cfg *types.Config) {
	allowMint := cfg.Token != nil && cfg.Token.AllowMint
	drivers.Register(GetName(), NewDriverCreate(allowMint))
}

// GetName get driver name
func GetName() string {
	return tty.TokenX
}

// Token the token driver
type Token struct {
	drivers.DriverBase
	allowMint bool
}

// NewDriverCreate driver constructor
func NewDriverCreate(allowMint bool) drivers.DriverCreate {
	return func() drivers.Driver {
		t := &Token{allowMint: allowMint}
		t.SetChild(t)
		t.SetExecutorType(executorType)
		return t
	}
}

// GetDriverName driver name
func (t *Token) GetDriverName() string {
	return tty.TokenX
}

// GetFuncMap Exec_/Query_ methods
func (t *Token) GetFuncMap() map[string]reflect.Method {
	return executorFunList
}

// Exec_Transfer transfer from the caller
func (t *Token) Exec_Transfer(payload *tty.TokenTransfer, tx *types.Transaction, index int) (*types.Receipt, error) {
	if err := address.CheckAddress(payload.To); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidAddress, "to %q: %v", payload.To, err)
	}
	if drivers.IsDriverAddress(payload.To) {
		return nil, errors.Wrapf(types.ErrInvalidAddress, "to %s is an executor address", payload.To)
	}
	accdb, err := account.NewTokenDB(payload.Symbol, t.GetStateDB())
	if err != nil {
		return nil, err
	}
	return accdb.Transfer(t.GetFrom(), payload.To, payload.Amount)
}

// Exec_Mint mint to an address
func (t *Token) Exec_Mint(payload *tty.TokenMint, tx *types.Transaction, index int) (*types.Receipt, error) {
	if !t.allowMint {
		return nil, types.ErrMintNotAllowed
	}
	if err := address.CheckAddress(payload.To); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidAddress, "to %q: %v", payload.To, err)
	}
	accdb, err := account.NewTokenDB(payload.Symbol, t.GetStateDB())
	if err != nil {
		return nil, err
	}
	tlog.Info("Mint", "symbol", payload.Symbol, "to", payload.To, "amount", types.FormatAmount(payload.Amount), "by", t.GetFrom())
	return accdb.Mint(payload.To, payload.Amount)
}

// Query_Balance account of addr
func (t *Token) Query_Balance(req *tty.ReqBalance) (*types.Account, error) {
	if err := address.CheckAddress(req.Addr); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidAddress, "addr %q: %v", req.Addr, err)
	}
	accdb, err := account.NewTokenDB(req.Symbol, t.GetStateDB())
	if err != nil {
		return nil, err
	}
	return accdb.LoadAccount(req.Addr), nil
}
