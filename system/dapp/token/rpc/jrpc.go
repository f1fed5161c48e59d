// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc token json-rpc
package rpc

import (
	"github.com/33cn/raffle/executor"
	rpctypes "github.com/33cn/raffle/rpc/types"
	tty "github.com/33cn/raffle/system/dapp/token/types"
	"github.com/33cn/raffle/types"
)

// Jrpc token json-rpc service, registered as "Token"
type Jrpc struct {
	exec *executor.Executor
}

// Init register the service on the server
func Init(name string, s rpctypes.RPCServer) {
	if err := s.JRPC().RegisterName("Token", &Jrpc{exec: s.GetExecutor()}); err != nil {
		panic(err)
	}
}

// Transfer unsigned transfer tx
func (t *Jrpc) Transfer(in *tty.TokenTransfer, result *string) error {
	if !types.CheckAmount(in.Amount) {
		return types.ErrAmount
	}
	*result = rpctypes.EncodeTx(tty.CreateTransferTx(in.Symbol, in.To, in.Amount))
	return nil
}

// Mint unsigned mint tx, executed only when the node allows minting
func (t *Jrpc) Mint(in *tty.TokenMint, result *string) error {
	if !types.CheckAmount(in.Amount) {
		return types.ErrAmount
	}
	*result = rpctypes.EncodeTx(tty.CreateMintTx(in.Symbol, in.To, in.Amount))
	return nil
}

// Balance account of an address
func (t *Jrpc) Balance(in *tty.ReqBalance, result *types.Account) error {
	reply, err := t.exec.Query(tty.TokenX, "Balance", types.Encode(in))
	if err != nil {
		return err
	}
	*result = *reply.(*types.Account)
	return nil
}
