// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types token transfer and mint actions
package types

import (
	"reflect"

	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/types"
)

//TokenX name of the token executor
var TokenX = account.TokenX

// action ty
const (
	TokenActionTransfer = 1 + iota
	TokenActionMint
)

//TokenAction payload of a token tx
type TokenAction struct {
	Ty       int32
	Transfer *TokenTransfer
	Mint     *TokenMint
}

//TokenTransfer move amount of symbol from the caller to To
type TokenTransfer struct {
	Symbol string `json:"symbol"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

//TokenMint create amount of symbol at To, devnets only
type TokenMint struct {
	Symbol string `json:"symbol"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

//ReqBalance balance query
type ReqBalance struct {
	Symbol string `json:"symbol"`
	Addr   string `json:"addr"`
}

var actionTypeMap = map[string]int32{
	"Transfer": TokenActionTransfer,
	"Mint":     TokenActionMint,
}

var logMap = map[int32]*types.LogInfo{
	types.TyLogTransfer: {Ty: reflect.TypeOf(types.ReceiptAccountTransfer{}), Name: "LogTransfer"},
	types.TyLogMint:     {Ty: reflect.TypeOf(types.ReceiptAccountTransfer{}), Name: "LogMint"},
}

//TokenType executor type of token
type TokenType struct {
	*types.ExecTypeBase
}

//NewType new
func NewType() *TokenType {
	return &TokenType{
		ExecTypeBase: types.NewExecTypeBase(TokenX, func() interface{} { return &TokenAction{} }, actionTypeMap, logMap),
	}
}

//CreateTransferTx unsigned transfer tx
func CreateTransferTx(symbol, to string, amount int64) *types.Transaction {
	return NewType().CreateTx(&TokenAction{Ty: TokenActionTransfer, Transfer: &TokenTransfer{Symbol: symbol, To: to, Amount: amount}}, types.RandNonce())
}

//CreateMintTx unsigned mint tx
func CreateMintTx(symbol, to string, amount int64) *types.Transaction {
	return NewType().CreateTx(&TokenAction{Ty: TokenActionMint, Mint: &TokenMint{Symbol: symbol, To: to, Amount: amount}}, types.RandNonce())
}
