// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types json-rpc request and reply types
package types

import (
	"encoding/json"
	"net/rpc"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/types"
)

// RPCServer what a dapp plugin needs to register its json-rpc service
type RPCServer interface {
	GetExecutor() *executor.Executor
	JRPC() *rpc.Server
}

// ReqNil empty params
type ReqNil struct{}

// RawParm hex encoded tx
type RawParm struct {
	Data string `json:"data"`
}

// ReplyTxResult result of an executed tx
type ReplyTxResult struct {
	Hash      string                   `json:"hash"`
	Height    int64                    `json:"height"`
	BlockTime int64                    `json:"blockTime"`
	From      string                   `json:"from"`
	Execer    string                   `json:"execer"`
	Action    string                   `json:"action"`
	Receipt   *types.ReceiptDataResult `json:"receipt"`
}

// ReplyHeight height of the node
type ReplyHeight struct {
	Height int64 `json:"height"`
}

// Query4Jrpc generic query input
type Query4Jrpc struct {
	Execer   string          `json:"execer"`
	FuncName string          `json:"funcName"`
	Payload  json.RawMessage `json:"payload"`
}

// EncodeTx hex of an unsigned tx, signed by the client before SendTransaction
func EncodeTx(tx *types.Transaction) string {
	return common.ToHex(types.Encode(tx))
}
