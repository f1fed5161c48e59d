// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/executor"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// Node tx submission and generic queries
type Node struct {
	exec *executor.Executor
}

// SendTransaction execute a hex encoded tx, signed or carrying a caller
func (n *Node) SendTransaction(in *rpctypes.RawParm, result *rpctypes.ReplyTxResult) error {
	data, err := common.FromHex(in.Data)
	if err != nil {
		return errors.Wrapf(types.ErrInvalidParam, "tx hex: %v", err)
	}
	if len(data) > types.MaxTxSize {
		return types.ErrTxMsgSizeTooBig
	}
	var tx types.Transaction
	if err := types.Decode(data, &tx); err != nil {
		return errors.Wrapf(types.ErrInvalidParam, "decode tx: %v", err)
	}
	r, err := n.exec.SendTx(&tx)
	if err != nil {
		return err
	}
	receipt, err := n.exec.DecodeReceipt(r.Execer, r.Receipt)
	if err != nil {
		return err
	}
	*result = rpctypes.ReplyTxResult{
		Hash:      common.ToHex(r.Hash),
		Height:    r.Height,
		BlockTime: r.BlockTime,
		From:      r.From,
		Execer:    r.Execer,
		Action:    r.Action,
		Receipt:   receipt,
	}
	return nil
}

// GetHeight number of committed txs
func (n *Node) GetHeight(in *rpctypes.ReqNil, result *rpctypes.ReplyHeight) error {
	result.Height = n.exec.Height()
	return nil
}

// Query json query of any execer
func (n *Node) Query(in *rpctypes.Query4Jrpc, result *json.RawMessage) error {
	reply, err := n.exec.QueryJSON(in.Execer, in.FuncName, in.Payload)
	if err != nil {
		return err
	}
	data, err := types.PBToJSON(reply)
	if err != nil {
		return err
	}
	*result = data
	return nil
}
