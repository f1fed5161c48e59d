// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/raffle/types"
)

// TxResult one committed tx as seen by observers
type TxResult struct {
	Height    int64
	BlockTime int64
	Hash      []byte
	From      string
	Execer    string
	Action    string
	Receipt   *types.ReceiptData
}

// Observer notified synchronously after each commit, in commit order
type Observer interface {
	OnCommit(result *TxResult)
}

// ObserverFunc adapter
type ObserverFunc func(result *TxResult)

// OnCommit call f
func (f ObserverFunc) OnCommit(result *TxResult) {
	f(result)
}
