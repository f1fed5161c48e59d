// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

// Exec_Create create a raffle
func (r *Raffle) Exec_Create(payload *pty.RaffleCreate, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newAction(r, tx, index)
	return action.Create(payload)
}

// Exec_DepositPrize fund the prize
func (r *Raffle) Exec_DepositPrize(payload *pty.RaffleDepositPrize, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newAction(r, tx, index)
	return action.DepositPrize(payload)
}

// Exec_Buy buy tickets
func (r *Raffle) Exec_Buy(payload *pty.RaffleBuy, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newAction(r, tx, index)
	return action.Buy(payload)
}

// Exec_Finalize draw the winner
func (r *Raffle) Exec_Finalize(payload *pty.RaffleFinalize, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newAction(r, tx, index)
	return action.Finalize(payload)
}

// Exec_Claim pay the winner
func (r *Raffle) Exec_Claim(payload *pty.RaffleClaim, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newAction(r, tx, index)
	return action.Claim(payload)
}

// Exec_Cancel cancel and refund
func (r *Raffle) Exec_Cancel(payload *pty.RaffleCancel, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := newAction(r, tx, index)
	return action.Cancel(payload)
}
