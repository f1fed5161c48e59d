// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin            int64 = 1e8
	MaxCoin         int64 = 1e17
	TokenPrecision  int64 = 1e8
	MaxTokenBalance int64 = 900 * 1e8 * TokenPrecision //900亿
	MaxTxSize             = 100000                     //100K
	// TokenSymbolLenLimit token symbol 长度限制
	TokenSymbolLenLimit = 16
)

// receipt ty
const (
	ExecErr = 1
	ExecOk  = 2
)

// log ty for the token ledger
const (
	TyLogErr      = 1
	TyLogTransfer = 2
	TyLogMint     = 3
)

//CheckAmount 检查转账金额
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}

//SafeMul a*b, ErrAmount when the result leaves the coin range
func SafeMul(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, ErrAmount
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a >= MaxCoin/b {
		return 0, ErrAmount
	}
	return a * b, nil
}

//SafeAdd balance+amount, ErrAmount on overflow or beyond MaxTokenBalance
func SafeAdd(balance, amount int64) (int64, error) {
	if balance+amount < amount || balance+amount > MaxTokenBalance {
		return balance, ErrAmount
	}
	return balance + amount, nil
}

//Version of the node and the cli
const Version = "1.0.0"
