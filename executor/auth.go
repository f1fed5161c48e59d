// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// Authorizer resolves the caller identity of a tx
type Authorizer interface {
	Authorize(tx *types.Transaction) (string, error)
}

// SignatureAuthorizer caller is the address of the verified signer
type SignatureAuthorizer struct{}

// Authorize check signature
func (SignatureAuthorizer) Authorize(tx *types.Transaction) (string, error) {
	if tx.Signature == nil {
		return "", types.ErrNoSignature
	}
	if !tx.CheckSign() {
		return "", types.ErrSign
	}
	from := tx.From()
	if tx.Caller != "" && tx.Caller != from {
		return "", errors.Wrapf(types.ErrSign, "caller %s is not the signer %s", tx.Caller, from)
	}
	return from, nil
}

// TrustedAuthorizer accepts tx.Caller as is. Signed txs are still checked.
type TrustedAuthorizer struct{}

// Authorize trust the caller field
func (TrustedAuthorizer) Authorize(tx *types.Transaction) (string, error) {
	if tx.Signature != nil {
		return SignatureAuthorizer{}.Authorize(tx)
	}
	if err := address.CheckAddress(tx.Caller); err != nil {
		return "", errors.Wrapf(types.ErrInvalidAddress, "caller %q: %v", tx.Caller, err)
	}
	return tx.Caller, nil
}
