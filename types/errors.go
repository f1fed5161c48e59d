// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"strings"
)

// errors
var (
	ErrNotFound           = errors.New("ErrNotFound")
	ErrAmount             = errors.New("ErrAmount")
	ErrNoBalance          = errors.New("ErrNoBalance")
	ErrSendSameToRecv     = errors.New("ErrSendSameToRecv")
	ErrSymbolNameNotAllow = errors.New("ErrSymbolNameNotAllow")
	ErrExecNameNotAllow   = errors.New("ErrExecNameNotAllow")
	ErrExecNotFound       = errors.New("ErrExecNotFound")
	ErrActionNotSupport   = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport    = errors.New("ErrQueryNotSupport")
	ErrSign               = errors.New("ErrSign")
	ErrNoSignature        = errors.New("ErrNoSignature")
	ErrInvalidAddress     = errors.New("ErrInvalidAddress")
	ErrInvalidParam       = errors.New("ErrInvalidParam")
	ErrTxMsgSizeTooBig    = errors.New("ErrTxMsgSizeTooBig")
	ErrTransferFailed     = errors.New("ErrTransferFailed")
	ErrMintNotAllowed     = errors.New("ErrMintNotAllowed")
	ErrRateLimited        = errors.New("ErrRateLimited")
	ErrMethodReturnType   = errors.New("ErrMethodReturnType")
	ErrMethodNotFound     = errors.New("ErrMethodNotFound")
	ErrTxExist            = errors.New("ErrTxExist")
)

var registeredErrors = make(map[string]error)

//RegisterErrors lets rpc clients turn an error string back into its sentinel
func RegisterErrors(errs ...error) {
	for _, err := range errs {
		registeredErrors[err.Error()] = err
	}
}

//ErrorFromString the registered sentinel carried by msg, or a plain error.
//msg is either the sentinel text itself or a pkg/errors chain ending in it.
func ErrorFromString(msg string) error {
	if err, ok := registeredErrors[msg]; ok {
		return err
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		if err, ok := registeredErrors[msg[i+2:]]; ok {
			return &remoteError{msg: msg, cause: err}
		}
	}
	return errors.New(msg)
}

type remoteError struct {
	msg   string
	cause error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.cause }
func (e *remoteError) Cause() error  { return e.cause }

func init() {
	RegisterErrors(ErrNotFound, ErrAmount, ErrNoBalance, ErrSendSameToRecv, ErrSymbolNameNotAllow,
		ErrExecNameNotAllow, ErrExecNotFound, ErrActionNotSupport, ErrQueryNotSupport, ErrSign,
		ErrNoSignature, ErrInvalidAddress, ErrInvalidParam, ErrTxMsgSizeTooBig, ErrTransferFailed,
		ErrMintNotAllowed, ErrRateLimited, ErrMethodReturnType, ErrMethodNotFound, ErrTxExist)
}
