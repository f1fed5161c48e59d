// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"

	"github.com/33cn/raffle/types"
)

// Errors for raffle
var (
	ErrQuantityZero                 = errors.New("ErrQuantityZero")
	ErrMultipleTicketsNotAllowed    = errors.New("ErrMultipleTicketsNotAllowed")
	ErrInsufficientTicketsAvailable = errors.New("ErrInsufficientTicketsAvailable")
	ErrInvalidStateTransition       = errors.New("ErrInvalidStateTransition")
	ErrNoTicketsSold                = errors.New("ErrNoTicketsSold")
	ErrUnsupportedRandomnessSource  = errors.New("ErrUnsupportedRandomnessSource")
	ErrUnauthorized                 = errors.New("ErrUnauthorized")
	ErrRaffleEnded                  = errors.New("ErrRaffleEnded")
	ErrRaffleNotFound               = errors.New("ErrRaffleNotFound")
	ErrMaxTickets                   = errors.New("ErrMaxTickets")
	ErrTicketPrice                  = errors.New("ErrTicketPrice")
	ErrPrizeAmount                  = errors.New("ErrPrizeAmount")
	ErrEntropyUnavailable           = errors.New("ErrEntropyUnavailable")

	// specialised ErrInvalidStateTransition
	ErrAlreadyDeposited            = stateErr("ErrAlreadyDeposited")
	ErrAlreadyClaimed              = stateErr("ErrAlreadyClaimed")
	ErrInvalidStateForCancellation = stateErr("ErrInvalidStateForCancellation")
)

type stateError struct {
	name string
}

func stateErr(name string) error {
	return &stateError{name: name}
}

func (e *stateError) Error() string { return e.name }

// Unwrap errors.Is(err, ErrInvalidStateTransition) holds
func (e *stateError) Unwrap() error { return ErrInvalidStateTransition }

func init() {
	types.RegisterErrors(ErrQuantityZero, ErrMultipleTicketsNotAllowed, ErrInsufficientTicketsAvailable,
		ErrInvalidStateTransition, ErrNoTicketsSold, ErrUnsupportedRandomnessSource, ErrUnauthorized,
		ErrRaffleEnded, ErrRaffleNotFound, ErrMaxTickets, ErrTicketPrice, ErrPrizeAmount, ErrEntropyUnavailable,
		ErrAlreadyDeposited, ErrAlreadyClaimed, ErrInvalidStateForCancellation)
}
