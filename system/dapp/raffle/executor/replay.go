// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/pkg/errors"
)

// ReplayState raffles and tickets rebuilt from events
type ReplayState struct {
	Raffles map[int64]*pty.Raffle
	Tickets map[int64][]*pty.Ticket
}

// NewReplayState empty state
func NewReplayState() *ReplayState {
	return &ReplayState{
		Raffles: make(map[int64]*pty.Raffle),
		Tickets: make(map[int64][]*pty.Ticket),
	}
}

// Replay rebuild the state of every raffle from its event stream
func Replay(events []*pty.ReceiptRaffle) (*ReplayState, error) {
	state := NewReplayState()
	for i, event := range events {
		if err := state.Apply(event); err != nil {
			return nil, errors.Wrapf(err, "event %d (%s raffle %d)", i, event.Kind, event.RaffleID)
		}
	}
	return state, nil
}

func (s *ReplayState) get(event *pty.ReceiptRaffle, want ...int32) (*pty.Raffle, error) {
	raffle, ok := s.Raffles[event.RaffleID]
	if !ok {
		return nil, pty.ErrRaffleNotFound
	}
	for _, status := range want {
		if raffle.Status == status {
			return raffle, nil
		}
	}
	return nil, pty.ErrInvalidStateTransition
}

// Apply one event
func (s *ReplayState) Apply(event *pty.ReceiptRaffle) error {
	switch event.Kind {
	case pty.EventRaffleCreated:
		if _, ok := s.Raffles[event.RaffleID]; ok {
			return pty.ErrInvalidStateTransition
		}
		s.Raffles[event.RaffleID] = &pty.Raffle{
			ID:            event.RaffleID,
			Creator:       event.Creator,
			Description:   event.Description,
			EndTime:       event.EndTime,
			MaxTickets:    event.MaxTickets,
			AllowMultiple: event.AllowMultiple,
			TicketPrice:   event.TicketPrice,
			PaymentToken:  event.PaymentToken,
			PrizeAmount:   event.PrizeAmount,
			Status:        pty.RaffleCreated,
			CreateTime:    event.Time,
		}
	case pty.EventPrizeDeposited:
		raffle, err := s.get(event, pty.RaffleCreated)
		if err != nil {
			return err
		}
		raffle.Status = pty.RaffleActive
		raffle.DepositTime = event.Time
	case pty.EventTicketPurchased:
		raffle, err := s.get(event, pty.RaffleActive)
		if err != nil {
			return err
		}
		tickets := s.Tickets[raffle.ID]
		if event.FirstIndex != int64(len(tickets)) {
			return errors.Errorf("first index %d, have %d tickets", event.FirstIndex, len(tickets))
		}
		for i := int64(0); i < event.Quantity; i++ {
			tickets = append(tickets, &pty.Ticket{
				RaffleID:     raffle.ID,
				Index:        event.FirstIndex + i,
				Buyer:        event.Buyer,
				PurchaseTime: event.Time,
			})
		}
		s.Tickets[raffle.ID] = tickets
		raffle.TicketsSold = int64(len(tickets))
	case pty.EventRaffleFinalized:
		raffle, err := s.get(event, pty.RaffleActive)
		if err != nil {
			return err
		}
		raffle.Status = pty.RaffleFinalized
		raffle.Winner = event.Winner
		raffle.WinningIndex = event.WinningIndex
		raffle.RandomnessSource = event.RandomnessSource
		raffle.FinalizeTime = event.Time
	case pty.EventPrizeClaimed:
		raffle, err := s.get(event, pty.RaffleFinalized)
		if err != nil {
			return err
		}
		raffle.Status = pty.RaffleClaimed
		raffle.ClaimTime = event.Time
	case pty.EventRaffleCancelled:
		raffle, err := s.get(event, pty.RaffleCreated, pty.RaffleActive)
		if err != nil {
			return err
		}
		raffle.Status = pty.RaffleCancelled
		raffle.CancelTime = event.Time
	default:
		return errors.Errorf("unknown event kind %q", event.Kind)
	}
	return nil
}
