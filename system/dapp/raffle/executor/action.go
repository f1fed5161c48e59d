// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/raffle/account"
	dbm "github.com/33cn/raffle/common/db"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// action one raffle operation. Every method loads what it needs from the
// state db, validates before writing anything, and returns one receipt
// carrying exactly one raffle event log.
type action struct {
	db        dbm.KV
	seed      []byte
	fromaddr  string
	blocktime int64
	height    int64
	index     int
	opts      *Options
	registry  *Registry
	tickets   *TicketLedger
}

func newAction(r *Raffle, tx *types.Transaction, index int) *action {
	db := r.GetStateDB()
	return &action{
		db:        db,
		seed:      r.GetRandSeed(),
		fromaddr:  r.GetFrom(),
		blocktime: r.GetBlockTime(),
		height:    r.GetHeight(),
		index:     index,
		opts:      r.opts,
		registry:  NewRegistry(db),
		tickets:   NewTicketLedger(db),
	}
}

func (a *action) load(raffleID int64) (*pty.Raffle, error) {
	return a.registry.Get(raffleID)
}

// save the raffle and build the receipt with its event
func (a *action) save(raffle *pty.Raffle, event *pty.ReceiptRaffle, kvs []*types.KeyValue, logs []*types.ReceiptLog) (*types.Receipt, error) {
	kv, err := a.registry.Put(raffle)
	if err != nil {
		return nil, err
	}
	event.RaffleID = raffle.ID
	event.Status = raffle.Status
	event.Time = a.blocktime
	kvs = append(kvs, kv)
	logs = append(logs, &types.ReceiptLog{Ty: pty.LogTy(event.Kind), Log: types.Encode(event)})
	return &types.Receipt{Ty: types.ExecOk, KV: kvs, Logs: logs}, nil
}

func wrongState(raffle *pty.Raffle, op string) error {
	return errors.Wrapf(pty.ErrInvalidStateTransition, "%s raffle %d in status %s", op, raffle.ID, pty.StatusName(raffle.Status))
}

// Create validate the parameters and store the raffle as Created
func (a *action) Create(create *pty.RaffleCreate) (*types.Receipt, error) {
	if create.MaxTickets < 1 {
		return nil, errors.Wrapf(pty.ErrMaxTickets, "maxTickets %d", create.MaxTickets)
	}
	if create.TicketPrice <= 0 {
		return nil, errors.Wrapf(pty.ErrTicketPrice, "ticketPrice %d", create.TicketPrice)
	}
	if create.PrizeAmount <= 0 {
		return nil, errors.Wrapf(pty.ErrPrizeAmount, "prizeAmount %d", create.PrizeAmount)
	}
	if !types.CheckAmount(create.PrizeAmount) {
		return nil, errors.Wrapf(types.ErrAmount, "prizeAmount %d", create.PrizeAmount)
	}
	// every ticket sold must fit in the custody
	if _, err := types.SafeMul(create.MaxTickets, create.TicketPrice); err != nil {
		return nil, errors.Wrapf(err, "maxTickets %d * ticketPrice %d", create.MaxTickets, create.TicketPrice)
	}
	if _, err := account.NewTokenDB(create.PaymentToken, a.db); err != nil {
		return nil, errors.Wrapf(err, "paymentToken %q", create.PaymentToken)
	}

	id, idkv, err := a.registry.AllocateID()
	if err != nil {
		return nil, err
	}
	raffle := &pty.Raffle{
		ID:            id,
		Creator:       a.fromaddr,
		Description:   create.Description,
		EndTime:       create.EndTime,
		MaxTickets:    create.MaxTickets,
		AllowMultiple: create.AllowMultiple,
		TicketPrice:   create.TicketPrice,
		PaymentToken:  create.PaymentToken,
		PrizeAmount:   create.PrizeAmount,
		Status:        pty.RaffleCreated,
		CreateTime:    a.blocktime,
	}
	event := &pty.ReceiptRaffle{
		Kind:          pty.EventRaffleCreated,
		Creator:       raffle.Creator,
		Description:   raffle.Description,
		EndTime:       raffle.EndTime,
		MaxTickets:    raffle.MaxTickets,
		AllowMultiple: raffle.AllowMultiple,
		TicketPrice:   raffle.TicketPrice,
		PaymentToken:  raffle.PaymentToken,
		PrizeAmount:   raffle.PrizeAmount,
	}
	rlog.Debug("Create", "raffleID", id, "creator", a.fromaddr, "maxTickets", create.MaxTickets)
	return a.save(raffle, event, []*types.KeyValue{idkv}, nil)
}

// DepositPrize pull the prize from the creator, Created -> Active
func (a *action) DepositPrize(deposit *pty.RaffleDepositPrize) (*types.Receipt, error) {
	raffle, err := a.load(deposit.RaffleID)
	if err != nil {
		return nil, err
	}
	if a.fromaddr != raffle.Creator {
		return nil, errors.Wrapf(pty.ErrUnauthorized, "deposit by %s, creator is %s", a.fromaddr, raffle.Creator)
	}
	if raffle.Status != pty.RaffleCreated {
		return nil, errors.Wrapf(pty.ErrAlreadyDeposited, "raffle %d in status %s", raffle.ID, pty.StatusName(raffle.Status))
	}
	escrow := NewEscrow(a.db, raffle.ID)
	receipt, err := escrow.Pull(raffle.Creator, raffle.PrizeAmount, raffle.PaymentToken)
	if err != nil {
		return nil, err
	}
	prev := raffle.Status
	raffle.Status = pty.RaffleActive
	raffle.DepositTime = a.blocktime
	event := &pty.ReceiptRaffle{
		Kind:       pty.EventPrizeDeposited,
		PrevStatus: prev,
		Creator:    raffle.Creator,
		Amount:     raffle.PrizeAmount,
	}
	return a.save(raffle, event, receipt.KV, receipt.Logs)
}

// Buy append quantity tickets for the caller
func (a *action) Buy(buy *pty.RaffleBuy) (*types.Receipt, error) {
	raffle, err := a.load(buy.RaffleID)
	if err != nil {
		return nil, err
	}
	if raffle.Status != pty.RaffleActive {
		return nil, wrongState(raffle, "buy")
	}
	if buy.Quantity <= 0 {
		return nil, errors.Wrapf(pty.ErrQuantityZero, "quantity %d", buy.Quantity)
	}
	if !raffle.AllowMultiple {
		if buy.Quantity > 1 {
			return nil, errors.Wrapf(pty.ErrMultipleTicketsNotAllowed, "quantity %d", buy.Quantity)
		}
	}
	if buy.Quantity > raffle.MaxTickets-raffle.TicketsSold {
		return nil, errors.Wrapf(pty.ErrInsufficientTicketsAvailable, "quantity %d, available %d", buy.Quantity, raffle.MaxTickets-raffle.TicketsSold)
	}
	if a.opts.EnforceEndTime && raffle.EndTime != 0 && a.blocktime > raffle.EndTime {
		return nil, errors.Wrapf(pty.ErrRaffleEnded, "now %d, endTime %d", a.blocktime, raffle.EndTime)
	}
	total, err := types.SafeMul(buy.Quantity, raffle.TicketPrice)
	if err != nil {
		return nil, err
	}
	escrow := NewEscrow(a.db, raffle.ID)
	receipt, err := escrow.Pull(a.fromaddr, total, raffle.PaymentToken)
	if err != nil {
		return nil, err
	}
	kvs := receipt.KV
	first := raffle.TicketsSold
	for i := int64(0); i < buy.Quantity; i++ {
		_, tkvs, err := a.tickets.Append(raffle.ID, a.fromaddr, a.blocktime)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, tkvs...)
	}
	raffle.TicketsSold += buy.Quantity
	event := &pty.ReceiptRaffle{
		Kind:        pty.EventTicketPurchased,
		PrevStatus:  raffle.Status,
		Buyer:       a.fromaddr,
		FirstIndex:  first,
		Quantity:    buy.Quantity,
		TotalPaid:   total,
		TicketsSold: raffle.TicketsSold,
	}
	return a.save(raffle, event, kvs, receipt.Logs)
}

// Finalize select the winner, Active -> Finalized
func (a *action) Finalize(finalize *pty.RaffleFinalize) (*types.Receipt, error) {
	raffle, err := a.load(finalize.RaffleID)
	if err != nil {
		return nil, err
	}
	if raffle.Status != pty.RaffleActive {
		return nil, wrongState(raffle, "finalize")
	}
	if raffle.TicketsSold < 1 {
		return nil, errors.Wrapf(pty.ErrNoTicketsSold, "raffle %d", raffle.ID)
	}
	source := finalize.RandomnessSource
	if source == "" {
		source = a.opts.DefaultRandomness
	}
	if !SupportedSource(source) {
		return nil, errors.Wrapf(pty.ErrUnsupportedRandomnessSource, "source %q", source)
	}
	provider, ok := a.opts.Entropy[source]
	if !ok {
		return nil, errors.Wrapf(pty.ErrUnsupportedRandomnessSource, "no provider for %q", source)
	}
	entropy, err := provider.Entropy(&EntropyContext{
		Seed:        a.seed,
		RaffleID:    raffle.ID,
		Height:      a.height,
		BlockTime:   a.blocktime,
		TicketsSold: raffle.TicketsSold,
	})
	if err != nil {
		rlog.Error("Finalize entropy", "raffleID", raffle.ID, "source", source, "err", err)
		return nil, err
	}
	index, err := SelectWinner(raffle.TicketsSold, source, entropy)
	if err != nil {
		return nil, err
	}
	ticket, err := a.tickets.Get(raffle.ID, index)
	if err != nil {
		rlog.Error("Finalize ticket", "raffleID", raffle.ID, "index", index, "err", err)
		return nil, err
	}
	prev := raffle.Status
	raffle.Status = pty.RaffleFinalized
	raffle.Winner = ticket.Buyer
	raffle.WinningIndex = index
	raffle.RandomnessSource = source
	raffle.FinalizeTime = a.blocktime
	event := &pty.ReceiptRaffle{
		Kind:             pty.EventRaffleFinalized,
		PrevStatus:       prev,
		Winner:           raffle.Winner,
		WinningIndex:     index,
		RandomnessSource: source,
		TicketsSold:      raffle.TicketsSold,
	}
	return a.save(raffle, event, nil, nil)
}

// Claim push the prize to the winner, Finalized -> Claimed
func (a *action) Claim(claim *pty.RaffleClaim) (*types.Receipt, error) {
	raffle, err := a.load(claim.RaffleID)
	if err != nil {
		return nil, err
	}
	if raffle.Status != pty.RaffleFinalized {
		return nil, errors.Wrapf(pty.ErrAlreadyClaimed, "raffle %d in status %s", raffle.ID, pty.StatusName(raffle.Status))
	}
	if a.opts.ClaimByWinnerOnly && a.fromaddr != raffle.Winner {
		return nil, errors.Wrapf(pty.ErrUnauthorized, "claim by %s, winner is %s", a.fromaddr, raffle.Winner)
	}
	escrow := NewEscrow(a.db, raffle.ID)
	receipt, err := escrow.Push(raffle.Winner, raffle.PrizeAmount, raffle.PaymentToken)
	if err != nil {
		return nil, err
	}
	prev := raffle.Status
	raffle.Status = pty.RaffleClaimed
	raffle.ClaimTime = a.blocktime
	event := &pty.ReceiptRaffle{
		Kind:       pty.EventPrizeClaimed,
		PrevStatus: prev,
		Winner:     raffle.Winner,
		Amount:     raffle.PrizeAmount,
	}
	return a.save(raffle, event, receipt.KV, receipt.Logs)
}

// Cancel refund the prize and every ticket, Created|Active -> Cancelled
func (a *action) Cancel(cancel *pty.RaffleCancel) (*types.Receipt, error) {
	raffle, err := a.load(cancel.RaffleID)
	if err != nil {
		return nil, err
	}
	if a.fromaddr != raffle.Creator {
		return nil, errors.Wrapf(pty.ErrUnauthorized, "cancel by %s, creator is %s", a.fromaddr, raffle.Creator)
	}
	if raffle.Status != pty.RaffleCreated && raffle.Status != pty.RaffleActive {
		return nil, errors.Wrapf(pty.ErrInvalidStateForCancellation, "raffle %d in status %s", raffle.ID, pty.StatusName(raffle.Status))
	}
	escrow := NewEscrow(a.db, raffle.ID)
	var kvs []*types.KeyValue
	var logs []*types.ReceiptLog
	if raffle.PrizeDeposited() {
		receipt, err := escrow.Push(raffle.Creator, raffle.PrizeAmount, raffle.PaymentToken)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, receipt.KV...)
		logs = append(logs, receipt.Logs...)
	}
	tickets, err := a.tickets.List(raffle.ID)
	if err != nil {
		return nil, err
	}
	for _, ticket := range tickets {
		receipt, err := escrow.Push(ticket.Buyer, raffle.TicketPrice, raffle.PaymentToken)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, receipt.KV...)
		logs = append(logs, receipt.Logs...)
	}
	prev := raffle.Status
	raffle.Status = pty.RaffleCancelled
	raffle.CancelTime = a.blocktime
	event := &pty.ReceiptRaffle{
		Kind:       pty.EventRaffleCancelled,
		PrevStatus: prev,
	}
	return a.save(raffle, event, kvs, logs)
}
