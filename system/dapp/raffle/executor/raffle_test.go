// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	"github.com/33cn/raffle/common/address"
	dbm "github.com/33cn/raffle/common/db"
	host "github.com/33cn/raffle/executor"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	tokenexec "github.com/33cn/raffle/system/dapp/token/executor"
	tty "github.com/33cn/raffle/system/dapp/token/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const symbol = "usdt"

var (
	creator = address.ExecAddress("test.creator")
	alice   = address.ExecAddress("test.alice")
	bob     = address.ExecAddress("test.bob")
	carol   = address.ExecAddress("test.carol")
	minter  = address.ExecAddress("test.minter")
)

type testEnv struct {
	t     *testing.T
	exec  *host.Executor
	clock *host.FixedClock
	rec   *RecordingObserver
	// sequential nonces when set, random ones otherwise
	seqNonce bool
	nonce    int64
}

func testOptions() *Options {
	opts := DefaultOptions()
	opts.Entropy[pty.SourcePRNG] = FixedEntropy("prng seed")
	opts.Entropy[pty.SourceOracle] = FixedEntropy("oracle seed")
	return opts
}

func newTestEnv(t *testing.T, opts *Options, extra ...host.Option) *testEnv {
	db, err := dbm.NewGoMemDB("raffle", "", 0)
	require.NoError(t, err)
	env := &testEnv{t: t, clock: host.NewFixedClock(1600000000), rec: &RecordingObserver{}}
	hostOpts := []host.Option{
		host.WithAuthorizer(host.TrustedAuthorizer{}),
		host.WithClock(env.clock),
		host.WithDriver(pty.RaffleX, NewDriverCreate(opts)),
		host.WithDriver(tty.TokenX, tokenexec.NewDriverCreate(true)),
		host.WithObserver(NewEventEmitter(env.rec)),
	}
	env.exec, err = host.New(db, append(hostOpts, extra...)...)
	require.NoError(t, err)
	return env
}

func (env *testEnv) send(from string, tx *types.Transaction) (*types.Receipt, error) {
	if env.seqNonce {
		env.nonce++
		tx.Nonce = env.nonce
	}
	return env.sendNonce(from, tx, tx.Nonce)
}

func (env *testEnv) sendNonce(from string, tx *types.Transaction, nonce int64) (*types.Receipt, error) {
	tx.Caller = from
	tx.Nonce = nonce
	env.clock.Add(1)
	return env.exec.ExecTx(tx)
}

func (env *testEnv) mint(addr string, amount int64) {
	_, err := env.send(minter, tty.CreateMintTx(symbol, addr, amount))
	require.NoError(env.t, err)
}

func (env *testEnv) balance(addr string) int64 {
	b, err := env.exec.Balance(symbol, addr)
	require.NoError(env.t, err)
	return b
}

func (env *testEnv) create(from string, create *pty.RaffleCreate) int64 {
	receipt, err := env.send(from, pty.CreateRaffleCreateTx(create))
	require.NoError(env.t, err)
	event := lastEvent(env.t, receipt)
	assert.Equal(env.t, pty.EventRaffleCreated, event.Kind)
	return event.RaffleID
}

func (env *testEnv) raffle(id int64) *pty.Raffle {
	reply, err := env.exec.Query(pty.RaffleX, pty.FuncNameGetRaffle, types.Encode(&pty.ReqRaffle{RaffleID: id}))
	require.NoError(env.t, err)
	return reply.(*pty.Raffle)
}

func (env *testEnv) tickets(id int64) []*pty.Ticket {
	reply, err := env.exec.Query(pty.RaffleX, pty.FuncNameGetTickets, types.Encode(&pty.ReqRaffle{RaffleID: id}))
	require.NoError(env.t, err)
	return reply.(*pty.ReplyTickets).Tickets
}

func (env *testEnv) checkCustody(id int64) {
	reply, err := env.exec.Query(pty.RaffleX, pty.FuncNameGetCustody, types.Encode(&pty.ReqRaffle{RaffleID: id}))
	require.NoError(env.t, err)
	custody := reply.(*pty.ReplyCustody)
	assert.Equal(env.t, custody.Expected, custody.Balance, "custody of raffle %d", id)
}

func lastEvent(t *testing.T, receipt *types.Receipt) *pty.ReceiptRaffle {
	var events []*pty.ReceiptRaffle
	for _, l := range receipt.Logs {
		if pty.IsRaffleLog(l.Ty) {
			event, err := pty.DecodeEvent(l)
			require.NoError(t, err)
			events = append(events, event)
		}
	}
	require.Len(t, events, 1)
	return events[0]
}

// 5 tickets, price 10, prize 100
func defaultCreate(allowMultiple bool) *pty.RaffleCreate {
	return &pty.RaffleCreate{
		Description:   "weekly draw",
		MaxTickets:    5,
		AllowMultiple: allowMultiple,
		TicketPrice:   10 * types.Coin,
		PaymentToken:  symbol,
		PrizeAmount:   100 * types.Coin,
	}
}

func (env *testEnv) activeRaffle(allowMultiple bool) int64 {
	env.mint(creator, 1000*types.Coin)
	id := env.create(creator, defaultCreate(allowMultiple))
	_, err := env.send(creator, pty.CreateRaffleDepositTx(id))
	require.NoError(env.t, err)
	return id
}

func TestCreateSequentialIDs(t *testing.T) {
	env := newTestEnv(t, testOptions())
	for i := int64(0); i < 3; i++ {
		assert.Equal(t, i, env.create(creator, defaultCreate(true)))
	}
	r := env.raffle(2)
	assert.Equal(t, creator, r.Creator)
	assert.Equal(t, int32(pty.RaffleCreated), r.Status)
	assert.Equal(t, int64(0), r.TicketsSold)
	assert.Equal(t, "", r.Winner)
	// no funds move on create
	assert.Equal(t, int64(0), env.balance(creator))
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t, testOptions())
	cases := []struct {
		name   string
		modify func(c *pty.RaffleCreate)
		err    error
	}{
		{"zero max tickets", func(c *pty.RaffleCreate) { c.MaxTickets = 0 }, pty.ErrMaxTickets},
		{"zero price", func(c *pty.RaffleCreate) { c.TicketPrice = 0 }, pty.ErrTicketPrice},
		{"negative price", func(c *pty.RaffleCreate) { c.TicketPrice = -1 }, pty.ErrTicketPrice},
		{"zero prize", func(c *pty.RaffleCreate) { c.PrizeAmount = 0 }, pty.ErrPrizeAmount},
		{"custody overflow", func(c *pty.RaffleCreate) { c.MaxTickets = types.MaxCoin }, types.ErrAmount},
		{"bad token", func(c *pty.RaffleCreate) { c.PaymentToken = "us-dt" }, types.ErrSymbolNameNotAllow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			create := defaultCreate(true)
			c.modify(create)
			_, err := env.send(creator, pty.CreateRaffleCreateTx(create))
			assert.True(t, errors.Is(err, c.err), "got %v", err)
		})
	}
	// failed creates allocate no id
	assert.Equal(t, int64(0), env.create(creator, defaultCreate(true)))
	assert.Equal(t, []string{pty.EventRaffleCreated}, env.rec.Kinds())
}

func TestDepositPrize(t *testing.T) {
	env := newTestEnv(t, testOptions())
	env.mint(creator, 1000*types.Coin)
	id := env.create(creator, defaultCreate(true))

	_, err := env.send(alice, pty.CreateRaffleDepositTx(id))
	assert.True(t, errors.Is(err, pty.ErrUnauthorized))

	_, err = env.send(creator, pty.CreateRaffleDepositTx(id))
	require.NoError(t, err)
	assert.Equal(t, int32(pty.RaffleActive), env.raffle(id).Status)
	assert.Equal(t, 900*types.Coin, env.balance(creator))
	assert.Equal(t, 100*types.Coin, env.balance(CustodyAddress(id)))
	env.checkCustody(id)

	_, err = env.send(creator, pty.CreateRaffleDepositTx(id))
	assert.True(t, errors.Is(err, pty.ErrAlreadyDeposited))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
	assert.Equal(t, 900*types.Coin, env.balance(creator))
}

func TestDepositWithoutFunds(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.create(creator, defaultCreate(true))
	_, err := env.send(creator, pty.CreateRaffleDepositTx(id))
	assert.True(t, errors.Is(err, types.ErrTransferFailed), "got %v", err)
	assert.Equal(t, int32(pty.RaffleCreated), env.raffle(id).Status)
	assert.Equal(t, []string{pty.EventRaffleCreated}, env.rec.Kinds())
}

func TestBuyBeforeDeposit(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.create(creator, defaultCreate(true))
	env.mint(alice, 100*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
	assert.Equal(t, 100*types.Coin, env.balance(alice))
}

func TestBuySequentialIndices(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	env.mint(alice, 100*types.Coin)
	env.mint(bob, 100*types.Coin)

	receipt, err := env.send(alice, pty.CreateRaffleBuyTx(id, 2))
	require.NoError(t, err)
	event := lastEvent(t, receipt)
	assert.Equal(t, alice, event.Buyer)
	assert.Equal(t, int64(0), event.FirstIndex)
	assert.Equal(t, int64(2), event.Quantity)
	assert.Equal(t, 20*types.Coin, event.TotalPaid)
	assert.Equal(t, int64(2), event.TicketsSold)

	receipt, err = env.send(bob, pty.CreateRaffleBuyTx(id, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(2), lastEvent(t, receipt).FirstIndex)

	tickets := env.tickets(id)
	require.Len(t, tickets, 5)
	for i, ticket := range tickets {
		assert.Equal(t, int64(i), ticket.Index)
		assert.Equal(t, id, ticket.RaffleID)
	}
	assert.Equal(t, alice, tickets[1].Buyer)
	assert.Equal(t, bob, tickets[2].Buyer)
	assert.Equal(t, int64(5), env.raffle(id).TicketsSold)
	env.checkCustody(id)
}

func TestQuantityErrors(t *testing.T) {
	env := newTestEnv(t, testOptions())
	multi := env.activeRaffle(true)
	single := env.create(creator, defaultCreate(false))
	_, err := env.send(creator, pty.CreateRaffleDepositTx(single))
	require.NoError(t, err)
	env.mint(alice, 1000*types.Coin)

	cases := []struct {
		name     string
		raffleID int64
		quantity int64
		err      error
	}{
		{"zero", multi, 0, pty.ErrQuantityZero},
		{"negative", multi, -1, pty.ErrQuantityZero},
		{"zero single", single, 0, pty.ErrQuantityZero},
		{"multiple not allowed", single, 2, pty.ErrMultipleTicketsNotAllowed},
		{"over capacity", multi, 6, pty.ErrInsufficientTicketsAvailable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := env.send(alice, pty.CreateRaffleBuyTx(c.raffleID, c.quantity))
			assert.True(t, errors.Is(err, c.err), "got %v", err)
		})
	}
	assert.Equal(t, 1000*types.Coin, env.balance(alice))
	assert.Equal(t, int64(0), env.raffle(multi).TicketsSold)
	assert.Equal(t, int64(0), env.raffle(single).TicketsSold)
}

func TestScenarioAllowMultiple(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	env.mint(alice, 100*types.Coin)

	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 3))
	require.NoError(t, err)
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 2))
	require.NoError(t, err)
	assert.Equal(t, 50*types.Coin, env.balance(alice))
	assert.Equal(t, int64(5), env.raffle(id).TicketsSold)

	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	assert.True(t, errors.Is(err, pty.ErrInsufficientTicketsAvailable))
	assert.Equal(t, 50*types.Coin, env.balance(alice))
	env.checkCustody(id)
}

func TestScenarioSingleTickets(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(false)
	env.mint(alice, 100*types.Coin)

	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 5))
	assert.True(t, errors.Is(err, pty.ErrMultipleTicketsNotAllowed))

	buyers := []string{alice, bob, carol, address.ExecAddress("test.dave"), address.ExecAddress("test.erin")}
	for _, b := range buyers[1:] {
		env.mint(b, 10*types.Coin)
	}
	for _, b := range buyers {
		_, err := env.send(b, pty.CreateRaffleBuyTx(id, 1))
		require.NoError(t, err)
	}
	tickets := env.tickets(id)
	require.Len(t, tickets, 5)
	for i, b := range buyers {
		assert.Equal(t, b, tickets[i].Buyer)
	}
	env.checkCustody(id)
}

func TestSingleTicketPerBuyer(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(false)
	env.mint(alice, 100*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
	// the flag limits one purchase, not the buyer
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 2))
	assert.True(t, errors.Is(err, pty.ErrMultipleTicketsNotAllowed))

	assert.Equal(t, 80*types.Coin, env.balance(alice))
	assert.Equal(t, int64(2), env.raffle(id).TicketsSold)
	tickets := env.tickets(id)
	require.Len(t, tickets, 2)
	assert.Equal(t, alice, tickets[0].Buyer)
	assert.Equal(t, alice, tickets[1].Buyer)
	env.checkCustody(id)
}

func TestBuyAfterEndTime(t *testing.T) {
	env := newTestEnv(t, testOptions())
	env.mint(creator, 1000*types.Coin)
	create := defaultCreate(true)
	create.EndTime = env.clock.Now() + 10
	id := env.create(creator, create)
	_, err := env.send(creator, pty.CreateRaffleDepositTx(id))
	require.NoError(t, err)
	env.mint(alice, 100*types.Coin)

	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
	env.clock.Add(100)
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	assert.True(t, errors.Is(err, pty.ErrRaffleEnded))

	// capacity errors come first
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 0))
	assert.True(t, errors.Is(err, pty.ErrQuantityZero))

	// finalize is still possible after the end
	_, err = env.send(bob, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	require.NoError(t, err)
}

func TestBuyAfterEndTimeNotEnforced(t *testing.T) {
	opts := testOptions()
	opts.EnforceEndTime = false
	env := newTestEnv(t, opts)
	env.mint(creator, 1000*types.Coin)
	create := defaultCreate(true)
	create.EndTime = env.clock.Now()
	id := env.create(creator, create)
	_, err := env.send(creator, pty.CreateRaffleDepositTx(id))
	require.NoError(t, err)
	env.mint(alice, 100*types.Coin)
	env.clock.Add(100)
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
}

func TestBuyWithoutFunds(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	env.mint(alice, 15*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 2))
	assert.True(t, errors.Is(err, types.ErrTransferFailed))
	assert.Equal(t, 15*types.Coin, env.balance(alice))
	assert.Len(t, env.tickets(id), 0)
	env.checkCustody(id)
}

func TestFinalize(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)

	_, err := env.send(bob, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	assert.True(t, errors.Is(err, pty.ErrNoTicketsSold))

	env.mint(alice, 100*types.Coin)
	env.mint(bob, 100*types.Coin)
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 2))
	require.NoError(t, err)
	_, err = env.send(bob, pty.CreateRaffleBuyTx(id, 3))
	require.NoError(t, err)

	_, err = env.send(bob, pty.CreateRaffleFinalizeTx(id, "dice"))
	assert.True(t, errors.Is(err, pty.ErrUnsupportedRandomnessSource))

	receipt, err := env.send(carol, pty.CreateRaffleFinalizeTx(id, pty.SourceOracle))
	require.NoError(t, err)
	event := lastEvent(t, receipt)

	index, err := SelectWinner(5, pty.SourceOracle, []byte("oracle seed"))
	require.NoError(t, err)
	tickets := env.tickets(id)
	r := env.raffle(id)
	assert.Equal(t, int32(pty.RaffleFinalized), r.Status)
	assert.Equal(t, index, r.WinningIndex)
	assert.Equal(t, tickets[index].Buyer, r.Winner)
	assert.Equal(t, r.Winner, event.Winner)
	assert.Equal(t, index, event.WinningIndex)
	assert.Equal(t, pty.SourceOracle, event.RandomnessSource)

	// second finalize fails and the winner is unchanged
	_, err = env.send(carol, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
	assert.Equal(t, r.Winner, env.raffle(id).Winner)
	assert.Equal(t, index, env.raffle(id).WinningIndex)

	// no more purchases
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
}

func TestFinalizeDefaultSource(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	env.mint(alice, 100*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
	_, err = env.send(alice, pty.CreateRaffleFinalizeTx(id, ""))
	require.NoError(t, err)
	assert.Equal(t, pty.SourcePRNG, env.raffle(id).RandomnessSource)
}

func TestFinalizeDeterministic(t *testing.T) {
	winners := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		env := newTestEnv(t, testOptions())
		id := env.activeRaffle(true)
		for _, b := range []string{alice, bob, carol} {
			env.mint(b, 100*types.Coin)
			_, err := env.send(b, pty.CreateRaffleBuyTx(id, 1))
			require.NoError(t, err)
		}
		_, err := env.send(alice, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
		require.NoError(t, err)
		winners = append(winners, env.raffle(id).Winner)
	}
	assert.Equal(t, winners[0], winners[1])
}

func TestFinalizeIgnoresTxNonce(t *testing.T) {
	opts := testOptions()
	opts.Entropy[pty.SourcePRNG] = PRNGEntropy{}
	draw := func(finalizeNonce int64) *pty.Raffle {
		env := newTestEnv(t, opts, host.WithSecret([]byte("node secret")))
		env.seqNonce = true
		id := env.activeRaffle(true)
		for _, b := range []string{alice, bob, carol} {
			env.mint(b, 100*types.Coin)
			_, err := env.send(b, pty.CreateRaffleBuyTx(id, 2))
			require.NoError(t, err)
		}
		_, err := env.sendNonce(alice, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG), finalizeNonce)
		require.NoError(t, err)
		return env.raffle(id)
	}
	want := draw(1000)
	assert.Equal(t, int32(pty.RaffleFinalized), want.Status)
	for nonce := int64(1001); nonce < 1020; nonce++ {
		got := draw(nonce)
		assert.Equal(t, want.WinningIndex, got.WinningIndex, "nonce %d", nonce)
		assert.Equal(t, want.Winner, got.Winner, "nonce %d", nonce)
	}
}

func TestClaim(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	env.mint(alice, 100*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 5))
	require.NoError(t, err)

	_, err = env.send(alice, pty.CreateRaffleClaimTx(id))
	assert.True(t, errors.Is(err, pty.ErrAlreadyClaimed))

	_, err = env.send(bob, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	require.NoError(t, err)
	assert.Equal(t, alice, env.raffle(id).Winner)

	// anyone may claim on the winner's behalf, the prize goes to the winner
	receipt, err := env.send(bob, pty.CreateRaffleClaimTx(id))
	require.NoError(t, err)
	event := lastEvent(t, receipt)
	assert.Equal(t, 100*types.Coin, event.Amount)
	assert.Equal(t, 150*types.Coin, env.balance(alice))
	assert.Equal(t, int64(0), env.balance(bob))
	assert.Equal(t, int32(pty.RaffleClaimed), env.raffle(id).Status)
	env.checkCustody(id)

	_, err = env.send(alice, pty.CreateRaffleClaimTx(id))
	assert.True(t, errors.Is(err, pty.ErrAlreadyClaimed))
	assert.Equal(t, 150*types.Coin, env.balance(alice))
}

func TestClaimByWinnerOnly(t *testing.T) {
	opts := testOptions()
	opts.ClaimByWinnerOnly = true
	env := newTestEnv(t, opts)
	id := env.activeRaffle(true)
	env.mint(alice, 100*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
	_, err = env.send(bob, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	require.NoError(t, err)

	_, err = env.send(bob, pty.CreateRaffleClaimTx(id))
	assert.True(t, errors.Is(err, pty.ErrUnauthorized))
	_, err = env.send(alice, pty.CreateRaffleClaimTx(id))
	require.NoError(t, err)
	assert.Equal(t, 190*types.Coin, env.balance(alice))
}

func TestCancel(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	env.mint(alice, 100*types.Coin)
	env.mint(bob, 100*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 2))
	require.NoError(t, err)
	_, err = env.send(bob, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
	env.checkCustody(id)

	_, err = env.send(alice, pty.CreateRaffleCancelTx(id))
	assert.True(t, errors.Is(err, pty.ErrUnauthorized))

	_, err = env.send(creator, pty.CreateRaffleCancelTx(id))
	require.NoError(t, err)
	assert.Equal(t, 1000*types.Coin, env.balance(creator))
	assert.Equal(t, 100*types.Coin, env.balance(alice))
	assert.Equal(t, 100*types.Coin, env.balance(bob))
	assert.Equal(t, int64(0), env.balance(CustodyAddress(id)))
	assert.Equal(t, int32(pty.RaffleCancelled), env.raffle(id).Status)
	env.checkCustody(id)

	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
	_, err = env.send(alice, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
	_, err = env.send(alice, pty.CreateRaffleClaimTx(id))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
	_, err = env.send(creator, pty.CreateRaffleCancelTx(id))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateForCancellation))
}

func TestCancelBeforeDeposit(t *testing.T) {
	env := newTestEnv(t, testOptions())
	env.mint(creator, 1000*types.Coin)
	id := env.create(creator, defaultCreate(true))
	_, err := env.send(creator, pty.CreateRaffleCancelTx(id))
	require.NoError(t, err)
	assert.Equal(t, 1000*types.Coin, env.balance(creator))
	_, err = env.send(creator, pty.CreateRaffleDepositTx(id))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateTransition))
}

func TestCancelAfterFinalize(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	env.mint(alice, 100*types.Coin)
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.NoError(t, err)
	_, err = env.send(alice, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	require.NoError(t, err)
	_, err = env.send(creator, pty.CreateRaffleCancelTx(id))
	assert.True(t, errors.Is(err, pty.ErrInvalidStateForCancellation))
	env.checkCustody(id)
}

func TestRaffleNotFound(t *testing.T) {
	env := newTestEnv(t, testOptions())
	_, err := env.send(creator, pty.CreateRaffleDepositTx(7))
	assert.True(t, errors.Is(err, pty.ErrRaffleNotFound))
	_, err = env.exec.Query(pty.RaffleX, pty.FuncNameGetRaffle, types.Encode(&pty.ReqRaffle{RaffleID: 7}))
	assert.True(t, errors.Is(err, pty.ErrRaffleNotFound))
}

func TestRoundTrip(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	buyers := []string{alice, bob, carol}
	for _, b := range buyers {
		env.mint(b, 100*types.Coin)
	}
	for i, b := range buyers {
		_, err := env.send(b, pty.CreateRaffleBuyTx(id, int64(i%2+1)))
		require.NoError(t, err)
		env.checkCustody(id)
	}
	_, err := env.send(alice, pty.CreateRaffleFinalizeTx(id, pty.SourcePRNG))
	require.NoError(t, err)
	r := env.raffle(id)
	_, err = env.send(r.Winner, pty.CreateRaffleClaimTx(id))
	require.NoError(t, err)
	env.checkCustody(id)

	r = env.raffle(id)
	assert.Equal(t, int32(pty.RaffleClaimed), r.Status)
	tickets := env.tickets(id)
	require.Len(t, tickets, 4)
	for i, ticket := range tickets {
		assert.Equal(t, int64(i), ticket.Index)
	}
	// prize conservation: everything the creator and buyers lost is in custody or with the winner
	total := env.balance(creator) + env.balance(alice) + env.balance(bob) + env.balance(carol) + env.balance(CustodyAddress(id))
	assert.Equal(t, 1300*types.Coin, total)

	assert.Equal(t, []string{
		pty.EventRaffleCreated, pty.EventPrizeDeposited,
		pty.EventTicketPurchased, pty.EventTicketPurchased, pty.EventTicketPurchased,
		pty.EventRaffleFinalized, pty.EventPrizeClaimed,
	}, env.rec.Kinds())

	state, err := Replay(env.rec.Events())
	require.NoError(t, err)
	assert.Equal(t, r, state.Raffles[id])
	assert.Equal(t, tickets, state.Tickets[id])
}

func TestLocalIndex(t *testing.T) {
	env := newTestEnv(t, testOptions())
	first := env.activeRaffle(true)
	second := env.create(creator, defaultCreate(true))
	third := env.create(alice, defaultCreate(true))
	env.mint(bob, 100*types.Coin)
	_, err := env.send(bob, pty.CreateRaffleBuyTx(first, 2))
	require.NoError(t, err)

	list := func(funcName string, req *pty.ReqRaffleList) *pty.ReplyRaffleList {
		reply, err := env.exec.Query(pty.RaffleX, funcName, types.Encode(req))
		require.NoError(t, err)
		return reply.(*pty.ReplyRaffleList)
	}
	ids := func(reply *pty.ReplyRaffleList) (ids []int64) {
		for _, r := range reply.Raffles {
			ids = append(ids, r.ID)
		}
		return ids
	}

	assert.Equal(t, []int64{first}, ids(list(pty.FuncNameListRafflesByStatus, &pty.ReqRaffleList{Status: pty.RaffleActive})))
	assert.Equal(t, []int64{second, third}, ids(list(pty.FuncNameListRafflesByStatus, &pty.ReqRaffleList{Status: pty.RaffleCreated, Direction: dbm.ListASC})))
	assert.Equal(t, []int64{second, first}, ids(list(pty.FuncNameListRafflesByCreator, &pty.ReqRaffleList{Addr: creator})))
	assert.Equal(t, []int64{third}, ids(list(pty.FuncNameListRafflesByCreator, &pty.ReqRaffleList{Addr: alice})))

	page := list(pty.FuncNameListRafflesByStatus, &pty.ReqRaffleList{Status: pty.RaffleCreated, Count: 1, Direction: dbm.ListASC})
	assert.Equal(t, []int64{second}, ids(page))
	page = list(pty.FuncNameListRafflesByStatus, &pty.ReqRaffleList{Status: pty.RaffleCreated, Count: 1, Direction: dbm.ListASC, PrimaryKey: page.PrimaryKey})
	assert.Equal(t, []int64{third}, ids(page))

	_, err = env.send(creator, pty.CreateRaffleCancelTx(second))
	require.NoError(t, err)
	assert.Equal(t, []int64{third}, ids(list(pty.FuncNameListRafflesByStatus, &pty.ReqRaffleList{Status: pty.RaffleCreated})))
	assert.Equal(t, []int64{second}, ids(list(pty.FuncNameListRafflesByStatus, &pty.ReqRaffleList{Status: pty.RaffleCancelled})))

	reply, err := env.exec.Query(pty.RaffleX, pty.FuncNameListTicketsByBuyer, types.Encode(&pty.ReqRaffleList{Addr: bob, Direction: dbm.ListASC}))
	require.NoError(t, err)
	tickets := reply.(*pty.ReplyTicketList).Tickets
	require.Len(t, tickets, 2)
	assert.Equal(t, int64(0), tickets[0].Index)
	assert.Equal(t, int64(1), tickets[1].Index)

	_, err = env.exec.Query(pty.RaffleX, pty.FuncNameListRafflesByStatus, types.Encode(&pty.ReqRaffleList{Status: 42}))
	assert.True(t, errors.Is(err, types.ErrInvalidParam))
}

func TestQueryJSON(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.create(creator, defaultCreate(true))
	reply, err := env.exec.QueryJSON(pty.RaffleX, pty.FuncNameGetRaffle, []byte(`{"raffleId":0}`))
	require.NoError(t, err)
	assert.Equal(t, id, reply.(*pty.Raffle).ID)
	_, err = env.exec.QueryJSON(pty.RaffleX, "NoSuchQuery", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
}

func TestEventsOnlyOnCommit(t *testing.T) {
	env := newTestEnv(t, testOptions())
	id := env.activeRaffle(true)
	before := len(env.rec.Events())
	_, err := env.send(alice, pty.CreateRaffleBuyTx(id, 0))
	require.Error(t, err)
	_, err = env.send(alice, pty.CreateRaffleBuyTx(id, 1))
	require.Error(t, err)
	assert.Len(t, env.rec.Events(), before)
}

func TestStatusGauge(t *testing.T) {
	env := newTestEnv(t, testOptions())
	first := env.activeRaffle(true)
	g, err := NewStatusGauge(env.exec)
	require.NoError(t, err)
	env.exec.AddObserver(NewEventEmitter(g))
	assert.Equal(t, 1, g.Count(pty.RaffleActive))

	env.create(creator, defaultCreate(true))
	assert.Equal(t, 1, g.Count(pty.RaffleCreated))
	_, err = env.send(creator, pty.CreateRaffleCancelTx(first))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Count(pty.RaffleActive))
	assert.Equal(t, 1, g.Count(pty.RaffleCancelled))
}
