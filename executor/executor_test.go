// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"reflect"
	"testing"

	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/common/crypto"
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/system/dapp"
	tokenexec "github.com/33cn/raffle/system/dapp/token/executor"
	tty "github.com/33cn/raffle/system/dapp/token/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = address.ExecAddress("test.addr1")
	addr2 = address.ExecAddress("test.addr2")
)

// testDriver writes before it fails, to check the rollback
type testDriver struct {
	dapp.DriverBase
}

func newTestDriver() dapp.Driver {
	d := &testDriver{}
	d.SetChild(d)
	d.SetExecutorType(tty.NewType())
	return d
}

func (d *testDriver) GetDriverName() string { return "test" }

func (d *testDriver) GetFuncMap() map[string]reflect.Method { return types.ListMethod(d) }

func (d *testDriver) Exec_Transfer(payload *tty.TokenTransfer, tx *types.Transaction, index int) (*types.Receipt, error) {
	kv := &types.KeyValue{Key: []byte("mavl-test-" + payload.To), Value: []byte(payload.Symbol)}
	if err := d.GetStateDB().Set(kv.Key, kv.Value); err != nil {
		return nil, err
	}
	if payload.Amount < 0 {
		return nil, types.ErrAmount
	}
	return &types.Receipt{Ty: types.ExecOk, KV: []*types.KeyValue{kv}}, nil
}

func (d *testDriver) ExecLocal_Transfer(payload *tty.TokenTransfer, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	if payload.Amount == 7 {
		return nil, types.ErrInvalidParam
	}
	return &types.LocalDBSet{KV: []*types.KeyValue{{Key: []byte("LODB-test-" + payload.To), Value: []byte("1")}}}, nil
}

func testTx(to string, amount int64) *types.Transaction {
	tx := tty.CreateTransferTx("usdt", to, amount)
	tx.Execer = []byte("test")
	tx.Caller = addr1
	return tx
}

func newTestExecutor(t *testing.T, db dbm.DB, opts ...Option) *Executor {
	opts = append([]Option{
		WithAuthorizer(TrustedAuthorizer{}),
		WithClock(NewFixedClock(100)),
		WithDriver("test", newTestDriver),
		WithDriver(tty.TokenX, tokenexec.NewDriverCreate(true)),
	}, opts...)
	e, err := New(db, opts...)
	require.NoError(t, err)
	return e
}

func memDB(t *testing.T) dbm.DB {
	db, err := dbm.NewGoMemDB("test", "", 0)
	require.NoError(t, err)
	return db
}

func TestExecTxCommit(t *testing.T) {
	db := memDB(t)
	var results []*TxResult
	e := newTestExecutor(t, db, WithObserver(ObserverFunc(func(r *TxResult) { results = append(results, r) })))

	receipt, err := e.ExecTx(testTx(addr2, 1))
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	assert.Equal(t, int64(1), e.Height())

	value, err := db.Get([]byte("mavl-test-" + addr2))
	require.NoError(t, err)
	assert.Equal(t, []byte("usdt"), value)
	value, err = db.Get([]byte("LODB-test-" + addr2))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].Height)
	assert.Equal(t, int64(100), results[0].BlockTime)
	assert.Equal(t, addr1, results[0].From)
	assert.Equal(t, "test", results[0].Execer)
	assert.Equal(t, "Transfer", results[0].Action)
}

func TestExecTxRollback(t *testing.T) {
	db := memDB(t)
	called := 0
	e := newTestExecutor(t, db, WithObserver(ObserverFunc(func(r *TxResult) { called++ })))

	_, err := e.ExecTx(testTx(addr2, -1))
	assert.Equal(t, types.ErrAmount, err)
	_, err = db.Get([]byte("mavl-test-" + addr2))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)

	_, err = e.ExecTx(testTx(addr2, 7))
	assert.Equal(t, types.ErrInvalidParam, err)
	_, err = db.Get([]byte("mavl-test-" + addr2))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)

	assert.Equal(t, int64(0), e.Height())
	assert.Equal(t, 0, called)

	// the overlay is clean for the next tx
	_, err = e.ExecTx(testTx(addr1+"x", 1))
	require.NoError(t, err)
	_, err = db.Get([]byte("mavl-test-" + addr2))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)
}

func TestExecTxUnknown(t *testing.T) {
	e := newTestExecutor(t, memDB(t))
	tx := testTx(addr2, 1)
	tx.Execer = []byte("nosuch")
	_, err := e.ExecTx(tx)
	assert.Equal(t, types.ErrExecNotFound, err)

	tx = testTx(addr2, 1)
	tx.Payload = types.Encode(&tty.TokenAction{Ty: 99})
	_, err = e.ExecTx(tx)
	assert.Equal(t, types.ErrActionNotSupport, err)
}

func TestTokenTransfer(t *testing.T) {
	e := newTestExecutor(t, memDB(t))
	tx := tty.CreateMintTx("usdt", addr1, 10*types.Coin)
	tx.Caller = addr1
	_, err := e.ExecTx(tx)
	require.NoError(t, err)

	tx = tty.CreateTransferTx("usdt", addr2, 4*types.Coin)
	tx.Caller = addr1
	_, err = e.ExecTx(tx)
	require.NoError(t, err)

	b, err := e.Balance("usdt", addr1)
	require.NoError(t, err)
	assert.Equal(t, 6*types.Coin, b)
	acc, err := e.Query(tty.TokenX, "Balance", types.Encode(&tty.ReqBalance{Symbol: "usdt", Addr: addr2}))
	require.NoError(t, err)
	assert.Equal(t, 4*types.Coin, acc.(*types.Account).Balance)

	tx = tty.CreateTransferTx("usdt", addr2, 40*types.Coin)
	tx.Caller = addr1
	_, err = e.ExecTx(tx)
	assert.Equal(t, types.ErrNoBalance, err)
}

func TestMintNotAllowed(t *testing.T) {
	e := newTestExecutor(t, memDB(t), WithDriver(tty.TokenX, tokenexec.NewDriverCreate(false)))
	tx := tty.CreateMintTx("usdt", addr1, 10*types.Coin)
	tx.Caller = addr1
	_, err := e.ExecTx(tx)
	assert.Equal(t, types.ErrMintNotAllowed, err)
}

func TestGenesis(t *testing.T) {
	db := memDB(t)
	e := newTestExecutor(t, db)
	mints := []*types.GenesisMint{{Symbol: "usdt", Addr: addr1, Amount: 5 * types.Coin}}
	require.NoError(t, e.Genesis(mints))
	require.NoError(t, e.Genesis(mints))
	b, err := e.Balance("usdt", addr1)
	require.NoError(t, err)
	assert.Equal(t, 5*types.Coin, b)

	err = newTestExecutor(t, memDB(t)).Genesis([]*types.GenesisMint{{Symbol: "usdt", Addr: addr1, Amount: 0}})
	assert.True(t, errors.Is(err, types.ErrAmount))
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := dbm.NewDB("state", dbm.GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	e := newTestExecutor(t, db)
	require.NoError(t, e.Genesis([]*types.GenesisMint{{Symbol: "usdt", Addr: addr1, Amount: 5 * types.Coin}}))
	_, err = e.ExecTx(testTx(addr2, 1))
	require.NoError(t, err)
	e.Close()

	db, err = dbm.NewDB("state", dbm.GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	e = newTestExecutor(t, db)
	defer e.Close()
	assert.Equal(t, int64(1), e.Height())
	b, err := e.Balance("usdt", addr1)
	require.NoError(t, err)
	assert.Equal(t, 5*types.Coin, b)
}

func TestSignatureAuthorizer(t *testing.T) {
	c, err := crypto.New("secp256k1")
	require.NoError(t, err)
	priv, err := c.GenKey()
	require.NoError(t, err)
	from := address.PubKeyToAddress(priv.PubKey().Bytes()).String()

	auth := SignatureAuthorizer{}
	tx := tty.CreateTransferTx("usdt", addr2, 1)
	_, err = auth.Authorize(tx)
	assert.Equal(t, types.ErrNoSignature, err)

	tx.Sign(crypto.GetType("secp256k1"), priv)
	caller, err := auth.Authorize(tx)
	require.NoError(t, err)
	assert.Equal(t, from, caller)

	// trusted authorizer still checks a signed tx
	caller, err = TrustedAuthorizer{}.Authorize(tx)
	require.NoError(t, err)
	assert.Equal(t, from, caller)

	tx.Nonce++
	_, err = auth.Authorize(tx)
	assert.Equal(t, types.ErrSign, err)

	tx.Sign(crypto.GetType("secp256k1"), priv)
	tx.Caller = addr1
	_, err = auth.Authorize(tx)
	assert.True(t, errors.Is(err, types.ErrSign))
}

func TestTrustedAuthorizer(t *testing.T) {
	tx := tty.CreateTransferTx("usdt", addr2, 1)
	tx.Caller = "not an address"
	_, err := TrustedAuthorizer{}.Authorize(tx)
	assert.True(t, errors.Is(err, types.ErrInvalidAddress))
	tx.Caller = addr1
	caller, err := TrustedAuthorizer{}.Authorize(tx)
	require.NoError(t, err)
	assert.Equal(t, addr1, caller)
}

func TestReplaySignedTx(t *testing.T) {
	c, err := crypto.New("secp256k1")
	require.NoError(t, err)
	priv, err := c.GenKey()
	require.NoError(t, err)
	from := address.PubKeyToAddress(priv.PubKey().Bytes()).String()

	dir := t.TempDir()
	db, err := dbm.NewDB("state", dbm.GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	e := newTestExecutor(t, db, WithAuthorizer(SignatureAuthorizer{}))
	require.NoError(t, e.Genesis([]*types.GenesisMint{{Symbol: "usdt", Addr: from, Amount: 10 * types.Coin}}))

	tx := tty.CreateTransferTx("usdt", addr2, 3*types.Coin)
	tx.Sign(crypto.GetType("secp256k1"), priv)
	_, err = e.ExecTx(tx)
	require.NoError(t, err)

	_, err = e.ExecTx(tx)
	assert.True(t, errors.Is(err, types.ErrTxExist), "%v", err)
	assert.Equal(t, int64(1), e.Height())
	b, err := e.Balance("usdt", addr2)
	require.NoError(t, err)
	assert.Equal(t, 3*types.Coin, b)

	// a failed tx is not recorded and may be sent again
	big := tty.CreateTransferTx("usdt", addr2, 20*types.Coin)
	big.Sign(crypto.GetType("secp256k1"), priv)
	_, err = e.ExecTx(big)
	assert.Equal(t, types.ErrNoBalance, err)
	_, err = e.ExecTx(big)
	assert.Equal(t, types.ErrNoBalance, err)
	e.Close()

	db, err = dbm.NewDB("state", dbm.GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	e = newTestExecutor(t, db, WithAuthorizer(SignatureAuthorizer{}))
	defer e.Close()
	_, err = e.ExecTx(tx)
	assert.True(t, errors.Is(err, types.ErrTxExist), "%v", err)
	b, err = e.Balance("usdt", from)
	require.NoError(t, err)
	assert.Equal(t, 7*types.Coin, b)
}

func TestRandSeed(t *testing.T) {
	dir := t.TempDir()
	db, err := dbm.NewDB("state", dbm.GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	e := newTestExecutor(t, db)
	secret := e.secret
	require.Len(t, secret, 32)
	before := e.randSeed(1)
	assert.Equal(t, before, e.randSeed(1))
	assert.NotEqual(t, before, e.randSeed(2))

	_, err = e.ExecTx(testTx(addr2, 1))
	require.NoError(t, err)
	after := e.randSeed(2)
	e.Close()

	db, err = dbm.NewDB("state", dbm.GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	e = newTestExecutor(t, db)
	defer e.Close()
	assert.Equal(t, secret, e.secret)
	assert.Equal(t, after, e.randSeed(2))

	other := newTestExecutor(t, memDB(t), WithSecret([]byte("other secret")))
	assert.NotEqual(t, other.randSeed(1), before)
}
