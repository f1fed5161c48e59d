// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor the hosting environment of the dapps. Transactions are
// executed one at a time; each one is a unit: its state writes, its local
// index writes and the new height reach the db in a single batch, or not at all.
package executor

import (
	"crypto/rand"
	"encoding/json"
	"sync"
	"time"

	"github.com/33cn/raffle/account"
	"github.com/33cn/raffle/common"
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/metrics"
	"github.com/33cn/raffle/system/dapp"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

var (
	heightKey    = []byte("executor-LastHeight")
	genesisKey   = []byte("executor-Genesis")
	secretKey    = []byte("executor-Secret")
	stateHashKey = []byte("executor-StateHash")
)

func calcTxKey(hash []byte) []byte {
	return append([]byte("executor-TxHash-"), hash...)
}

// Executor serial tx executor
type Executor struct {
	mu        sync.Mutex
	db        dbm.DB
	state     *StateDB
	local     *LocalDB
	height    int64
	secret    []byte
	stateHash []byte
	clock     Clock
	auth      Authorizer
	observers []Observer
	drivers   map[string]dapp.DriverCreate
}

// Option executor option
type Option func(*Executor)

// WithClock block time source
func WithClock(c Clock) Option {
	return func(e *Executor) {
		e.clock = c
	}
}

// WithAuthorizer caller identity source
func WithAuthorizer(a Authorizer) Option {
	return func(e *Executor) {
		e.auth = a
	}
}

// WithObserver add a commit observer
func WithObserver(o Observer) Option {
	return func(e *Executor) {
		e.observers = append(e.observers, o)
	}
}

// WithSecret fixed executor secret, used instead of the one stored in the db
func WithSecret(secret []byte) Option {
	return func(e *Executor) {
		e.secret = secret
	}
}

// WithDriver use create for execer name instead of the global registry
func WithDriver(name string, create dapp.DriverCreate) Option {
	return func(e *Executor) {
		e.drivers[name] = create
	}
}

// New executor over db, resuming from the persisted height
func New(db dbm.DB, opts ...Option) (*Executor, error) {
	e := &Executor{
		db:      db,
		state:   NewStateDB(db),
		local:   NewLocalDB(db),
		clock:   SystemClock{},
		auth:    SignatureAuthorizer{},
		drivers: make(map[string]dapp.DriverCreate),
	}
	for _, opt := range opts {
		opt(e)
	}
	value, err := db.Get(heightKey)
	if err != nil && err != dbm.ErrNotFoundInDb {
		return nil, errors.Wrap(err, "load height")
	}
	e.height = common.BytesToInt64(value)
	e.stateHash, err = db.Get(stateHashKey)
	if err != nil && err != dbm.ErrNotFoundInDb {
		return nil, errors.Wrap(err, "load state hash")
	}
	if e.secret == nil {
		if e.secret, err = loadSecret(db); err != nil {
			return nil, err
		}
	}
	elog.Info("executor start", "height", e.height, "stateHash", common.ToHex(e.stateHash))
	return e, nil
}

// loadSecret the node secret, created on first start and never exposed
func loadSecret(db dbm.DB) ([]byte, error) {
	secret, err := db.Get(secretKey)
	if err == nil && len(secret) > 0 {
		return secret, nil
	}
	if err != nil && err != dbm.ErrNotFoundInDb {
		return nil, errors.Wrap(err, "load secret")
	}
	secret = make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "new secret")
	}
	batch := db.NewBatch(true)
	batch.Set(secretKey, secret)
	if err := batch.Write(); err != nil {
		return nil, errors.Wrap(err, "save secret")
	}
	return secret, nil
}

// randSeed sha256(secret | stateHash | height), fixed before the tx runs
func (e *Executor) randSeed(height int64) []byte {
	var buf []byte
	buf = append(buf, e.secret...)
	buf = append(buf, e.stateHash...)
	buf = append(buf, common.Int64ToBytes(height)...)
	return common.Sha256(buf)
}

// nextStateHash chain the committed tx and its state writes into the state hash
func nextStateHash(prev, txHash []byte, kvs []*types.KeyValue) []byte {
	var buf []byte
	buf = append(buf, prev...)
	buf = append(buf, txHash...)
	for _, kv := range kvs {
		buf = append(buf, kv.Key...)
		buf = append(buf, kv.Value...)
	}
	return common.Sha256(buf)
}

// AddObserver add a commit observer
func (e *Executor) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Height number of committed txs
func (e *Executor) Height() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

func (e *Executor) loadDriver(name string) (dapp.Driver, error) {
	if create, ok := e.drivers[name]; ok {
		return create(), nil
	}
	return dapp.LoadDriver(name)
}

// ExecTx authorize, execute and commit one tx
func (e *Executor) ExecTx(tx *types.Transaction) (*types.Receipt, error) {
	receipt, _, err := e.exec(tx)
	return receipt, err
}

// SendTx like ExecTx, returning what the observers see
func (e *Executor) SendTx(tx *types.Transaction) (*TxResult, error) {
	_, result, err := e.exec(tx)
	return result, err
}

func (e *Executor) exec(tx *types.Transaction) (*types.Receipt, *TxResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := time.Now()
	execer := string(tx.Execer)
	driver, err := e.loadDriver(execer)
	if err != nil {
		return nil, nil, err
	}
	action := driver.GetActionName(tx)
	receipt, result, err := e.execTx(driver, tx, action)
	metrics.RecordExec(execer, action, err, time.Since(start))
	return receipt, result, err
}

func (e *Executor) execTx(driver dapp.Driver, tx *types.Transaction, action string) (*types.Receipt, *TxResult, error) {
	from, err := e.auth.Authorize(tx)
	if err != nil {
		elog.Debug("ExecTx authorize", "execer", string(tx.Execer), "err", err)
		return nil, nil, err
	}
	if err := driver.CheckTx(tx, 0); err != nil {
		return nil, nil, err
	}
	hash := tx.Hash()
	if _, err := e.db.Get(calcTxKey(hash)); err == nil {
		elog.Debug("ExecTx duplicate", "execer", string(tx.Execer), "hash", common.ToHex(hash))
		return nil, nil, errors.Wrapf(types.ErrTxExist, "tx %s", common.ToHex(hash))
	} else if err != dbm.ErrNotFoundInDb {
		return nil, nil, err
	}
	height := e.height + 1
	blocktime := e.clock.Now()
	driver.SetStateDB(e.state)
	driver.SetLocalDB(e.local)
	driver.SetEnv(height, blocktime)
	driver.SetTxEnv(from, hash)
	driver.SetRandSeed(e.randSeed(height))

	e.state.Begin()
	receipt, err := driver.Exec(tx, 0)
	if err != nil {
		e.state.Rollback()
		elog.Debug("ExecTx", "execer", string(tx.Execer), "action", action, "from", from, "err", err)
		return nil, nil, err
	}
	if receipt == nil {
		receipt = &types.Receipt{Ty: types.ExecOk}
	}
	e.state.Commit()

	rdata := &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}
	set, err := driver.ExecLocal(tx, rdata, 0)
	if err != nil {
		e.state.Reset()
		elog.Error("ExecTx ExecLocal", "execer", string(tx.Execer), "action", action, "err", err)
		return nil, nil, err
	}
	batch := e.db.NewBatch(true)
	e.state.Flush(batch)
	if set != nil {
		for _, kv := range set.KV {
			if kv.Value == nil {
				batch.Delete(kv.Key)
			} else {
				batch.Set(kv.Key, kv.Value)
			}
		}
	}
	stateHash := nextStateHash(e.stateHash, hash, receipt.KV)
	batch.Set(calcTxKey(hash), common.Int64ToBytes(height))
	batch.Set(stateHashKey, stateHash)
	batch.Set(heightKey, common.Int64ToBytes(height))
	if err := batch.Write(); err != nil {
		elog.Error("ExecTx write", "height", height, "err", err)
		return nil, nil, err
	}
	e.height = height
	e.stateHash = stateHash
	elog.Info("ExecTx", "height", height, "execer", string(tx.Execer), "action", action, "from", from, "hash", common.ToHex(hash))

	result := &TxResult{
		Height:    height,
		BlockTime: blocktime,
		Hash:      hash,
		From:      from,
		Execer:    string(tx.Execer),
		Action:    action,
		Receipt:   rdata,
	}
	for _, o := range e.observers {
		o.OnCommit(result)
	}
	return receipt, result, nil
}

// Query call Query_<funcName> of execer with encoded params
func (e *Executor) Query(execer, funcName string, params []byte) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	driver, err := e.queryDriver(execer)
	if err != nil {
		return nil, err
	}
	return driver.Query(funcName, params)
}

// QueryJSON call Query_<funcName> of execer with json params
func (e *Executor) QueryJSON(execer, funcName string, params json.RawMessage) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	driver, err := e.queryDriver(execer)
	if err != nil {
		return nil, err
	}
	return dapp.QueryJSON(driver, funcName, params)
}

func (e *Executor) queryDriver(execer string) (dapp.Driver, error) {
	driver, err := e.loadDriver(execer)
	if err != nil {
		return nil, err
	}
	driver.SetStateDB(e.state)
	driver.SetLocalDB(e.local)
	driver.SetEnv(e.height, e.clock.Now())
	return driver, nil
}

// Genesis mint the configured balances, once, on an empty db
func (e *Executor) Genesis(mints []*types.GenesisMint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.db.Get(genesisKey); err == nil || e.height > 0 {
		return nil
	}
	for _, m := range mints {
		accdb, err := account.NewTokenDB(m.Symbol, e.state)
		if err != nil {
			e.state.Reset()
			return err
		}
		if _, err := accdb.Mint(m.Addr, m.Amount); err != nil {
			e.state.Reset()
			return errors.Wrapf(err, "genesis mint %s to %s", m.Symbol, m.Addr)
		}
		elog.Info("Genesis", "symbol", m.Symbol, "addr", m.Addr, "amount", types.FormatAmount(m.Amount))
	}
	batch := e.db.NewBatch(true)
	e.state.Flush(batch)
	batch.Set(genesisKey, []byte{1})
	return batch.Write()
}

// Balance token balance of addr as committed
func (e *Executor) Balance(symbol, addr string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	accdb, err := account.NewTokenDB(symbol, e.state)
	if err != nil {
		return 0, err
	}
	return accdb.Balance(addr), nil
}

// DecodeReceipt readable form of the receipt of an execer
func (e *Executor) DecodeReceipt(execer string, receipt *types.ReceiptData) (*types.ReceiptDataResult, error) {
	driver, err := e.loadDriver(execer)
	if err != nil {
		return nil, err
	}
	return types.DecodeReceipt(driver.GetExecutorType(), receipt)
}

// Close close the db
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.db.Close()
}
