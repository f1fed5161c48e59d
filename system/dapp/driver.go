// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp the executor driver framework. A dapp embeds DriverBase,
// calls SetChild with itself and implements Exec_<Action>,
// ExecLocal_<Action> and Query_<Name> methods, found by reflection.
package dapp

import (
	"reflect"

	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
)

//LocalDB read view of the local index db handed to drivers.
//Writes go back to the executor as a LocalDBSet.
type LocalDB interface {
	Get(key []byte) ([]byte, error)
	List(prefix, key []byte, count, direction int32) ([][]byte, error)
}

// Driver defines some interface
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	SetLocalDB(LocalDB)
	GetLocalDB() LocalDB
	SetEnv(height, blocktime int64)
	SetTxEnv(from string, txHash []byte)
	SetRandSeed(seed []byte)
	GetHeight() int64
	GetBlockTime() int64
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	GetName() string
	GetActionName(tx *types.Transaction) string
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error)
	Query(funcName string, params []byte) (interface{}, error)
	GetFuncMap() map[string]reflect.Method
	GetExecutorType() types.ExecutorType
}

// DriverBase defines driverbase type
type DriverBase struct {
	statedb    dbm.KV
	localdb    LocalDB
	height     int64
	blocktime  int64
	from       string
	txHash     []byte
	randSeed   []byte
	name       string
	child      Driver
	childValue reflect.Value
	ety        types.ExecutorType
}

// GetExecutorType defines get executortype function
func (d *DriverBase) GetExecutorType() types.ExecutorType {
	return d.ety
}

// SetExecutorType set exectortype
func (d *DriverBase) SetExecutorType(e types.ExecutorType) {
	d.ety = e
}

// GetFuncMap defines get execfuncmap function
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	if d.child == nil {
		return nil
	}
	return d.child.GetFuncMap()
}

// SetChild defines set child function
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
}

// SetEnv set the height and time of the block the tx executes in
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

// SetTxEnv set the authorized caller and hash of the running tx
func (d *DriverBase) SetTxEnv(from string, txHash []byte) {
	d.from = from
	d.txHash = txHash
}

// SetRandSeed set the executor seed of the running tx
func (d *DriverBase) SetRandSeed(seed []byte) {
	d.randSeed = seed
}

// GetRandSeed seed derived by the executor from its secret and the committed
// state before the running tx. The tx itself has no influence on it.
func (d *DriverBase) GetRandSeed() []byte {
	return d.randSeed
}

// GetFrom caller of the running tx
func (d *DriverBase) GetFrom() string {
	return d.from
}

// GetTxHash hash of the running tx
func (d *DriverBase) GetTxHash() []byte {
	return d.txHash
}

// GetHeight get height
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

// GetBlockTime get block time
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

// SetStateDB set state db
func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
}

// GetStateDB set state db
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// SetLocalDB set local db
func (d *DriverBase) SetLocalDB(db LocalDB) {
	d.localdb = db
}

// GetLocalDB return localdb
func (d *DriverBase) GetLocalDB() LocalDB {
	return d.localdb
}

// SetName set name
func (d *DriverBase) SetName(name string) {
	d.name = name
}

// GetName defines get name function
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

// GetActionName defines get action name
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	if d.ety == nil {
		return "unknown"
	}
	return d.ety.ActionName(tx)
}

// CheckTx  default:，tx.Execer must be the driver's name
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	if string(tx.Execer) != d.GetName() {
		return types.ErrExecNameNotAllow
	}
	if len(tx.Payload) > types.MaxTxSize {
		return types.ErrTxMsgSizeTooBig
	}
	return nil
}

// Exec call Exec_<Action> of the child
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	if d.ety == nil {
		return nil, types.ErrActionNotSupport
	}
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	funcmap := d.child.GetFuncMap()
	funcname := "Exec_" + name
	if _, ok := funcmap[funcname]; !ok {
		return nil, types.ErrActionNotSupport
	}
	valueret := funcmap[funcname].Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(index)})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	//参数1
	r1 := valueret[0].Interface()
	if r1 != nil {
		if r, ok := r1.(*types.Receipt); ok {
			receipt = r
		} else {
			return nil, types.ErrMethodReturnType
		}
	}
	//参数2
	r2 := valueret[1].Interface()
	err = nil
	if r2 != nil {
		if r, ok := r2.(error); ok {
			err = r
		} else {
			return nil, types.ErrMethodReturnType
		}
	}
	return receipt, err
}

// ExecLocal call ExecLocal_<Action> of the child. Drivers without one index nothing.
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set, err := d.callLocal("ExecLocal_", tx, receipt, index)
	if err == types.ErrActionNotSupport {
		return &types.LocalDBSet{}, nil
	}
	return set, err
}

func (d *DriverBase) callLocal(prefix string, tx *types.Transaction, receipt *types.ReceiptData, index int) (set *types.LocalDBSet, err error) {
	if d.ety == nil {
		return nil, types.ErrActionNotSupport
	}
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	//call action
	funcname := prefix + name
	funcmap := d.child.GetFuncMap()
	if _, ok := funcmap[funcname]; !ok {
		return nil, types.ErrActionNotSupport
	}
	valueret := funcmap[funcname].Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(receipt), reflect.ValueOf(index)})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	r1 := valueret[0].Interface()
	if r1 != nil {
		if r, ok := r1.(*types.LocalDBSet); ok {
			set = r
		} else {
			return nil, types.ErrMethodReturnType
		}
	}
	r2 := valueret[1].Interface()
	err = nil
	if r2 != nil {
		if r, ok := r2.(error); ok {
			err = r
		} else {
			return nil, types.ErrMethodReturnType
		}
	}
	return set, err
}
