// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/raffle/common"
	dbm "github.com/33cn/raffle/common/db"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

// Registry raffle records by id, ids allocated from 0
type Registry struct {
	db dbm.KV
}

// NewRegistry new
func NewRegistry(db dbm.KV) *Registry {
	return &Registry{db: db}
}

// NextID the id the next AllocateID returns
func (r *Registry) NextID() (int64, error) {
	value, err := r.db.Get(calcNextIDKey())
	if err == types.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return common.BytesToInt64(value), nil
}

// AllocateID take the next id
func (r *Registry) AllocateID() (int64, *types.KeyValue, error) {
	id, err := r.NextID()
	if err != nil {
		return 0, nil, err
	}
	kv := &types.KeyValue{Key: calcNextIDKey(), Value: common.Int64ToBytes(id + 1)}
	if err := r.db.Set(kv.Key, kv.Value); err != nil {
		return 0, nil, err
	}
	return id, kv, nil
}

// Get load raffle id
func (r *Registry) Get(raffleID int64) (*pty.Raffle, error) {
	value, err := r.db.Get(calcRaffleKey(raffleID))
	if err == types.ErrNotFound {
		return nil, errors.Wrapf(pty.ErrRaffleNotFound, "raffle %d", raffleID)
	}
	if err != nil {
		rlog.Error("Registry.Get", "raffleID", raffleID, "err", err)
		return nil, err
	}
	var raffle pty.Raffle
	if err := types.Decode(value, &raffle); err != nil {
		rlog.Error("Registry.Get decode", "raffleID", raffleID, "err", err)
		return nil, err
	}
	return &raffle, nil
}

// Put save raffle
func (r *Registry) Put(raffle *pty.Raffle) (*types.KeyValue, error) {
	kv := &types.KeyValue{Key: calcRaffleKey(raffle.ID), Value: types.Encode(raffle)}
	if err := r.db.Set(kv.Key, kv.Value); err != nil {
		return nil, err
	}
	return kv, nil
}
