// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/types"
)

// LocalDB read view of the local index. Keys live in the node db beside the
// state, under the LODB- prefix.
type LocalDB struct {
	db   dbm.DB
	list *dbm.ListHelper
}

// NewLocalDB new local db
func NewLocalDB(db dbm.DB) *LocalDB {
	return &LocalDB{db: db, list: dbm.NewListHelper(db)}
}

// Get get value from local db
func (l *LocalDB) Get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key)
	if err == dbm.ErrNotFoundInDb || (err == nil && value == nil) {
		return nil, types.ErrNotFound
	}
	return value, err
}

// List values under prefix, strictly after key, count <= 0 means all
func (l *LocalDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	values := l.list.List(prefix, key, count, direction)
	if len(values) == 0 {
		return nil, types.ErrNotFound
	}
	return values, nil
}
