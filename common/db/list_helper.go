// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"

	log "github.com/inconshreveable/log15"
)

//ListHelper paged reads over an IteratorDB
type ListHelper struct {
	db IteratorDB
}

var listlog = log.New("module", "db.ListHelper")

//NewListHelper new
func NewListHelper(db IteratorDB) *ListHelper {
	return &ListHelper{db}
}

//const
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

//PrefixScan 前缀
func (db *ListHelper) PrefixScan(prefix []byte) (values [][]byte) {
	return db.IteratorScanFromFirst(prefix, 0)
}

//List values under prefix, starting strictly after key in the given
//direction. An empty key starts at the first (ASC) or last (DESC) entry.
//count <= 0 means no limit.
func (db *ListHelper) List(prefix, key []byte, count, direction int32) (values [][]byte) {
	if len(key) == 0 {
		if direction == ListASC {
			return db.IteratorScanFromFirst(prefix, count)
		}
		return db.IteratorScanFromLast(prefix, count)
	}
	return db.IteratorScan(prefix, key, count, direction)
}

//IteratorScan 迭代
func (db *ListHelper) IteratorScan(prefix []byte, key []byte, count int32, direction int32) (values [][]byte) {
	it := db.db.Iterator(prefix, direction == ListDESC)
	defer it.Close()

	ok := it.Seek(key)
	if ok && bytes.Equal(it.Key(), key) {
		ok = it.Next()
	}
	return collect(it, ok, count)
}

//IteratorScanFromFirst 从头迭代
func (db *ListHelper) IteratorScanFromFirst(prefix []byte, count int32) (values [][]byte) {
	it := db.db.Iterator(prefix, false)
	defer it.Close()
	return collect(it, it.Rewind(), count)
}

//IteratorScanFromLast 从尾迭代
func (db *ListHelper) IteratorScanFromLast(prefix []byte, count int32) (values [][]byte) {
	it := db.db.Iterator(prefix, true)
	defer it.Close()
	return collect(it, it.Rewind(), count)
}

//KeyValues key and value pairs under prefix, ascending
func (db *ListHelper) KeyValues(prefix []byte) (keys [][]byte, values [][]byte) {
	it := db.db.Iterator(prefix, false)
	defer it.Close()
	for ok := it.Rewind(); ok; ok = it.Next() {
		keys = append(keys, cloneByte(it.Key()))
		values = append(values, it.ValueCopy())
	}
	if it.Error() != nil {
		listlog.Error("KeyValues", "error", it.Error())
		return nil, nil
	}
	return keys, values
}

func collect(it Iterator, ok bool, count int32) (values [][]byte) {
	var i int32
	for ; ok; ok = it.Next() {
		value := it.ValueCopy()
		if it.Error() != nil {
			listlog.Error("collect it.Value()", "error", it.Error())
			return nil
		}
		values = append(values, value)
		i++
		if count > 0 && i == count {
			break
		}
	}
	return values
}
