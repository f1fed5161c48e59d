// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types records, receipts, transactions and configuration shared
// by the executor, the dapps and the rpc layer
package types

import (
	"go.dedis.ch/protobuf"
)

//Encode  编码
func Encode(data interface{}) []byte {
	b, err := protobuf.Encode(data)
	if err != nil {
		panic(err)
	}
	return b
}

//Decode  解码
func Decode(data []byte, msg interface{}) error {
	return protobuf.Decode(data, msg)
}

//KeyValue 状态数据库中的一个kv
type KeyValue struct {
	Key   []byte
	Value []byte
}

//ReceiptLog 一条执行日志
type ReceiptLog struct {
	Ty  int32
	Log []byte
}

//Receipt 执行结果
type Receipt struct {
	Ty   int32
	KV   []*KeyValue
	Logs []*ReceiptLog
}

//Append merge another receipt into r
func (r *Receipt) Append(r2 *Receipt) {
	if r2 == nil {
		return
	}
	r.KV = append(r.KV, r2.KV...)
	r.Logs = append(r.Logs, r2.Logs...)
}

//ReceiptDataResult 日志的可读形式
type ReceiptDataResult struct {
	Ty     int32               `json:"ty"`
	TyName string              `json:"tyName"`
	Logs   []*ReceiptLogResult `json:"logs"`
}

//ReceiptLogResult 日志的可读形式
type ReceiptLogResult struct {
	Ty     int32       `json:"ty"`
	TyName string      `json:"tyName"`
	Log    interface{} `json:"log"`
	RawLog string      `json:"rawLog"`
}

//Account 账户
type Account struct {
	Balance int64  `json:"balance"`
	Frozen  int64  `json:"frozen"`
	Addr    string `json:"addr"`
}

//GetBalance nil safe
func (acc *Account) GetBalance() int64 {
	if acc == nil {
		return 0
	}
	return acc.Balance
}

//ReceiptAccountTransfer 账户余额变化
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}
