// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"reflect"
)

//ReceiptData receipt as handed to ExecLocal and observers, KV not included
type ReceiptData struct {
	Ty   int32
	Logs []*ReceiptLog
}

//LocalDBSet local index writes produced by ExecLocal. A nil Value deletes the key.
type LocalDBSet struct {
	KV []*KeyValue
}

//LogInfo decoder for one receipt log ty
type LogInfo struct {
	Ty   reflect.Type
	Name string
}

//ExecutorType describes the actions and logs of one executor
type ExecutorType interface {
	GetName() string
	GetTypeMap() map[string]int32
	GetLogMap() map[int32]*LogInfo
	NewAction() interface{}
	DecodePayload(tx *Transaction) (interface{}, error)
	DecodePayloadValue(tx *Transaction) (string, reflect.Value, error)
	ActionName(tx *Transaction) string
	DecodeReceiptLog(log *ReceiptLog) (*ReceiptLogResult, error)
}

//ExecTypeBase implements ExecutorType given the action constructor and the maps
type ExecTypeBase struct {
	name      string
	newAction func() interface{}
	typemap   map[string]int32
	logmap    map[int32]*LogInfo
}

//NewExecTypeBase new
func NewExecTypeBase(name string, newAction func() interface{}, typemap map[string]int32, logmap map[int32]*LogInfo) *ExecTypeBase {
	return &ExecTypeBase{name: name, newAction: newAction, typemap: typemap, logmap: logmap}
}

//GetName executor name
func (base *ExecTypeBase) GetName() string {
	return base.name
}

//GetTypeMap action name -> ty
func (base *ExecTypeBase) GetTypeMap() map[string]int32 {
	return base.typemap
}

//GetLogMap log ty -> decoder
func (base *ExecTypeBase) GetLogMap() map[int32]*LogInfo {
	return base.logmap
}

//NewAction empty action
func (base *ExecTypeBase) NewAction() interface{} {
	return base.newAction()
}

//DecodePayload 解析tx的payload
func (base *ExecTypeBase) DecodePayload(tx *Transaction) (interface{}, error) {
	if len(tx.Payload) > MaxTxSize {
		return nil, ErrTxMsgSizeTooBig
	}
	action := base.newAction()
	if err := Decode(tx.Payload, action); err != nil {
		return nil, err
	}
	return action, nil
}

//DecodePayloadValue 解析tx的payload, 返回 action 名字和具体的 payload
func (base *ExecTypeBase) DecodePayloadValue(tx *Transaction) (string, reflect.Value, error) {
	action, err := base.DecodePayload(tx)
	if err != nil {
		return "", nilValue, err
	}
	name, _, val := GetActionValue(action, base.typemap)
	if IsNilVal(val) {
		return "", nilValue, ErrActionNotSupport
	}
	return name, val, nil
}

//ActionName 交易的action名字
func (base *ExecTypeBase) ActionName(tx *Transaction) string {
	name, _, err := base.DecodePayloadValue(tx)
	if err != nil {
		return "unknown"
	}
	return name
}

//DecodeReceiptLog 日志解析成可读形式
func (base *ExecTypeBase) DecodeReceiptLog(log *ReceiptLog) (*ReceiptLogResult, error) {
	result := &ReceiptLogResult{Ty: log.Ty, TyName: "LogReserved", RawLog: "0x"}
	info, ok := base.logmap[log.Ty]
	if !ok {
		info, ok = defaultLogMap[log.Ty]
	}
	if !ok {
		return result, nil
	}
	result.TyName = info.Name
	msg := reflect.New(info.Ty).Interface()
	if err := Decode(log.Log, msg); err != nil {
		return nil, err
	}
	result.Log = msg
	return result, nil
}

//CreateTx build an unsigned tx carrying action
func (base *ExecTypeBase) CreateTx(action interface{}, nonce int64) *Transaction {
	return &Transaction{Execer: []byte(base.name), Payload: Encode(action), Nonce: nonce}
}

var defaultLogMap = map[int32]*LogInfo{
	TyLogTransfer: {Ty: reflect.TypeOf(ReceiptAccountTransfer{}), Name: "LogTransfer"},
	TyLogMint:     {Ty: reflect.TypeOf(ReceiptAccountTransfer{}), Name: "LogMint"},
}

//DecodeReceipt all logs of a receipt in readable form
func DecodeReceipt(ety ExecutorType, receipt *ReceiptData) (*ReceiptDataResult, error) {
	result := &ReceiptDataResult{Ty: receipt.Ty, TyName: "ExecOk"}
	if receipt.Ty != ExecOk {
		result.TyName = "ExecErr"
	}
	for _, l := range receipt.Logs {
		lr, err := ety.DecodeReceiptLog(l)
		if err != nil {
			return nil, err
		}
		result.Logs = append(result.Logs, lr)
	}
	return result, nil
}

//PBToJSON json form of a query reply
func PBToJSON(msg interface{}) (json.RawMessage, error) {
	return json.Marshal(msg)
}
