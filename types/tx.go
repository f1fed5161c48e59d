// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/common/crypto"
	// signature drivers
	_ "github.com/33cn/raffle/common/crypto/secp256k1"
)

//Signature 签名
type Signature struct {
	Ty        int32
	Pubkey    []byte
	Signature []byte
}

//Transaction one action for one executor. Caller is only honoured by a
//trusted authorizer; signed transactions derive the caller from Signature.
type Transaction struct {
	Execer    []byte
	Payload   []byte
	Signature *Signature
	Nonce     int64
	Caller    string
}

//Hash 交易的hash不包含签名
func (tx *Transaction) Hash() []byte {
	copytx := *tx
	copytx.Signature = nil
	return common.Sha256(Encode(&copytx))
}

//Size 交易大小
func (tx *Transaction) Size() int {
	return len(Encode(tx))
}

//Sign 交易签名
func (tx *Transaction) Sign(ty int32, priv crypto.PrivKey) {
	tx.Signature = nil
	data := Encode(tx)
	pub := priv.PubKey()
	sign := priv.Sign(data)
	tx.Signature = &Signature{
		Ty:        ty,
		Pubkey:    pub.Bytes(),
		Signature: sign.Bytes(),
	}
}

//CheckSign 验证签名
func (tx *Transaction) CheckSign() bool {
	if tx.Signature == nil {
		return false
	}
	copytx := *tx
	copytx.Signature = nil
	data := Encode(&copytx)
	return CheckSign(data, tx.Signature)
}

//From 交易from地址
func (tx *Transaction) From() string {
	if tx.Signature == nil {
		return ""
	}
	return address.PubKeyToAddress(tx.Signature.Pubkey).String()
}

//JSON hex encoded form for logs and the cli
func (tx *Transaction) JSON() string {
	type txjson struct {
		Execer    string `json:"execer"`
		Payload   string `json:"payload"`
		Nonce     int64  `json:"nonce"`
		Caller    string `json:"caller,omitempty"`
		From      string `json:"from,omitempty"`
		Hash      string `json:"hash"`
		Signature string `json:"signature,omitempty"`
	}
	t := &txjson{
		Execer:  string(tx.Execer),
		Payload: common.ToHex(tx.Payload),
		Nonce:   tx.Nonce,
		Caller:  tx.Caller,
		From:    tx.From(),
		Hash:    common.ToHex(tx.Hash()),
	}
	if tx.Signature != nil {
		t.Signature = common.ToHex(tx.Signature.Signature)
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

//CheckSign 验证签名
func CheckSign(data []byte, sign *Signature) bool {
	c, err := crypto.NewByType(sign.Ty)
	if err != nil {
		return false
	}
	pub, err := c.PubKeyFromBytes(sign.Pubkey)
	if err != nil {
		return false
	}
	signbytes, err := c.SignatureFromBytes(sign.Signature)
	if err != nil {
		return false
	}
	return pub.VerifyBytes(data, signbytes)
}

var (
	nonceMu   sync.Mutex
	nonceRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

//RandNonce random tx nonce from one process wide source
func RandNonce() int64 {
	nonceMu.Lock()
	defer nonceMu.Unlock()
	return nonceRand.Int63()
}
