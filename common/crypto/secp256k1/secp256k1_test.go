// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secp256k1

import (
	"testing"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var driver Driver

func TestSignAndVerify(t *testing.T) {
	priv, err := driver.GenKey()
	require.NoError(t, err)
	msg := []byte("raffle create")
	sig := priv.Sign(msg)
	assert.False(t, sig.IsZero())
	assert.True(t, priv.PubKey().VerifyBytes(msg, sig))
	assert.False(t, priv.PubKey().VerifyBytes([]byte("raffle cancel"), sig))

	sig2, err := driver.SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.True(t, sig.Equals(sig2))
	assert.True(t, priv.PubKey().VerifyBytes(msg, sig2))
}

func TestPrivKeyFromBytes(t *testing.T) {
	priKeyBYte, err := common.FromHex("c34b5d9d44ac7b754806f761d3d4d2c4fe5214f6b074c19f069c4f5c2a29c8cc")
	require.NoError(t, err)
	priv, err := driver.PrivKeyFromBytes(priKeyBYte)
	require.NoError(t, err)
	assert.Equal(t, priKeyBYte, priv.Bytes())
	assert.Len(t, priv.PubKey().Bytes(), 33)

	pub, err := driver.PubKeyFromBytes(priv.PubKey().Bytes())
	require.NoError(t, err)
	assert.True(t, pub.Equals(priv.PubKey()))

	_, err = driver.PrivKeyFromBytes(priKeyBYte[:31])
	assert.Error(t, err)
	_, err = driver.PubKeyFromBytes(priKeyBYte)
	assert.Error(t, err)
}

func TestRegistered(t *testing.T) {
	c, err := crypto.New(Name)
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, int32(ID), crypto.GetType(Name))
	_, err = crypto.NewByType(ID)
	assert.NoError(t, err)
	_, err = crypto.New("none")
	assert.Error(t, err)
}
