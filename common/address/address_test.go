// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"testing"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/crypto/secp256k1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkeyToAddress(t *testing.T) {
	priKeyBYte, err := common.FromHex("c34b5d9d44ac7b754806f761d3d4d2c4fe5214f6b074c19f069c4f5c2a29c8cc")
	require.NoError(t, err)
	priv, err := secp256k1.Driver{}.PrivKeyFromBytes(priKeyBYte)
	require.NoError(t, err)
	addr := PubKeyToAddress(priv.PubKey().Bytes()).String()
	assert.Equal(t, "1Q8hGLfoGe63efeWa8fJ4Pnukhkngt6poK", addr)
	require.NoError(t, CheckAddress(addr))

	parsed, err := NewAddrFromString(addr)
	require.NoError(t, err)
	assert.Equal(t, PubKeyToAddress(priv.PubKey().Bytes()).Hash160, parsed.Hash160)
}

func TestCheckAddress(t *testing.T) {
	assert.Equal(t, ErrDecode, CheckAddress(""))
	assert.Error(t, CheckAddress("1Q8hGLfoGe63"))
	assert.Equal(t, ErrCheckSum, CheckAddress("1Q8hGLfoGe63efeWa8fJ4Pnukhkngt6poL"))
}

func TestExecAddress(t *testing.T) {
	a1 := ExecAddress("raffle")
	assert.NoError(t, CheckAddress(a1))
	assert.Equal(t, a1, ExecAddress("raffle"))
	assert.NotEqual(t, a1, ExecAddress("raffle.escrow.0"))
	assert.Panics(t, func() {
		ExecPubKey(string(make([]byte, MaxExecNameLength+1)))
	})
}

func BenchmarkExecAddress(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ExecAddress("raffle")
	}
}
