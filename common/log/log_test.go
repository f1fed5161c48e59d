// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/33cn/raffle/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, getLevel("debug"))
	assert.Equal(t, log15.LvlInfo, getLevel("info"))
	assert.Equal(t, log15.LvlError, getLevel("eror"))
	assert.Equal(t, log15.LvlError, getLevel("nonsense"))
}

func TestSetFileLog(t *testing.T) {
	file := filepath.Join(t.TempDir(), "raffle.log")
	SetFileLog(&types.Log{
		Loglevel:        "info",
		LogConsoleLevel: "crit",
		LogFile:         file,
		MaxFileSize:     1,
	})
	defer SetLogLevel("crit")

	rlog := New("module", "log.test")
	rlog.Debug("hidden", "k", 1)
	rlog.Info("CreateRaffle", "raffleID", 7)
	Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "CreateRaffle"))
	assert.True(t, strings.Contains(out, "raffleID=7"))
	assert.True(t, strings.Contains(out, "module=log.test"))
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestFillDefault(t *testing.T) {
	cfg := &types.Log{}
	fillDefaultValue(cfg)
	assert.Equal(t, "eror", cfg.Loglevel)
	assert.Equal(t, "eror", cfg.LogConsoleLevel)
}
