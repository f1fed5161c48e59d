// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system 系统插件
package system

import (
	_ "github.com/33cn/raffle/system/dapp/init" //register dapps
)
