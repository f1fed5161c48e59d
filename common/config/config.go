// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config toml 配置文件加载
package config

import (
	tml "github.com/BurntSushi/toml"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

//Load read path over the defaults
func Load(path string) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if _, err := tml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

//LoadString same as Load for an in-memory config
func LoadString(data string) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if _, err := tml.Decode(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

//Init panics on a malformed or missing file
func Init(path string) *types.Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
