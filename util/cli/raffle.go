// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli RunRaffle 加载各个模块，组合成 raffle 节点:
// db, executor with the registered dapp plugins, metrics and json-rpc.
// Run is the entry of the command line client.
package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/33cn/raffle/common/config"
	dbm "github.com/33cn/raffle/common/db"
	"github.com/33cn/raffle/common/limits"
	clog "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/metrics"
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/rpc"
	raffleexec "github.com/33cn/raffle/system/dapp/raffle/executor"
	"github.com/33cn/raffle/types"
)

var (
	configPath = flag.String("f", "", "configfile")
	datadir    = flag.String("datadir", "", "data dir of raffle, include logs and datas")
	versionCmd = flag.Bool("v", false, "version")
)

var log = clog.New("module", "main")

// RunRaffle run the node until SIGINT or SIGTERM
func RunRaffle(name string) {
	flag.Parse()
	if *versionCmd {
		fmt.Println(types.Version)
		return
	}
	if *configPath == "" {
		if name == "" {
			name = "raffle"
		}
		*configPath = name + ".toml"
	}
	cfg := types.DefaultConfig()
	if _, err := os.Stat(*configPath); err == nil {
		cfg = config.Init(*configPath)
	} else {
		log.Info("config file not found, using defaults", "path", *configPath)
	}
	if *datadir != "" {
		resetDatadir(cfg, *datadir)
	}
	clog.SetFileLog(cfg.Log)
	defer clog.Close()
	if err := limits.SetLimits(); err != nil {
		panic(err)
	}
	log.Info(cfg.Title+" version "+types.Version, "config", *configPath)

	node, err := newNode(cfg)
	if err != nil {
		log.Error("RunRaffle", "err", err)
		panic(err)
	}
	defer node.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	log.Info("RunRaffle stop", "signal", s)
}

type raffleNode struct {
	exec    *executor.Executor
	jrpc    *rpc.JSONRPCServer
	metrics interface{ Close() error }
}

func newNode(cfg *types.Config) (*raffleNode, error) {
	log.Info("loading db", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB("raffle", cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		return nil, err
	}

	log.Info("loading execs module", "plugins", pluginmgr.Names())
	pluginmgr.InitExec(cfg)
	var auth executor.Authorizer = executor.SignatureAuthorizer{}
	if cfg.RPC != nil && !cfg.RPC.EnableSignCheck {
		log.Warn("sign check disabled, tx caller is trusted")
		auth = executor.TrustedAuthorizer{}
	}
	exec, err := executor.New(db, executor.WithAuthorizer(auth))
	if err != nil {
		db.Close()
		return nil, err
	}
	node := &raffleNode{exec: exec}
	if cfg.Token != nil {
		if err := exec.Genesis(cfg.Token.Genesis); err != nil {
			node.Close()
			return nil, err
		}
	}
	gauge, err := raffleexec.NewStatusGauge(exec)
	if err != nil {
		node.Close()
		return nil, err
	}
	exec.AddObserver(raffleexec.NewEventEmitter(gauge, raffleexec.LogObserver{}))

	if srv := metrics.StartMetrics(cfg.Metrics); srv != nil {
		node.metrics = srv
	}

	log.Info("loading rpc module")
	node.jrpc, err = rpc.NewJSONRPCServer(cfg.RPC, exec)
	if err != nil {
		node.Close()
		return nil, err
	}
	if _, err := node.jrpc.Listen(); err != nil {
		node.Close()
		return nil, err
	}
	return node, nil
}

// Close close rpc, metrics, then the executor and its db
func (n *raffleNode) Close() {
	if n.jrpc != nil {
		log.Info("begin close rpc module")
		n.jrpc.Close()
	}
	if n.metrics != nil {
		log.Info("begin close metrics")
		if err := n.metrics.Close(); err != nil {
			log.Error("close metrics", "err", err)
		}
	}
	log.Info("begin close execs module")
	n.exec.Close()
}

func resetDatadir(cfg *types.Config, datadir string) {
	abs, err := filepath.Abs(datadir)
	if err != nil {
		panic(err)
	}
	cfg.Store.DbPath = filepath.Join(abs, filepath.Base(cfg.Store.DbPath))
	if cfg.Log.LogFile != "" {
		cfg.Log.LogFile = filepath.Join(abs, cfg.Log.LogFile)
	}
}
