// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor the raffle executor: state machine, ticket ledger,
// escrow accounting and winner selection
package executor

import (
	"reflect"

	"github.com/33cn/raffle/common/log"
	drivers "github.com/33cn/raffle/system/dapp"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

var rlog = log.New("module", "execs.raffle")

//初始化过程比较重量级，有很多reflact, 所以弄成全局的
var executorFunList = make(map[string]reflect.Method)
var executorType = pty.NewType()

func init() {
	executorFunList = types.ListMethod(&Raffle{})
}

// Options behaviour switches of the raffle executor
type Options struct {
	// only the winner may claim; the prize always goes to the winner
	ClaimByWinnerOnly bool
	// reject purchases once the block time passes end_time
	EnforceEndTime bool
	// source used when finalize names none
	DefaultRandomness string
	// entropy provider per randomness source
	Entropy map[string]EntropyProvider
}

// DefaultOptions prng from host data, oracle from crypto/rand
func DefaultOptions() *Options {
	return &Options{
		EnforceEndTime:    true,
		DefaultRandomness: pty.SourcePRNG,
		Entropy: map[string]EntropyProvider{
			pty.SourcePRNG:   PRNGEntropy{},
			pty.SourceOracle: NewOracleEntropy(nil),
		},
	}
}

// OptionsFromConfig options of the [raffle] config section
func OptionsFromConfig(cfg *types.Raffle) (*Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	opts.ClaimByWinnerOnly = cfg.ClaimByWinnerOnly
	opts.EnforceEndTime = cfg.EnforceEndTime
	if cfg.DefaultRandomness != "" {
		if !SupportedSource(cfg.DefaultRandomness) {
			return nil, errors.Wrapf(pty.ErrUnsupportedRandomnessSource, "defaultRandomness %q", cfg.DefaultRandomness)
		}
		opts.DefaultRandomness = cfg.DefaultRandomness
	}
	if cfg.OracleSeedFile != "" {
		opts.Entropy[pty.SourceOracle] = NewOracleEntropy(&FileFeed{Path: cfg.OracleSeedFile})
	}
	return opts, nil
}

// Init register the raffle driver with the options of cfg
func Init(cfg *types.Config) {
	opts, err := OptionsFromConfig(cfg.Raffle)
	if err != nil {
		panic(err)
	}
	drivers.Register(GetName(), NewDriverCreate(opts))
}

// GetName get driver name
func GetName() string {
	return pty.RaffleX
}

// Raffle the raffle driver
type Raffle struct {
	drivers.DriverBase
	opts *Options
}

// NewDriverCreate driver constructor bound to opts
func NewDriverCreate(opts *Options) drivers.DriverCreate {
	if opts == nil {
		opts = DefaultOptions()
	}
	return func() drivers.Driver {
		r := &Raffle{opts: opts}
		r.SetChild(r)
		r.SetExecutorType(executorType)
		return r
	}
}

// GetDriverName driver name
func (r *Raffle) GetDriverName() string {
	return pty.RaffleX
}

// GetFuncMap Exec_/ExecLocal_/Query_ methods
func (r *Raffle) GetFuncMap() map[string]reflect.Method {
	return executorFunList
}
