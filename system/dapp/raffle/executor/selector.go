// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"

	"github.com/33cn/raffle/common"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/pkg/errors"
)

// EntropyContext host data available to an entropy provider at finalize.
// Seed comes from the executor and does not depend on the finalize tx.
type EntropyContext struct {
	Seed        []byte
	RaffleID    int64
	Height      int64
	BlockTime   int64
	TicketsSold int64
}

// EntropyProvider supplies the entropy of one randomness source
type EntropyProvider interface {
	Entropy(ctx *EntropyContext) ([]byte, error)
}

// SupportedSource whether finalize accepts source
func SupportedSource(source string) bool {
	return source == pty.SourcePRNG || source == pty.SourceOracle
}

// SelectWinner index of the winning ticket in [0, ticketsSold)
func SelectWinner(ticketsSold int64, source string, entropy []byte) (int64, error) {
	if !SupportedSource(source) {
		return 0, errors.Wrapf(pty.ErrUnsupportedRandomnessSource, "source %q", source)
	}
	if ticketsSold < 1 {
		return 0, pty.ErrNoTicketsSold
	}
	h := common.Sha256(entropy)
	n := binary.LittleEndian.Uint64(h[:8])
	return int64(n % uint64(ticketsSold)), nil
}

// PRNGEntropy sha256(seed | raffleID | height | ticketsSold)
type PRNGEntropy struct{}

// Entropy derived from host data only
func (PRNGEntropy) Entropy(ctx *EntropyContext) ([]byte, error) {
	if len(ctx.Seed) == 0 {
		return nil, errors.Wrap(pty.ErrEntropyUnavailable, "prng: no executor seed")
	}
	var buf []byte
	buf = append(buf, ctx.Seed...)
	buf = append(buf, common.Int64ToBytes(ctx.RaffleID)...)
	buf = append(buf, common.Int64ToBytes(ctx.Height)...)
	buf = append(buf, common.Int64ToBytes(ctx.TicketsSold)...)
	return common.Sha256(buf), nil
}

// OracleFeed external randomness
type OracleFeed interface {
	Read(p []byte) (int, error)
}

// OracleEntropy 32 bytes read from an OracleFeed
type OracleEntropy struct {
	Feed OracleFeed
}

// NewOracleEntropy feed defaults to crypto/rand
func NewOracleEntropy(feed OracleFeed) *OracleEntropy {
	if feed == nil {
		feed = rand.Reader
	}
	return &OracleEntropy{Feed: feed}
}

// Entropy sha256(feed bytes | raffleID | height), so a feed that repeats
// itself still gives distinct draws per raffle and height
func (o *OracleEntropy) Entropy(ctx *EntropyContext) ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(o.Feed, buf); err != nil {
		return nil, errors.Wrapf(pty.ErrEntropyUnavailable, "oracle: %v", err)
	}
	buf = append(buf, common.Int64ToBytes(ctx.RaffleID)...)
	buf = append(buf, common.Int64ToBytes(ctx.Height)...)
	return common.Sha256(buf), nil
}

// FileFeed oracle feed published as a file; the content is read again on
// every finalize and mixed with a counter
type FileFeed struct {
	Path    string
	counter uint64
}

// Read fill p from sha256 chains over the file content
func (f *FileFeed) Read(p []byte) (int, error) {
	seed, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, err
	}
	if len(seed) == 0 {
		return 0, errors.Errorf("oracle file %s is empty", f.Path)
	}
	n := 0
	for n < len(p) {
		f.counter++
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], f.counter)
		n += copy(p[n:], common.Sha256(append(common.CopyBytes(seed), ctr[:]...)))
	}
	return n, nil
}

// FixedEntropy returns itself, for tests and replays of a recorded draw
type FixedEntropy []byte

// Entropy the fixed bytes
func (f FixedEntropy) Entropy(ctx *EntropyContext) ([]byte, error) {
	return []byte(f), nil
}
