// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sync"

	"github.com/33cn/raffle/common"
	host "github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/metrics"
	pty "github.com/33cn/raffle/system/dapp/raffle/types"
	"github.com/33cn/raffle/types"
)

// Observer receives the event of every committed raffle transition, in
// commit order
type Observer interface {
	OnEvent(event *pty.ReceiptRaffle)
}

// EventEmitter decodes the raffle events out of committed receipts. Failed
// operations are never committed, so they emit nothing.
type EventEmitter struct {
	observers []Observer
}

// NewEventEmitter host observer fanning out to obs
func NewEventEmitter(obs ...Observer) *EventEmitter {
	return &EventEmitter{observers: obs}
}

// OnCommit implements host.Observer
func (e *EventEmitter) OnCommit(result *host.TxResult) {
	if result.Execer != pty.RaffleX || result.Receipt == nil {
		return
	}
	for _, item := range result.Receipt.Logs {
		if !pty.IsRaffleLog(item.Ty) {
			continue
		}
		event, err := pty.DecodeEvent(item)
		if err != nil {
			rlog.Error("EventEmitter", "hash", common.ToHex(result.Hash), "err", err)
			continue
		}
		for _, o := range e.observers {
			o.OnEvent(event)
		}
	}
}

// RecordingObserver keeps every event
type RecordingObserver struct {
	mu     sync.Mutex
	events []*pty.ReceiptRaffle
}

// OnEvent record
func (r *RecordingObserver) OnEvent(event *pty.ReceiptRaffle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events recorded so far
func (r *RecordingObserver) Events() []*pty.ReceiptRaffle {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*pty.ReceiptRaffle, len(r.events))
	copy(events, r.events)
	return events
}

// Kinds kinds of the recorded events
func (r *RecordingObserver) Kinds() []string {
	var kinds []string
	for _, event := range r.Events() {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

// LogObserver writes every event to the raffle log
type LogObserver struct{}

// OnEvent log
func (LogObserver) OnEvent(event *pty.ReceiptRaffle) {
	rlog.Info(event.Kind, "raffleID", event.RaffleID, "status", pty.StatusName(event.Status),
		"buyer", event.Buyer, "quantity", event.Quantity, "winner", event.Winner, "amount", event.Amount)
}

// StatusGauge keeps the raffles-per-status gauge in step with the events
type StatusGauge struct {
	mu     sync.Mutex
	counts map[int32]int
}

// NewStatusGauge seeded from the status index of exec
func NewStatusGauge(exec *host.Executor) (*StatusGauge, error) {
	g := &StatusGauge{counts: make(map[int32]int)}
	for _, status := range pty.AllStatus() {
		reply, err := exec.Query(pty.RaffleX, pty.FuncNameListRafflesByStatus, types.Encode(&pty.ReqRaffleList{Status: status}))
		if err != nil {
			return nil, err
		}
		g.counts[status] = len(reply.(*pty.ReplyRaffleList).Raffles)
		metrics.SetRaffleCount(pty.StatusName(status), g.counts[status])
	}
	return g, nil
}

// OnEvent move one raffle between statuses
func (g *StatusGauge) OnEvent(event *pty.ReceiptRaffle) {
	if event.PrevStatus == event.Status {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if event.PrevStatus != 0 {
		g.counts[event.PrevStatus]--
		metrics.SetRaffleCount(pty.StatusName(event.PrevStatus), g.counts[event.PrevStatus])
	}
	g.counts[event.Status]++
	metrics.SetRaffleCount(pty.StatusName(event.Status), g.counts[event.Status])
}

// Count raffles in status
func (g *StatusGauge) Count(status int32) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts[status]
}
