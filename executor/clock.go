// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sync/atomic"
	"time"
)

// Clock block time source, unix seconds
type Clock interface {
	Now() int64
}

// SystemClock wall clock
type SystemClock struct{}

// Now unix seconds
func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

// FixedClock a settable clock for tests and replays
type FixedClock struct {
	now int64
}

// NewFixedClock new
func NewFixedClock(now int64) *FixedClock {
	return &FixedClock{now: now}
}

// Now current value
func (c *FixedClock) Now() int64 {
	return atomic.LoadInt64(&c.now)
}

// Set move the clock
func (c *FixedClock) Set(now int64) {
	atomic.StoreInt64(&c.now, now)
}

// Add advance the clock by d seconds
func (c *FixedClock) Add(d int64) {
	atomic.AddInt64(&c.now, d)
}
