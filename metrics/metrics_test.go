// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExec(t *testing.T) {
	RecordExec("raffle", "Buy", nil, time.Millisecond)
	RecordExec("raffle", "Buy", nil, time.Millisecond)
	RecordExec("raffle", "Buy", errors.New("ErrQuantityZero"), time.Millisecond)
	assert.Equal(t, int64(2), ExecCount("raffle", "Buy", "ok"))
	assert.Equal(t, int64(1), ExecCount("raffle", "Buy", "fail"))
	assert.Equal(t, float64(2), testutil.ToFloat64(exec.Ops.WithLabelValues("raffle", "Buy", "ok")))
}

func TestPrometheusRegistry(t *testing.T) {
	RecordExec("token", "Transfer", nil, time.Millisecond)
	SetRaffleCount("active", 3)
	reg := NewPrometheusRegistry()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["raffle_exec_total"])
	assert.True(t, names["raffle_raffles"])
	assert.True(t, names["raffle_exec_token_Transfer_ok_count"])
	assert.True(t, names["raffle_exec_token_Transfer_seconds"])
	assert.Equal(t, float64(3), testutil.ToFloat64(exec.Raffles.WithLabelValues("active")))
}

func TestStartMetricsDisabled(t *testing.T) {
	assert.Nil(t, StartMetrics(nil))
}
