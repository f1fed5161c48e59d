// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics executor counters and timers. Values are kept in a
// go-metrics registry and exported to prometheus together with the
// prometheus native collectors.
package metrics

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	go_metrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "metrics")

// Namespace prometheus namespace
var Namespace = "raffle"

// Collector exposes prometheus collectors
type Collector interface {
	Metrics() []prometheus.Collector
}

// ExecMetrics per executor/action counters
type ExecMetrics struct {
	Ops     *prometheus.CounterVec
	Raffles *prometheus.GaugeVec
}

// NewExecMetrics new
func NewExecMetrics() *ExecMetrics {
	return &ExecMetrics{
		Ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "exec_total",
			Help:      "executed transactions by execer, action and result",
		}, []string{"execer", "action", "result"}),
		Raffles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "raffles",
			Help:      "raffles by status",
		}, []string{"status"}),
	}
}

// Metrics all collectors of m
func (m *ExecMetrics) Metrics() []prometheus.Collector {
	return PrometheusCollectorsFromFields(m)
}

var (
	registry = go_metrics.NewRegistry()
	exec     = NewExecMetrics()
)

// Registry the go-metrics registry
func Registry() go_metrics.Registry {
	return registry
}

// RecordExec count one executed tx and time it
func RecordExec(execer, action string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "fail"
	}
	name := "exec." + execer + "." + action
	go_metrics.GetOrRegisterTimer(name, registry).Update(d)
	go_metrics.GetOrRegisterCounter(name+"."+result, registry).Inc(1)
	exec.Ops.WithLabelValues(execer, action, result).Inc()
}

// SetRaffleCount raffles currently in status
func SetRaffleCount(status string, n int) {
	exec.Raffles.WithLabelValues(status).Set(float64(n))
}

// ExecCount value of the go-metrics counter for execer/action/result
func ExecCount(execer, action, result string) int64 {
	c, ok := registry.Get("exec." + execer + "." + action + "." + result).(go_metrics.Counter)
	if !ok {
		return 0
	}
	return c.Count()
}

// PrometheusCollectorsFromFields every exported field of i that is a collector
func PrometheusCollectorsFromFields(i interface{}) (cs []prometheus.Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		if u, ok := v.Field(i).Interface().(prometheus.Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}

// goMetricsCollector exports counters and timers of a go-metrics registry
type goMetricsCollector struct {
	reg go_metrics.Registry
}

func (c *goMetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	// unchecked collector, the metric set grows with the registry
}

func (c *goMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	c.reg.Each(func(name string, i interface{}) {
		fq := prometheus.BuildFQName(Namespace, "", strings.NewReplacer(".", "_", "-", "_").Replace(name))
		switch m := i.(type) {
		case go_metrics.Counter:
			desc := prometheus.NewDesc(fq+"_count", name, nil, nil)
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(m.Count()))
		case go_metrics.Timer:
			snap := m.Snapshot()
			desc := prometheus.NewDesc(fq+"_seconds", name, nil, nil)
			quantiles := snap.Percentiles([]float64{0.5, 0.9, 0.99})
			ch <- prometheus.MustNewConstSummary(desc, uint64(snap.Count()), float64(snap.Sum())/float64(time.Second),
				map[float64]float64{
					0.5:  quantiles[0] / float64(time.Second),
					0.9:  quantiles[1] / float64(time.Second),
					0.99: quantiles[2] / float64(time.Second),
				})
		}
	})
}

// NewPrometheusRegistry registry holding the exec collectors and the go-metrics bridge
func NewPrometheusRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(exec.Metrics()...)
	reg.MustRegister(&goMetricsCollector{reg: registry})
	return reg
}

// StartMetrics serve /metrics when enabled, nil otherwise
func StartMetrics(cfg *types.Metrics) *http.Server {
	if cfg == nil || !cfg.EnableMetrics {
		mlog.Info("Metrics data is not enabled to emit")
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(NewPrometheusRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mlog.Error("StartMetrics", "addr", cfg.ListenAddr, "err", err)
		}
	}()
	mlog.Info("StartMetrics", "addr", cfg.ListenAddr)
	return srv
}
