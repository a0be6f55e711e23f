// Package metrics exposes bridge delivery counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trickstertwo/ffilog"
)

// Source is anything reporting bridge counters; *ffilog.Bridge satisfies it.
type Source interface {
	Stats() ffilog.StatsSnapshot
}

// Collector reads a Source at scrape time. Counters are never cached, so a
// scrape after teardown still reports the final values.
type Collector struct {
	src       Source
	delivered *prometheus.Desc
	failed    *prometheus.Desc
	dropped   *prometheus.Desc
}

// NewCollector returns a Collector for src. constLabels are attached to
// every metric, e.g. to tell several libraries apart.
func NewCollector(src Source, constLabels prometheus.Labels) *Collector {
	return &Collector{
		src: src,
		delivered: prometheus.NewDesc("ffilog_records_delivered_total",
			"Records the foreign callback accepted.", nil, constLabels),
		failed: prometheus.NewDesc("ffilog_records_failed_total",
			"Records whose callback returned a failure status or panicked.", nil, constLabels),
		dropped: prometheus.NewDesc("ffilog_records_dropped_total",
			"Records emitted after teardown through loggers held from before it.", nil, constLabels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.delivered
	ch <- c.failed
	ch <- c.dropped
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.delivered, prometheus.CounterValue, float64(s.Delivered))
	ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(s.Failed))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.Dropped))
}

// Handler serves src's counters from a private registry, leaving the
// global registry untouched.
func Handler(src Source, constLabels prometheus.Labels) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(src, constLabels)); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
