// Package dialogmetrics exports the shape of a dialog stack as Prometheus
// gauges. Values are read from the store's snapshot at scrape time.
package dialogmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GhostWriters/DialogStack/pkg/dialog"
)

var statuses = []dialog.Status{
	dialog.StatusIdle,
	dialog.StatusLoading,
	dialog.StatusDone,
	dialog.StatusError,
}

// Collector implements prometheus.Collector for one store.
type Collector struct {
	store *dialog.Store

	entries *prometheus.Desc
	topZ    *prometheus.Desc
	status  *prometheus.Desc
	version *prometheus.Desc
}

// NewCollector returns a collector for s. labels are attached to every
// metric, which is how several stores can share one registry.
func NewCollector(s *dialog.Store, labels prometheus.Labels) *Collector {
	return &Collector{
		store: s,
		entries: prometheus.NewDesc(
			"dialogstack_entries",
			"Number of stacked dialogs by lifecycle state.",
			[]string{"state"}, labels,
		),
		topZ: prometheus.NewDesc(
			"dialogstack_top_zindex",
			"Highest z-index among open dialogs, 0 when none is open.",
			nil, labels,
		),
		status: prometheus.NewDesc(
			"dialogstack_status",
			"Number of dialogs per status.",
			[]string{"status"}, labels,
		),
		version: prometheus.NewDesc(
			"dialogstack_changes_total",
			"Number of changes applied to the store.",
			nil, labels,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.topZ
	ch <- c.status
	ch <- c.version
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.store.Snapshot()

	var open, closed, pending float64
	topZ := 0
	byStatus := make(map[dialog.Status]float64, len(statuses))
	for _, e := range snap.Entries {
		if e.IsOpen {
			open++
			if open == 1 || e.ZIndex > topZ {
				topZ = e.ZIndex
			}
		} else {
			closed++
		}
		if e.Pending() {
			pending++
		}
		byStatus[e.Meta.Status]++
	}

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, open, "open")
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, closed, "closed")
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, pending, "pending")
	ch <- prometheus.MustNewConstMetric(c.topZ, prometheus.GaugeValue, float64(topZ))
	for _, st := range statuses {
		ch <- prometheus.MustNewConstMetric(c.status, prometheus.GaugeValue, byStatus[st], string(st))
	}
	ch <- prometheus.MustNewConstMetric(c.version, prometheus.CounterValue, float64(snap.Version))
}
