package p2p

import (
	"github.com/libp2p/go-libp2p/core/metrics"
	"github.com/prometheus/client_golang/prometheus"

	pmetrics "github.com/sun-23/go-multiuser/metrics"
)

const (
	subsystem = "p2p"

	reliableLabel   = "reliable"
	bestEffortLabel = "best_effort"

	reasonQueueFull = "queue_full"
	reasonStream    = "stream"
	reasonTooLarge  = "too_large"
	reasonPublish   = "publish"
)

var (
	sentMessages = pmetrics.NewCounter(
		"sent_messages",
		subsystem,
		"number of messages written to peers",
		[]string{"delivery"},
	)
	receivedMessages = pmetrics.NewCounter(
		"received_messages",
		subsystem,
		"number of messages received from peers",
		[]string{"delivery"},
	)
	droppedMessages = pmetrics.NewCounter(
		"dropped_messages",
		subsystem,
		"number of messages dropped by transport",
		[]string{"reason"},
	)
	connectedPeers = pmetrics.NewGauge(
		"peers",
		subsystem,
		"number of connected peers",
		[]string{},
	).WithLabelValues()
	admissions = pmetrics.NewCounter(
		"admissions",
		subsystem,
		"admission decisions for joining peers",
		[]string{"result"},
	)
)

func delivery(reliable bool) string {
	if reliable {
		return reliableLabel
	}
	return bestEffortLabel
}

// bandwidthCollector exports libp2p bandwidth counters per protocol.
type bandwidthCollector struct {
	counter *metrics.BandwidthCounter
	total   *prometheus.Desc
}

func newBandwidthCollector(counter *metrics.BandwidthCounter) *bandwidthCollector {
	return &bandwidthCollector{
		counter: counter,
		total: prometheus.NewDesc(
			prometheus.BuildFQName(pmetrics.Namespace, subsystem, "traffic_bytes"),
			"total traffic per protocol and direction",
			[]string{"protocol", "direction"},
			nil,
		),
	}
}

func (b *bandwidthCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- b.total
}

func (b *bandwidthCollector) Collect(ch chan<- prometheus.Metric) {
	for proto, stats := range b.counter.GetBandwidthByProtocol() {
		ch <- prometheus.MustNewConstMetric(b.total, prometheus.CounterValue, float64(stats.TotalIn), string(proto), "in")
		ch <- prometheus.MustNewConstMetric(b.total, prometheus.CounterValue, float64(stats.TotalOut), string(proto), "out")
	}
}
