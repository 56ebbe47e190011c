package reconciler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sun-23/go-multiuser/metrics"
)

const subsystem = "reconciler"

var (
	receivedMessages = metrics.NewCounter(
		"received_messages",
		subsystem,
		"messages received from peers by kind",
		[]string{"kind"},
	)
	sentBlobs = metrics.NewCounter(
		"sent_blobs",
		subsystem,
		"collaboration blobs sent to peers by priority",
		[]string{"priority"},
	)
	blobSize = metrics.NewHistogramWithBuckets(
		"blob_size_bytes",
		subsystem,
		"size of encoded collaboration blobs sent to peers",
		[]string{"priority"},
		prometheus.ExponentialBuckets(64, 4, 8),
	)
	droppedBlobs = metrics.NewCounter(
		"dropped_blobs",
		subsystem,
		"collaboration blobs dropped",
		[]string{"reason"},
	)
	admissions = metrics.NewCounter(
		"admissions",
		subsystem,
		"admission decisions",
		[]string{"result"},
	)
	purgedAnchors = metrics.NewCounter(
		"purged_anchors",
		subsystem,
		"anchors removed after their session was retired",
		[]string{"cause"},
	)
	knownSessions = metrics.NewGauge(
		"sessions",
		subsystem,
		"number of peers with a known session",
		[]string{},
	).WithLabelValues()
)

const (
	reasonNoPeers = "no_peers"
	reasonEncode  = "encode"
	reasonApply   = "apply"

	causeIdentity  = "identity"
	causeDeparture = "departure"
	causeOrphaned  = "orphaned"
)
