// Package metrics defines and registers all custom Prometheus metrics for the
// Canada Post gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cpws"

// ── Carrier metrics ───────────────────────────────────────────────────────────

// CarrierRequestsTotal counts carrier operations by outcome.
// Labels:
//   - operation: "find_rates", "find_tracking", "create_shipment", "retrieve_label"
//   - outcome: "ok", "invalid_input", "carrier_error", "malformed", "transport", "error"
var CarrierRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carrier_requests_total",
		Help:      "Total number of carrier operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// CarrierRequestDuration measures carrier operations end-to-end, including
// request building and response parsing.
// Label:
//   - operation: see CarrierRequestsTotal
var CarrierRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "carrier_request_duration_seconds",
		Help:      "Duration of carrier operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// RateQuotesReturned observes how many quotes a rate lookup produced.
var RateQuotesReturned = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rate_quotes_returned",
		Help:      "Number of price quotes returned per rate lookup.",
		Buckets:   []float64{0, 1, 2, 4, 8, 16},
	},
)

// ── Tracking recorder metrics ─────────────────────────────────────────────────

// EventsRecordedTotal counts tracking events handled by the recorder.
// Label:
//   - result: "recorded" or "error"
var EventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_recorded_total",
		Help:      "Total number of tracking events handled by the recorder.",
	},
	[]string{"result"},
)

// EventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, recorded)
var EventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tracking_events_queue_depth",
		Help:      "Current number of events pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

// EventRecordingDuration measures how long a single event takes to record.
// Label:
//   - result: "recorded" or "error"
var EventRecordingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tracking_event_recording_duration_seconds",
		Help:      "Duration of event recording from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Shipment metrics ──────────────────────────────────────────────────────────

// ShipmentsCreatedTotal counts shipments created with the carrier.
// Label:
//   - service_code: carrier service code (e.g. "DOM.EP")
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by service code.",
	},
	[]string{"service_code"},
)
