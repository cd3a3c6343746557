package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	adminHTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pldmd",
			Subsystem: "admin_http",
			Name:      "requests_total",
			Help:      "Total requests served by the admin/debug HTTP surface.",
		},
		[]string{"method", "path", "status"},
	)
	adminHTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pldmd",
			Subsystem: "admin_http",
			Name:      "request_duration_seconds",
			Help:      "Admin/debug HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	pollRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pldmd",
			Subsystem: "poller",
			Name:      "poll_requests_total",
			Help:      "pollForPlatformEventMessage requests issued, by endpoint and queue.",
		},
		[]string{"eid", "queue"},
	)
	pollTimeouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pldmd",
			Subsystem: "poller",
			Name:      "poll_timeouts_total",
			Help:      "Poll transfers abandoned by poll_timeout_timer.",
		},
		[]string{"eid"},
	)
	checksumMismatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pldmd",
			Subsystem: "poller",
			Name:      "checksum_mismatches_total",
			Help:      "Reassembled events dropped for a CRC-32 mismatch on PLDM_END.",
		},
		[]string{"eid"},
	)
	eventsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pldmd",
			Subsystem: "dispatch",
			Name:      "events_dispatched_total",
			Help:      "Platform events dispatched, by event class and completion outcome.",
		},
		[]string{"event_class", "outcome"},
	)
	pdrRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "pldmd",
			Subsystem: "pdr",
			Name:      "records",
			Help:      "Current PDR repository record count, by PDR type.",
		},
		[]string{"pdr_type"},
	)
)

// RegisterMetrics registers all pldmd collectors with the default registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			adminHTTPRequests, adminHTTPDuration,
			pollRequests, pollTimeouts, checksumMismatches,
			eventsDispatched, pdrRecords,
		)
	})
}

// RecordAdminHTTP records one admin/debug HTTP request.
func RecordAdminHTTP(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	adminHTTPRequests.WithLabelValues(method, path, statusLabel).Inc()
	adminHTTPDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// RecordPollRequest counts one pollForPlatformEventMessage issued on eid from the given queue ("normal" or "critical").
func RecordPollRequest(eid uint8, queue string) {
	RegisterMetrics()
	pollRequests.WithLabelValues(strconv.Itoa(int(eid)), queue).Inc()
}

// RecordPollTimeout counts one abandoned transfer on eid.
func RecordPollTimeout(eid uint8) {
	RegisterMetrics()
	pollTimeouts.WithLabelValues(strconv.Itoa(int(eid))).Inc()
}

// RecordChecksumMismatch counts one dropped reassembly on eid.
func RecordChecksumMismatch(eid uint8) {
	RegisterMetrics()
	checksumMismatches.WithLabelValues(strconv.Itoa(int(eid))).Inc()
}

// RecordEventDispatched counts one dispatch outcome ("success", "error", "unknown_class") for an event class.
func RecordEventDispatched(eventClass uint8, outcome string) {
	RegisterMetrics()
	eventsDispatched.WithLabelValues(strconv.Itoa(int(eventClass)), outcome).Inc()
}

// SetPDRRecordCount publishes the current record count for a PDR type.
func SetPDRRecordCount(pdrType uint8, count int) {
	RegisterMetrics()
	pdrRecords.WithLabelValues(strconv.Itoa(int(pdrType))).Set(float64(count))
}
