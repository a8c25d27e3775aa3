package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	sdlcFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vtcab",
			Subsystem: "sdlc",
			Name:      "frames_total",
			Help:      "Command frames dispatched, by frame type.",
		},
		[]string{"node", "type", "matched"},
	)
	sdlcIOErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vtcab",
			Subsystem: "sdlc",
			Name:      "io_errors_total",
			Help:      "Serial read/write failures in the SDLC loop.",
		},
		[]string{"node", "op"},
	)
	wiringTickDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vtcab",
			Subsystem: "wiring",
			Name:      "tick_duration_seconds",
			Help:      "Wiring propagation time per simulation tick.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"node"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vtcab",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total admin HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vtcab",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Admin HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(sdlcFrames, sdlcIOErrors, wiringTickDuration, httpRequests, httpDuration)
	})
}

func RecordSDLCFrame(node string, frameType byte, matched bool) {
	RegisterMetrics()
	sdlcFrames.WithLabelValues(node, strconv.Itoa(int(frameType)), strconv.FormatBool(matched)).Inc()
}

func RecordSDLCIOError(node, op string) {
	RegisterMetrics()
	sdlcIOErrors.WithLabelValues(node, op).Inc()
}

func RecordWiringTick(node string, duration time.Duration) {
	RegisterMetrics()
	wiringTickDuration.WithLabelValues(node).Observe(duration.Seconds())
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
