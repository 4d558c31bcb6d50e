// Package metrics exposes the Prometheus instrumentation the bot updates
// while trading:
//   - perpbot_orders_total{side}          – orders placed
//   - perpbot_signals_total{signal}       – signals seen per cycle
//   - perpbot_exits_total{reason,side}    – closes split by reason and side
//   - perpbot_open_positions              – current ledger size (gauge)
//   - perpbot_retries_exhausted_total{op} – open/close operations abandoned
//
// All collectors are registered in init() and served by Handler().
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perpbot_orders_total",
			Help: "Orders placed",
		},
		[]string{"side"},
	)

	signalsSeen = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perpbot_signals_total",
			Help: "Signals produced per symbol per cycle",
		},
		[]string{"signal"},
	)

	exitsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perpbot_exits_total",
			Help: "Closed positions split by reason and side",
		},
		[]string{"reason", "side"},
	)

	openPositions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "perpbot_open_positions",
			Help: "Open positions currently tracked in the ledger",
		},
	)

	retriesExhausted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perpbot_retries_exhausted_total",
			Help: "Order operations abandoned after exhausting retries",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(
		ordersPlaced,
		signalsSeen,
		exitsRecorded,
		openPositions,
		retriesExhausted,
	)
}

func OrderPlaced(side string)          { ordersPlaced.WithLabelValues(side).Inc() }
func SignalSeen(kind string)           { signalsSeen.WithLabelValues(kind).Inc() }
func ExitRecorded(reason, side string) { exitsRecorded.WithLabelValues(reason, side).Inc() }
func SetOpenPositions(n int)           { openPositions.Set(float64(n)) }
func RetryExhausted(op string)         { retriesExhausted.WithLabelValues(op).Inc() }

// Handler returns the Prometheus text exposition handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
