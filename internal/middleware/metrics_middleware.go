package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration observes request latency
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// RequestsInFlight tracks requests currently being served
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// OrdersPlacedTotal counts successfully placed orders
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	// TicketsSoldTotal counts tickets sold through orders
	TicketsSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Total number of tickets sold",
		},
	)

	// SeatConflictsTotal counts orders lost to a concurrent seat sale
	SeatConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seat_conflicts_total",
			Help: "Total number of orders rejected because a seat was sold concurrently",
		},
	)
)

// PrometheusMiddleware collects metrics for HTTP requests
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		RequestsInFlight.Inc()
		defer RequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()

		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		RequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// TrackOrderPlaced records a successfully placed order and its ticket count
func TrackOrderPlaced(ticketCount int) {
	OrdersPlacedTotal.Inc()
	TicketsSoldTotal.Add(float64(ticketCount))
}

// TrackSeatConflict records an order lost to a concurrent seat sale
func TrackSeatConflict() {
	SeatConflictsTotal.Inc()
}
