package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socialmedia/internal/queue"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AccountEventsTotal counts account events by type and publish result.
	AccountEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_events_total",
		Help: "Total account events handed to the publisher",
	}, []string{"event", "result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency. The route label is the chi
// pattern so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// InstrumentedPublisher counts every event passed to the wrapped publisher.
type InstrumentedPublisher struct {
	next queue.Publisher
}

func InstrumentPublisher(next queue.Publisher) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, stream string, event queue.Event) (string, error) {
	msgID, err := p.next.Publish(ctx, stream, event)
	result := "ok"
	if err != nil {
		result = "error"
	}
	AccountEventsTotal.WithLabelValues(event.Type, result).Inc()
	return msgID, err
}
