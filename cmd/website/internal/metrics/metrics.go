package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the portal's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "album_portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "album_portal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "album_portal",
			Subsystem: "customers",
			Name:      "logins_total",
			Help:      "Customer login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	selections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "album_portal",
			Subsystem: "albums",
			Name:      "selections_saved_total",
			Help:      "Selection replacements saved by customers.",
		},
	)

	approvals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "album_portal",
			Subsystem: "albums",
			Name:      "approvals_total",
			Help:      "Album approvals recorded.",
		},
	)

	uploadedPhotos = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "album_portal",
			Subsystem: "albums",
			Name:      "photos_uploaded_total",
			Help:      "Photos uploaded by the studio.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		logins,
		selections,
		approvals,
		uploadedPhotos,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

/*
Instrument returns a middleware that records request count and duration
under the given route pattern, e.g. "GET /api/admin/albums/{id}".
*/
func Instrument(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			method := strings.ToUpper(r.Method)
			httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
			httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func RecordLogin(success bool) {
	if success {
		logins.WithLabelValues("success").Inc()
		return
	}

	logins.WithLabelValues("failure").Inc()
}

func RecordSelection() {
	selections.Inc()
}

func RecordApproval() {
	approvals.Inc()
}

func RecordUploadedPhotos(count int) {
	uploadedPhotos.Add(float64(count))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
