package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// EntriesTotal counts ledger writes by kind (expense, income, task) and op (create, update, delete).
	EntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fintrack_entries_total",
			Help: "Ledger entries written by kind and operation",
		},
		[]string{"kind", "op"},
	)

	// AuthTotal counts signup, login and password change outcomes.
	AuthTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fintrack_auth_total",
			Help: "Signup and login attempts by outcome",
		},
		[]string{"action", "result"},
	)

	// UploadsTotal counts image uploads by outcome (ok, rejected, error).
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fintrack_uploads_total",
			Help: "Image uploads by outcome",
		},
		[]string{"result"},
	)
)

var (
	idPathSegment = regexp.MustCompile(`/([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|[0-9]+)(/|$)`)
	uploadPath    = regexp.MustCompile(`^/uploads/.+`)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, EntriesTotal, AuthTotal, UploadsTotal)
}

// NormalizePath reduces cardinality by replacing id segments and upload file names with placeholders.
// E.g. /api/tasks/5e4d...170 -> /api/tasks/{id}, /uploads/1700-x.png -> /uploads/{file}.
func NormalizePath(path string) string {
	if uploadPath.MatchString(path) {
		return "/uploads/{file}"
	}
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	if path == "" {
		path = "/"
	}
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncEntry counts one ledger write.
func IncEntry(kind, op string) {
	EntriesTotal.WithLabelValues(kind, op).Inc()
}

// IncAuth counts one signup or login outcome.
func IncAuth(action, result string) {
	AuthTotal.WithLabelValues(action, result).Inc()
}

// IncUpload counts one upload outcome.
func IncUpload(result string) {
	UploadsTotal.WithLabelValues(result).Inc()
}
