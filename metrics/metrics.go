package metrics

import (
	"hourbox/backend"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// calls made to the remote session store, by operation and outcome
	RemoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hourbox_remote_requests_total",
			Help: "Remote session store calls by operation and result",
		},
		[]string{"op", "result"},
	)

	LocalPersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hourbox_local_persist_failures_total",
			Help: "Failed writes to the local metadata or blob store",
		},
		[]string{"store"},
	)

	LegacyMigrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hourbox_legacy_migrations_total",
			Help: "Inline file payloads moved into the blob store",
		},
		[]string{"result"},
	)

	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hourbox_uploads_total",
			Help: "Uploaded files by result",
		},
		[]string{"result"},
	)

	HttpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hourbox_http_requests_total",
			Help: "Requests served by hourbox serve",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hourbox_http_request_duration_seconds",
			Help:    "Request duration of hourbox serve in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)
)

const (
	STORE_METADATA = "metadata"
	STORE_BLOB     = "blob"
)

func RecordRemote(op string, err error) {
	RemoteRequests.WithLabelValues(op, backend.Classify(err)).Inc()
}

func RecordPersistFailure(store string) {
	LocalPersistFailures.WithLabelValues(store).Inc()
}

func RecordMigration(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	LegacyMigrations.WithLabelValues(result).Inc()
}

func RecordUpload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	Uploads.WithLabelValues(result).Inc()
}
