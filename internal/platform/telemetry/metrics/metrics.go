package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dossier"

// Link resolution outcomes.
const (
	OutcomeLinked    = "linked"
	OutcomeUnlinked  = "unlinked"
	OutcomeNotFound  = "not_found"
	OutcomeLoadError = "load_failed"
)

// Document operations.
const (
	OpLoad  = "load"
	OpSave  = "save"
	OpPrint = "print"
)

var (
	LinkResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "links",
			Name:      "resolutions_total",
			Help:      "Total number of linked-record resolutions by outcome",
		},
		[]string{"outcome"},
	)

	LinkEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "links",
			Name:      "evictions_total",
			Help:      "Total number of linked records unloaded after losing their last referrer",
		},
	)

	OpenRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "links",
			Name:      "open_records",
			Help:      "Current number of records held by the registry",
		},
	)

	DocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contacts",
			Name:      "documents_total",
			Help:      "Total number of contact documents processed by operation",
		},
		[]string{"op"},
	)

	MugshotsDecodedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mugshots",
			Name:      "decoded_total",
			Help:      "Total number of portrait payloads decoded by status",
		},
		[]string{"status"},
	)

	MugshotDecodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mugshots",
			Name:      "decode_duration_seconds",
			Help:      "Portrait gallery decode duration in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	WarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Total number of recoverable problems reported by error code",
		},
		[]string{"code"},
	)
)

// WriteTextfile writes every metric in the default registry to path in the
// Prometheus text format. An empty path is a no-op.
func WriteTextfile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
