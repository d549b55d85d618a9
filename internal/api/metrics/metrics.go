// Package metrics defines and registers all custom Prometheus metrics for the
// guest registry API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "guest_registry"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuestsCreatedTotal counts newly created guest profiles.
// Label:
//   - class: the membership class of the created guest (e.g. "VIP")
var GuestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guests_created_total",
		Help:      "Total number of guest profiles created, by class.",
	},
	[]string{"class"},
)

// GuestsDeletedTotal counts deleted guest profiles.
var GuestsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guests_deleted_total",
		Help:      "Total number of guest profiles deleted.",
	},
)

// VisitsRecordedTotal counts visit notes appended to guests.
var VisitsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visits_recorded_total",
		Help:      "Total number of visit notes recorded.",
	},
)

// PhotoBytesStored tracks the size of uploaded guest photos.
var PhotoBytesStored = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "photo_bytes_stored",
		Help:      "Size distribution of stored guest photos in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 6), // 16KiB … 16MiB
	},
)
