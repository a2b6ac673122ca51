package autogallery

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"autogallery/internal/gallery"
)

var (
	metricsOnce      sync.Once
	occurrencesTotal *prometheus.CounterVec
	itemsPrepared    prometheus.Counter
)

func initMetrics() {
	metricsOnce.Do(func() {
		occurrencesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "autogallery",
			Subsystem: "gallery",
			Name:      "occurrences_total",
			Help:      "Gallery placeholders processed, by outcome.",
		}, []string{"outcome"})

		itemsPrepared = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "autogallery",
			Subsystem: "gallery",
			Name:      "items_prepared_total",
			Help:      "Content items that contained at least one gallery placeholder.",
		})
	})
}

type metricsObserver struct{}

func (metricsObserver) ObserveOccurrence(outcome gallery.Outcome) {
	occurrencesTotal.WithLabelValues(string(outcome)).Inc()
}
