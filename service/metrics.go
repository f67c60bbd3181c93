package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rahilansari261/ai-slides-sub000/layoutschema"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "slides",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent handling API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})

	compileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "slides",
		Subsystem: "compiler",
		Name:      "layouts_compiled_total",
		Help:      "Layout compilations by outcome.",
	}, []string{"outcome"})

	declarationsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "slides",
		Subsystem: "compiler",
		Name:      "declarations_skipped_total",
		Help:      "Candidate declarations dropped because their spans never balanced.",
	})
)

// observeCompile records one compilation outcome. The compiler itself stays
// a pure function; only the service layer counts.
func observeCompile(res layoutschema.Result) {
	outcome := "ok"
	if res.Fallback {
		outcome = "fallback"
	}
	compileTotal.WithLabelValues(outcome).Inc()
	declarationsSkipped.Add(float64(res.Skipped))
}
