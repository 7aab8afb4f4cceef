package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	completions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billora_assist_completions_total",
		Help: "Text completion attempts issued, by operation.",
	}, []string{"operation"})

	extractionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billora_assist_extraction_fallbacks_total",
		Help: "Invoice extractions that fell back to the demo draft.",
	})
)
