package echoapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	draftSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tayari_draft_saves_total",
		Help: "Number of draft saves.",
	})
	submissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tayari_submissions_total",
		Help: "Number of form submissions.",
	})
	exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tayari_exports_total",
		Help: "Number of exports by format.",
	}, []string{"format"})
	registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tayari_registrations_total",
		Help: "Number of account registrations.",
	})
)
