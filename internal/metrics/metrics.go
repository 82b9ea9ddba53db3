// Package metrics exposes Prometheus counters for widget exchanges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Exchanges counts accepted submissions, labelled by input source.
	Exchanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acadassist",
		Name:      "exchanges_total",
		Help:      "Submissions forwarded to the dialogue backend.",
	}, []string{"source"})

	// TransportFailures counts backend calls replaced by the unavailable notice.
	TransportFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acadassist",
		Name:      "transport_failures_total",
		Help:      "Backend calls that failed and produced the unavailable notice.",
	}, []string{"reason"})

	// BotTurns counts bot turns appended to widget histories.
	BotTurns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acadassist",
		Name:      "bot_turns_total",
		Help:      "Bot turns appended across all widget sessions.",
	})

	// Utterances counts speech synthesis requests, labelled by locale.
	Utterances = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acadassist",
		Name:      "utterances_total",
		Help:      "Utterances enqueued on a speech synthesizer.",
	}, []string{"locale"})

	// ActiveSessions tracks open widget sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "acadassist",
		Name:      "widget_sessions_active",
		Help:      "Widget sessions currently connected.",
	})
)

const (
	SourceTyped  = "typed"
	SourceSpoken = "spoken"

	ReasonNetwork = "network"
	ReasonStatus  = "status"
	ReasonPayload = "payload"
)
