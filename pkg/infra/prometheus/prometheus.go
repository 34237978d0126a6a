package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	ModerationRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modguard_requests_total",
			Help: "Total number of moderation requests processed",
		},
		[]string{"outcome"},
	)

	ModerationBlockedTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modguard_blocked_total",
			Help: "Messages blocked, by category and detection source",
		},
		[]string{"category", "source"},
	)

	ModerationBanTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modguard_bans_total",
			Help: "Accounts banned, by trigger",
		},
		[]string{"trigger"},
	)

	ModerationFailOpenTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "modguard_fail_open_total",
			Help: "Requests allowed through because of an infrastructure failure",
		},
	)

	ProviderErrorTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "modguard_provider_errors_total",
			Help: "AI moderation provider failures",
		},
		[]string{"provider"},
	)
)

func init() {
	registerer.MustRegister(collectors.NewGoCollector())
	registerer.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

func Registry() *prometheus.Registry {
	return registry
}
