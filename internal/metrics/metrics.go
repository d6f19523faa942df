// Package metrics объявляет Prometheus-метрики клиента и бэкенда радиатора.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "radiator"

// Metrics содержит набор коллекторов. Создаётся один раз на процесс и переживает
// перезагрузки сессий.
type Metrics struct {
	EventsApplied   prometheus.Counter
	MessagesDropped prometheus.Counter
	Disconnects     prometheus.Counter
	HealthProbes    *prometheus.CounterVec
	Reloads         prometheus.Counter
	ConfigSaves     *prometheus.CounterVec

	EventsSubmitted    prometheus.Counter
	Broadcasts         prometheus.Counter
	Subscribers        prometheus.Gauge
	SubscribersDropped prometheus.Counter
}

// New создаёт коллекторы и регистрирует их в reg. При reg == nil метрики
// работают, но никуда не регистрируются.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_applied_total",
			Help:      "Events applied to the dashboard event store",
		}),
		MessagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dropped_total",
			Help:      "Channel messages dropped because they could not be decoded",
		}),
		Disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disconnects_total",
			Help:      "Transitions of the event channel into the disconnected state",
		}),
		HealthProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_probes_total",
			Help:      "Backend liveness probes by result",
		}, []string{"result"}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_reloads_total",
			Help:      "Dashboard sessions discarded and rebuilt after recovery",
		}),
		ConfigSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "configuration_saves_total",
			Help:      "Configuration save requests by result",
		}, []string{"result"}),
		EventsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "events_submitted_total",
			Help:      "Events submitted to the backend",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "broadcasts_total",
			Help:      "Events broadcast to channel subscribers",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "subscribers",
			Help:      "Currently connected channel subscribers",
		}),
		SubscribersDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "subscribers_dropped_total",
			Help:      "Subscribers disconnected because their queue overflowed",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.EventsApplied, m.MessagesDropped, m.Disconnects, m.HealthProbes,
			m.Reloads, m.ConfigSaves, m.EventsSubmitted, m.Broadcasts, m.Subscribers,
			m.SubscribersDropped,
		)
	}
	return m
}

// Handler отдаёт метрики реестра в формате Prometheus.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
