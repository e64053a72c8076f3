package game

import (
	"time"

	"snake-autopilot/game/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts game events. A nil *Metrics records nothing.
type Metrics struct {
	ticks          prometheus.Counter
	foodEaten      prometheus.Counter
	deaths         *prometheus.CounterVec
	fallbacks      prometheus.Counter
	expandedNodes  *prometheus.HistogramVec
	hamiltonBuilds prometheus.Histogram
}

// NewMetrics registers the game metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_ticks_total",
			Help: "Simulation ticks applied to a live snake",
		}),
		foodEaten: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_food_eaten_total",
			Help: "Food items eaten",
		}),
		deaths: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snake_deaths_total",
			Help: "Deaths by collision kind",
		}, []string{"kind"}),
		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_autopilot_fallbacks_total",
			Help: "Autopilot ticks with no route to the food",
		}),
		expandedNodes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snake_search_expanded_nodes",
			Help:    "Nodes expanded per route search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
		}, []string{"algorithm"}),
		hamiltonBuilds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snake_hamiltonian_build_seconds",
			Help:    "Time spent building a Hamiltonian cycle",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 0.1ms to ~1.6s
		}),
	}
}

func (m *Metrics) tick() {
	if m != nil {
		m.ticks.Inc()
	}
}

func (m *Metrics) ate() {
	if m != nil {
		m.foodEaten.Inc()
	}
}

func (m *Metrics) died(kind types.CollisionType) {
	if m != nil {
		m.deaths.WithLabelValues(kind.String()).Inc()
	}
}

func (m *Metrics) searched(alg types.Algorithm, expanded int, fallback bool) {
	if m == nil {
		return
	}
	if alg != types.Hamiltonian {
		m.expandedNodes.WithLabelValues(alg.String()).Observe(float64(expanded))
	}
	if fallback {
		m.fallbacks.Inc()
	}
}

func (m *Metrics) built(d time.Duration) {
	if m != nil {
		m.hamiltonBuilds.Observe(d.Seconds())
	}
}
