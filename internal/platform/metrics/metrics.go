// Package metrics exposes board counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mergington/activity-board/internal/app/board"
)

const namespace = "activity_board"

// Board counts catalog loads and flow outcomes. It implements board.Recorder.
type Board struct {
	reg *prometheus.Registry

	loads   *prometheus.CounterVec
	actions *prometheus.CounterVec
}

var _ board.Recorder = (*Board)(nil)

// NewBoard registers the board collectors on a fresh registry.
func NewBoard() *Board {
	reg := prometheus.NewRegistry()
	b := &Board{
		reg: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog load attempts by result.",
		}, []string{"result"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Signup and unregister flows by outcome.",
		}, []string{"action", "outcome"}),
	}
	reg.MustRegister(b.loads, b.actions)
	return b
}

func (b *Board) CatalogLoaded(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	b.loads.WithLabelValues(result).Inc()
}

func (b *Board) ActionCompleted(action board.Action, outcome board.Outcome) {
	b.actions.WithLabelValues(string(action), string(outcome)).Inc()
}

// Handler serves the registry.
func (b *Board) Handler() http.Handler {
	return promhttp.HandlerFor(b.reg, promhttp.HandlerOpts{Registry: b.reg})
}
