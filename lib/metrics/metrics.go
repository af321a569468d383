package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aumgfx_output_frames_drawn_total",
		Help: "Total number of frames drawn and swapped by a graphics output",
	}, []string{"name"})
	FrameSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aumgfx_output_frame_seconds",
		Help:    "Time between consecutive frames of a graphics output",
		Buckets: []float64{.001, .004, .008, .0167, .025, .0334, .05, .1, .25},
	}, []string{"name"})
	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aumgfx_output_runs_total",
		Help: "Total number of finished graphics output runs by result",
	}, []string{"name", "result"})
	Failures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aumgfx_output_failures_total",
		Help: "Total number of graphics output failures by code and category",
	}, []string{"name", "code", "category"})
)

type OutputMetrics struct {
	name         string
	FramesDrawn  prometheus.Counter
	FrameSeconds prometheus.Observer
}

func NewOutputMetrics(name string) OutputMetrics {
	m := OutputMetrics{
		name:         name,
		FramesDrawn:  FramesDrawn.WithLabelValues(name),
		FrameSeconds: FrameSeconds.WithLabelValues(name),
	}
	m.FramesDrawn.Add(0)
	return m
}

func (m OutputMetrics) RunFinished(result string) {
	Runs.WithLabelValues(m.name, result).Inc()
}

func (m OutputMetrics) Failed(code, category string) {
	Failures.WithLabelValues(m.name, code, category).Inc()
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
