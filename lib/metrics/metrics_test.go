package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutputMetrics(t *testing.T) {
	m := NewOutputMetrics("metrics-test")
	m.FramesDrawn.Inc()
	m.FramesDrawn.Inc()
	m.FrameSeconds.Observe(0.016)
	m.RunFinished("success")
	m.Failed("WINDOW_CREATE_FAILED", "INITIALIZATION")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FramesDrawn))
	assert.Positive(t, testutil.CollectAndCount(FrameSeconds, "aumgfx_output_frame_seconds"))
	assert.Equal(t, 1.0, testutil.ToFloat64(Runs.WithLabelValues("metrics-test", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(Failures.WithLabelValues("metrics-test", "WINDOW_CREATE_FAILED", "INITIALIZATION")))
}

func TestHandlerExposesCounters(t *testing.T) {
	NewOutputMetrics("metrics-handler-test")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `aumgfx_output_frames_drawn_total{name="metrics-handler-test"} 0`)
}
