package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ gtm.Recorder = (*Recorder)(nil)

func TestRecorder_ObserveDispatch(t *testing.T) {
	r := New()

	r.ObserveDispatch(gtm.KindView, "content-view", true)
	r.ObserveDispatch(gtm.KindView, "content-view", true)
	r.ObserveDispatch(gtm.KindEvent, "interaction", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.dispatches.WithLabelValues("view", "content-view", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.dispatches.WithLabelValues("event", "interaction", "false")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.dispatches))
}

func TestRecorder_SetTrackingEnabled(t *testing.T) {
	r := New()

	r.SetTrackingEnabled(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.trackingEnabled))

	r.SetTrackingEnabled(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.trackingEnabled))
}

func TestRecorder_WithSupport(t *testing.T) {
	r := New()
	s, err := gtm.New(gtm.Options{ID: gtm.ID("GTM-DEMO"), Recorder: r})
	require.NoError(t, err)

	s.TrackEvent(gtm.NewDataLayer(), gtm.Event{Event: "signup"})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.dispatches.WithLabelValues("event", "signup", "true")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.ObserveDispatch(gtm.KindEvent, "signup", true)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `echo_gtm_dispatch_total{delivered="true",event="signup",kind="event"} 1`)
	assert.Contains(t, string(body), "echo_gtm_tracking_enabled")
	assert.Contains(t, string(body), "go_goroutines")
}
