// Package metrics GTM 이벤트 전송 현황을 Prometheus 지표로 노출합니다.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "echo_gtm"

// Recorder gtm.Recorder 구현체입니다. 인스턴스마다 독립된 Registry를 가집니다.
type Recorder struct {
	registry *prometheus.Registry

	dispatches      *prometheus.CounterVec
	trackingEnabled prometheus.Gauge
}

// New 지표를 등록한 Recorder를 생성합니다.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "The number of tracking dispatches by kind, event name and whether they reached a data layer",
		}, []string{"kind", "event", "delivered"}),
		trackingEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracking_enabled",
			Help:      "1 if GTM tracking is currently enabled, 0 otherwise",
		}),
	}

	r.registry.MustRegister(
		r.dispatches,
		r.trackingEnabled,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// ObserveDispatch 이벤트 전송 한 건을 기록합니다.
func (r *Recorder) ObserveDispatch(kind, event string, delivered bool) {
	r.dispatches.WithLabelValues(kind, event, strconv.FormatBool(delivered)).Inc()
}

// SetTrackingEnabled 추적 활성화 상태를 기록합니다.
func (r *Recorder) SetTrackingEnabled(enabled bool) {
	if enabled {
		r.trackingEnabled.Set(1)
		return
	}
	r.trackingEnabled.Set(0)
}

// Registry 지표가 등록된 Registry를 반환합니다.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler /metrics 응답 핸들러를 반환합니다.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
