// Package metrics はリクエスト結果のPrometheusカウンタを提供する
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome はリクエストの処理結果
type Outcome string

const (
	OutcomeServed    Outcome = "served"     // ファイルを返した
	OutcomeNotFound  Outcome = "not_found"  // 解決できなかった
	OutcomeReadError Outcome = "read_error" // 解決後の読み込みに失敗した
)

// Metrics はサイトサーバーのメトリクスをまとめる
// nilのMetricsに対する記録は何もしない
type Metrics struct {
	registry      *prometheus.Registry
	requestsTotal *prometheus.CounterVec
	bytesTotal    prometheus.Counter
}

// New は専用レジストリを持つMetricsを作成する
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "site_requests_total",
				Help: "処理結果ごとのリクエスト数",
			},
			[]string{"outcome"},
		),
		bytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "site_response_bytes_total",
			Help: "返したファイル本文の合計バイト数",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.bytesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Observe はリクエスト1件の結果を記録する
func (m *Metrics) Observe(outcome Outcome, bytes int) {
	if m == nil {
		return
	}
	m.requestsTotal.With(prometheus.Labels{"outcome": string(outcome)}).Inc()
	if bytes > 0 {
		m.bytesTotal.Add(float64(bytes))
	}
}

// Handler はPrometheus形式で公開するhttp.Handlerを返す
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
