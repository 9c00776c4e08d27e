// Package metrics provides Prometheus metrics for the market maker
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Quote cycle gauges.
	IndifferencePrice = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_indifference_price",
		Help: "Indifference price computed on the last quote cycle",
	})
	QuotedSpread = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_quoted_spread",
		Help: "Full spread quoted on the last cycle",
	})
	Volatility = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_volatility",
		Help: "Scaled rolling volatility estimate",
	})
	OrderIntensity = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_order_intensity",
		Help: "Scaled rolling order intensity estimate",
	})
	MidPrice = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_mid_price",
		Help: "Current mid price",
	})

	// Position gauges.
	AssetPosition = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_asset_position",
		Help: "Current asset position",
	})
	PnL = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_pnl",
		Help: "Running PnL marked at mid",
	})

	// Counters.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mm_orders_placed_total",
		Help: "Orders placed by the quoting loop",
	})
	OrdersCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mm_orders_canceled_total",
		Help: "Stale orders canceled by the quoting loop",
	})
	FillsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mm_fills_total",
		Help: "Own trade executions received",
	})
	CyclesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mm_cycles_skipped_total",
		Help: "Quote cycles skipped while estimators warm up",
	})
)

// UpdateQuote records one completed quote cycle.
func UpdateQuote(indiff, spread, vol, intensity float64) {
	IndifferencePrice.Set(indiff)
	QuotedSpread.Set(spread)
	Volatility.Set(vol)
	OrderIntensity.Set(intensity)
}

// UpdatePosition records current position state.
func UpdatePosition(asset, pnl, mid float64) {
	AssetPosition.Set(asset)
	PnL.Set(pnl)
	MidPrice.Set(mid)
}

// StartMetricsServer 启动Prometheus指标服务器
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
