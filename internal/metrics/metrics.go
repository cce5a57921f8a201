package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScanCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "scan_cycles_total", Help: "Completed scan cycles"},
	)
	QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quotes_total", Help: "Quote requests by outcome"},
		[]string{"outcome"}, // ok|absent|error
	)
	OpportunitiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "opportunities_total", Help: "Round trips above the profit threshold"},
		[]string{"symbol"},
	)
	ExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "executions_total", Help: "Trade executions by mode and status"},
		[]string{"mode", "status"},
	)
	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "catalog_size", Help: "Tokens currently in the scan catalog"},
	)
	CatalogRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_refresh_total", Help: "Catalog refresh attempts by outcome"},
		[]string{"outcome"}, // ok|empty|error
	)
)

func init() {
	prometheus.MustRegister(
		ScanCyclesTotal,
		QuotesTotal,
		OpportunitiesTotal,
		ExecutionsTotal,
		CatalogSize,
		CatalogRefreshTotal,
	)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
