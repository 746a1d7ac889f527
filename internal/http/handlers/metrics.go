package handlers

import (
	"net/http"

	"jobbridge/internal/http/metrics"
)

type MetricsHandler struct {
	inner *metrics.Handler
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{inner: metrics.NewHandler(collector)}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.inner.ServeHTTP(w, r)
}
