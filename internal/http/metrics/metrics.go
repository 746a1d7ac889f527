package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type Collector struct {
	requests     uint64
	errors       uint64
	applications uint64
	placements   uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) IncApplications() {
	atomic.AddUint64(&c.applications, 1)
}

func (c *Collector) IncPlacements() {
	atomic.AddUint64(&c.placements, 1)
}

func (c *Collector) Snapshot() (requests, errors, applications, placements uint64) {
	return atomic.LoadUint64(&c.requests), atomic.LoadUint64(&c.errors),
		atomic.LoadUint64(&c.applications), atomic.LoadUint64(&c.placements)
}

type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var requests, errors, applications, placements uint64
	if h.collector != nil {
		requests, errors, applications, placements = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP jobbridge_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobbridge_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "jobbridge_requests_total %d\n", requests)
	_, _ = fmt.Fprintf(w, "# HELP jobbridge_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobbridge_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "jobbridge_errors_total %d\n", errors)
	_, _ = fmt.Fprintf(w, "# HELP jobbridge_applications_total Total number of submitted applications.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobbridge_applications_total counter\n")
	_, _ = fmt.Fprintf(w, "jobbridge_applications_total %d\n", applications)
	_, _ = fmt.Fprintf(w, "# HELP jobbridge_placements_total Total number of placements created.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobbridge_placements_total counter\n")
	_, _ = fmt.Fprintf(w, "jobbridge_placements_total %d\n", placements)
}
