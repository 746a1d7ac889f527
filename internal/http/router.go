package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jobbridge/internal/domain/actor"
	"jobbridge/internal/http/handlers"
	"jobbridge/internal/http/metrics"
	httpmw "jobbridge/internal/http/middleware"
)

type RouterDependencies struct {
	CandidateHandler   *handlers.CandidateHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	PaymentHandler     *handlers.PaymentHandler
	PlacementHandler   *handlers.PlacementHandler
	MetricsHandler     *handlers.MetricsHandler
	Metrics            *metrics.Collector
	Logger             *slog.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.ListActive(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && segments(path) == 2:
			r.deps.JobHandler.Get(w, req)
			return
		}

		protected := httpmw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			r.handleProtected(w, req)
		}))
		protected.ServeHTTP(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/candidates/profile":
		requireRole(actor.RoleSeeker)(r.deps.CandidateHandler.Register).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/candidates/profile":
		requireRole(actor.RoleSeeker)(r.deps.CandidateHandler.Get).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/candidates/profile":
		requireRole(actor.RoleSeeker)(r.deps.CandidateHandler.Update).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && path == "/candidates/profile":
		requireRole(actor.RoleSeeker)(r.deps.CandidateHandler.Deactivate).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/jobs":
		requireRole(actor.RoleEmployer)(r.deps.JobHandler.Create).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/employers/jobs":
		requireRole(actor.RoleEmployer)(r.deps.JobHandler.ListByEmployer).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/jobs/pending":
		requireRole(actor.RoleAdmin)(r.deps.JobHandler.ListPending).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/status"):
		requireRole(actor.RoleAdmin)(r.deps.JobHandler.Moderate).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications"):
		requireRole(actor.RoleEmployer, actor.RoleAdmin)(r.deps.ApplicationHandler.ListByJob).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/applications":
		requireRole(actor.RoleSeeker)(r.deps.ApplicationHandler.Submit).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		requireRole(actor.RoleSeeker)(r.deps.ApplicationHandler.ListMine).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		requireRole(actor.RoleEmployer, actor.RoleAdmin)(r.deps.ApplicationHandler.UpdateStatus).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/withdraw"):
		requireRole(actor.RoleSeeker)(r.deps.ApplicationHandler.Withdraw).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/placement"):
		requireRole(actor.RoleEmployer, actor.RoleAdmin)(r.deps.PlacementHandler.GetByApplication).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && segments(path) == 2:
		r.deps.ApplicationHandler.Get(w, req)
		return

	case req.Method == http.MethodPost && path == "/payments":
		requireRole(actor.RoleSeeker)(r.deps.PaymentHandler.Submit).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/payments":
		requireRole(actor.RoleSeeker)(r.deps.PaymentHandler.ListMine).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/payments":
		requireRole(actor.RoleAdmin)(r.deps.PaymentHandler.ListPending).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/payments/") && strings.HasSuffix(path, "/approve"):
		requireRole(actor.RoleAdmin)(r.deps.PaymentHandler.Approve).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/payments/") && strings.HasSuffix(path, "/reject"):
		requireRole(actor.RoleAdmin)(r.deps.PaymentHandler.Reject).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/placements":
		requireRole(actor.RoleAdmin)(r.deps.PlacementHandler.List).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/placements/") && strings.HasSuffix(path, "/collect"):
		requireRole(actor.RoleAdmin)(r.deps.PlacementHandler.MarkCollected).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

func requireRole(roles ...actor.Role) func(http.HandlerFunc) http.Handler {
	return func(handler http.HandlerFunc) http.Handler {
		return httpmw.RequireRole(roles...)(handler)
	}
}

func segments(path string) int {
	return len(strings.Split(strings.Trim(path, "/"), "/"))
}
