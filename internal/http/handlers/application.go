package handlers

import (
	"net/http"
	"strings"
	"time"

	"jobbridge/internal/app"
	"jobbridge/internal/common"
	"jobbridge/internal/domain/application"
	"jobbridge/internal/http/metrics"
	"jobbridge/internal/http/middleware"
	"jobbridge/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
	collector    *metrics.Collector
	submitLimit  int
	submitWindow time.Duration
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter, collector *metrics.Collector, submitLimit int, submitWindow time.Duration) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		limiter:      limiter,
		collector:    collector,
		submitLimit:  submitLimit,
		submitWindow: submitWindow,
	}
}

type submitRequest struct {
	JobID string `json:"job_id"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.JobID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "job_id is required"}))
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "submit:" + candidateID.String()
		if !h.limiter.Allow(key, h.submitLimit, h.submitWindow) {
			response.Error(w, common.NewError(common.CodeRateLimited, "submit rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Submit(r.Context(), candidateID, jobID, r.Header.Get("Idempotency-Key"))
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.collector != nil {
		h.collector.IncApplications()
	}
	response.JSON(w, http.StatusCreated, created)
}

type transitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Salary int    `json:"salary"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	result, err := h.applications.Transition(r.Context(), applicationID, application.Status(req.Status), who, app.TransitionInput{
		Reason: req.Reason,
		Salary: req.Salary,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.collector != nil && result.Placement != nil {
		h.collector.IncPlacements()
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	withdrawn, err := h.applications.Withdraw(r.Context(), applicationID, candidateID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, withdrawn)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListByCandidate(r.Context(), candidateID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByJob(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}
