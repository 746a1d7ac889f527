package handlers

import (
	"net/http"

	"jobbridge/internal/app"
	"jobbridge/internal/common"
	"jobbridge/internal/domain/job"
	"jobbridge/internal/http/middleware"
	"jobbridge/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title          string   `json:"title"`
	Industry       string   `json:"industry"`
	Subcategory    string   `json:"subcategory"`
	RequiredSkills []string `json:"required_skills"`
	MinExperience  int      `json:"min_experience"`
	MaxExperience  int      `json:"max_experience"`
	SalaryMin      int      `json:"salary_min"`
	SalaryMax      int      `json:"salary_max"`
	Location       string   `json:"location"`
	Region         string   `json:"region"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), job.Posting{
		EmployerID:     employerID,
		Title:          req.Title,
		Industry:       req.Industry,
		Subcategory:    req.Subcategory,
		RequiredSkills: req.RequiredSkills,
		MinExperience:  req.MinExperience,
		MaxExperience:  req.MaxExperience,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Location:       req.Location,
		Region:         req.Region,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	posting, err := h.jobs.Get(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, posting)
}

func (h *JobHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.jobs.ListActive(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.jobs.ListPending(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) ListByEmployer(w http.ResponseWriter, r *http.Request) {
	employerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.jobs.ListByEmployer(r.Context(), employerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type moderateRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req moderateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.jobs.Moderate(r.Context(), jobID, job.ModerationStatus(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
