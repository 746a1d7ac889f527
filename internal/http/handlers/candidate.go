package handlers

import (
	"net/http"

	"jobbridge/internal/app"
	"jobbridge/internal/domain/candidate"
	"jobbridge/internal/http/middleware"
	"jobbridge/internal/http/response"
)

type CandidateHandler struct {
	candidates *app.CandidateService
}

func NewCandidateHandler(candidates *app.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

type candidateProfileRequest struct {
	FullName          string   `json:"full_name"`
	Industry          string   `json:"industry"`
	Subcategory       string   `json:"subcategory"`
	Skills            []string `json:"skills"`
	YearsOfExperience int      `json:"years_of_experience"`
	Location          string   `json:"location"`
	Region            string   `json:"region"`
}

func (h *CandidateHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req candidateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.candidates.Register(r.Context(), candidate.Profile{
		ID:                userID,
		FullName:          req.FullName,
		Industry:          req.Industry,
		Subcategory:       req.Subcategory,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
		Location:          req.Location,
		Region:            req.Region,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	profile, err := h.candidates.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req candidateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.candidates.Update(r.Context(), candidate.Profile{
		ID:                userID,
		FullName:          req.FullName,
		Industry:          req.Industry,
		Subcategory:       req.Subcategory,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
		Location:          req.Location,
		Region:            req.Region,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CandidateHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := h.candidates.Deactivate(r.Context(), userID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}
