package handlers

import (
	"net/http"

	"jobbridge/internal/app"
	"jobbridge/internal/http/response"
)

type PlacementHandler struct {
	placements *app.PlacementService
}

func NewPlacementHandler(placements *app.PlacementService) *PlacementHandler {
	return &PlacementHandler{placements: placements}
}

func (h *PlacementHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.placements.List(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PlacementHandler) GetByApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.placements.GetByApplication(r.Context(), applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *PlacementHandler) MarkCollected(w http.ResponseWriter, r *http.Request) {
	placementID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.placements.MarkCollected(r.Context(), placementID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
