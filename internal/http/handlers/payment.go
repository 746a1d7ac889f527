package handlers

import (
	"net/http"

	"jobbridge/internal/app"
	"jobbridge/internal/common"
	"jobbridge/internal/domain/payment"
	"jobbridge/internal/http/middleware"
	"jobbridge/internal/http/response"
)

type PaymentHandler struct {
	payments *app.PaymentService
}

func NewPaymentHandler(payments *app.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type paymentRequest struct {
	Purpose     string `json:"purpose"`
	Amount      int    `json:"amount"`
	EvidenceRef string `json:"evidence_ref"`
}

func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.payments.Submit(r.Context(), candidateID, payment.Purpose(req.Purpose), req.Amount, req.EvidenceRef)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.payments.ListByCandidate(r.Context(), candidateID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PaymentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.payments.ListPending(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	paymentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	approved, err := h.payments.Approve(r.Context(), paymentID, reviewerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, approved)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	paymentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req rejectRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Reason == "" {
		response.Error(w, common.NewValidationError("rejection requires a reason", map[string]string{"reason": "reason is required"}))
		return
	}
	rejected, err := h.payments.Reject(r.Context(), paymentID, reviewerID, req.Reason)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, rejected)
}
