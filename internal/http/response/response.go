package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobbridge/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Error     *common.Error `json:"error"`
	Transient bool          `json:"transient"`
}

// Error writes the taxonomy error with a status that lets callers tell
// "try again" (transient) apart from "this action is not allowed".
func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError && errorCollector != nil {
		errorCollector.IncErrors()
	}
	JSON(w, status, errorBody{Error: appErr, Transient: !common.Permanent(appErr)})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden, common.CodeQuotaExceeded:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeIllegalTransition, common.CodeDuplicateApplication, common.CodeAlreadyResolved,
		common.CodeInvalidState, common.CodeConflict, common.CodeContention:
		return http.StatusConflict
	case common.CodeJobNotActive:
		return http.StatusUnprocessableEntity
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
