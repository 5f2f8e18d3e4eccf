package http

import (
	"errors"
	"net/http"

	"repayment-planner/domain"
	"repayment-planner/logging"
	"repayment-planner/payoff"
	"repayment-planner/service"
)

type RepaymentHandler struct {
	service *service.RepaymentService
	logger  *logging.Logger
}

func NewRepaymentHandler(service *service.RepaymentService, logger *logging.Logger) *RepaymentHandler {
	return &RepaymentHandler{service: service, logger: logger.WithComponent(logging.ComponentHTTP)}
}

type repaymentData struct {
	RepaymentComparisonResult domain.RepaymentComparison `json:"repaymentComparisonResult"`
}

type repaymentResponse struct {
	Data repaymentData `json:"data"`
}

// CompareStrategies answers 200 when at least one strategy pays everything
// off, 422 when neither does and 400 on invalid debts.
func (h *RepaymentHandler) CompareStrategies(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}

	var input domain.RepaymentInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.logger.InfoContext(r.Context(), "error decoding request body", "error", err, "request_id", RequestID(r))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Compare(r.Context(), input)

	var verr *payoff.ValidationError
	var cerr *payoff.ComparisonError
	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: verr.Error(), Field: verr.Field, DebtID: verr.DebtID}
		if verr.Index >= 0 {
			index := verr.Index
			resp.Index = &index
		}
		writeJSON(w, h.logger, http.StatusBadRequest, resp)
	case errors.As(err, &cerr):
		writeJSON(w, h.logger, http.StatusUnprocessableEntity, repaymentResponse{Data: repaymentData{result}})
	case err != nil:
		h.logger.ErrorContext(r.Context(), "error comparing strategies", "error", err, "request_id", RequestID(r))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		writeJSON(w, h.logger, http.StatusOK, repaymentResponse{Data: repaymentData{result}})
	}
}
