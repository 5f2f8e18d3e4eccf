package http

import (
	"net/http"

	"repayment-planner/domain"
	"repayment-planner/logging"
	"repayment-planner/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  *logging.Logger
}

func NewLoanHandler(service *service.LoanService, logger *logging.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger.WithComponent(logging.ComponentHTTP)}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}

	var input domain.LoanInput
	if err := decodeJSON(w, r, &input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		h.logger.InfoContext(r.Context(), "rejected loan calculation", "error", err, "request_id", RequestID(r))
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
