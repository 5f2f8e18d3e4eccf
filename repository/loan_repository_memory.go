package repository

import (
	"sync"

	"repayment-planner/domain"
)

const defaultLoanHistory = 1000

// LoanRepositoryMemory keeps the most recent loan calculations in memory.
type LoanRepositoryMemory struct {
	mu       sync.Mutex
	capacity int
	data     []LoanCalculation
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		capacity: defaultLoanHistory,
		data:     []LoanCalculation{},
	}
}

// Save stores the calculation, dropping the oldest once capacity is reached.
func (r *LoanRepositoryMemory) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) >= r.capacity {
		r.data = append(r.data[:0], r.data[1:]...)
	}
	r.data = append(r.data, LoanCalculation{Input: input, Result: result})
	return nil
}

// Recent returns up to limit calculations, newest first.
func (r *LoanRepositoryMemory) Recent(limit int) []LoanCalculation {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]LoanCalculation, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out
}
