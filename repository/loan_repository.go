package repository

import "repayment-planner/domain"

type LoanCalculation struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

type LoanRepository interface {
	Save(input domain.LoanInput, result domain.LoanResult) error
	Recent(limit int) []LoanCalculation
}
