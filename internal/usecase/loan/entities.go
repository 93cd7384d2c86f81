package loan

import (
	"time"

	loanDomain "creditsea-backend/internal/domain/loan"
	appUC "creditsea-backend/internal/usecase/application"
)

type LoanDTO struct {
	LoanID        string    `json:"id"`
	UserID        string    `json:"user_id"`
	InterestRate  float64   `json:"interest_rate"`
	PrincipalLeft float64   `json:"principal_left"`
	TenureMonths  int       `json:"tenure_months"`
	EMI           float64   `json:"emi"`
	IsPaid        bool      `json:"is_paid"`
	CreatedAt     time.Time `json:"created_at"`
}

type TransactionDTO struct {
	ID        uint64    `json:"id"`
	Amount    float64   `json:"amount"`
	MonthYear string    `json:"month_year"`
	CreatedAt time.Time `json:"created_at"`
}

// LoanDetailsDTO is a loan plus its full ordered payment history.
type LoanDetailsDTO struct {
	LoanDTO
	Transactions []TransactionDTO `json:"transactions"`
}

// UserLoanDTO additionally carries the originating application.
type UserLoanDTO struct {
	LoanDTO
	Transactions []TransactionDTO       `json:"transactions"`
	Application  *appUC.ApplicationDTO  `json:"application"`
}

type StatisticsDTO struct {
	TotalLoans         int64   `json:"totalLoans"`
	TotalUsers         int64   `json:"totalUsers"`
	TotalDisbursedCash float64 `json:"totalDisbursedCash"`
	TotalSavings       float64 `json:"totalSavings"`
	RepaidLoansCount   int64   `json:"repaidLoansCount"`
	TotalCashReceived  float64 `json:"totalCashReceived"`
}

func toLoanDTO(l *loanDomain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:        l.LoanID,
		UserID:        l.UserID,
		InterestRate:  l.InterestRate,
		PrincipalLeft: l.PrincipalLeft,
		TenureMonths:  l.TenureMonths,
		EMI:           l.EMI,
		IsPaid:        l.IsPaid,
		CreatedAt:     l.CreatedAt,
	}
}

func toTransactionDTOs(ts []loanDomain.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(ts))
	for i := range ts {
		t := &ts[i]
		out = append(out, TransactionDTO{ID: t.ID, Amount: t.Amount, MonthYear: t.MonthYear, CreatedAt: t.CreatedAt})
	}
	return out
}
