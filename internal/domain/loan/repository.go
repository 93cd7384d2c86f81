package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction. Only meaningful inside a UnitOfWork.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Loan, error)
	ListByUserID(ctx context.Context, userID string) ([]Loan, error)

	CreateTransaction(ctx context.Context, t *Transaction) error
	// ListTransactions returns a loan's payments oldest first.
	ListTransactions(ctx context.Context, loanNumericID uint64) ([]Transaction, error)

	// Aggregates for the statistics endpoint.
	Count(ctx context.Context) (int64, error)
	CountRepaid(ctx context.Context) (int64, error)
	// SumInterestOutstanding is Σ principal_left·interest_rate·tenure_months/100
	// over all loans, computed store-side.
	SumInterestOutstanding(ctx context.Context) (float64, error)
}
