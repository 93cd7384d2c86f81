package uow

import (
	"context"

	"creditsea-backend/internal/domain/application"
	"creditsea-backend/internal/domain/loan"
	"creditsea-backend/internal/domain/user"
)

type Repos struct {
	Users        user.Repository
	Applications application.Repository
	Loans        loan.Repository
}

// UnitOfWork runs closures inside a single store transaction so every
// read-check-write sequence commits or rolls back as one unit.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up front and passes it in; two
	// concurrent repayments of the same loan serialize on that lock.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// WithinApplicationTx does the same for an application row.
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
