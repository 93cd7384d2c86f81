package loanmock

import (
	"context"
	"errors"

	domain "creditsea-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies loan.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	SaveFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn            func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn   func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByApplicationIDFn     func(ctx context.Context, applicationID uint64) (*domain.Loan, error)
	ListByUserIDFn           func(ctx context.Context, userID string) ([]domain.Loan, error)
	CreateTransactionFn      func(ctx context.Context, t *domain.Transaction) error
	ListTransactionsFn       func(ctx context.Context, loanNumericID uint64) ([]domain.Transaction, error)
	CountFn                  func(ctx context.Context) (int64, error)
	CountRepaidFn            func(ctx context.Context) (int64, error)
	SumInterestOutstandingFn func(ctx context.Context) (float64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.Loan, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByUserID(ctx context.Context, userID string) ([]domain.Loan, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, t)
	}
	return nil
}

func (m *Repo) ListTransactions(ctx context.Context, loanNumericID uint64) ([]domain.Transaction, error) {
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, loanNumericID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CountRepaid(ctx context.Context) (int64, error) {
	if m.CountRepaidFn != nil {
		return m.CountRepaidFn(ctx)
	}
	return 0, nil
}

func (m *Repo) SumInterestOutstanding(ctx context.Context) (float64, error) {
	if m.SumInterestOutstandingFn != nil {
		return m.SumInterestOutstandingFn(ctx)
	}
	return 0, nil
}
