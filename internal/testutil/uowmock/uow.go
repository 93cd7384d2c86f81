package uowmock

import (
	"context"
	"errors"
	"sync"

	"creditsea-backend/internal/domain/application"
	"creditsea-backend/internal/domain/loan"
	"creditsea-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn        func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinApplicationTxFn func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, applicationID, fn)
	}
	return errUnimplemented
}

// Serialized wraps repos in a UnitOfWork whose closures run one at a time
// under a mutex, mimicking the row-lock serialization of the real store.
// The loan/application passed to the closure is re-fetched inside the lock,
// so concurrent callers observe each other's committed writes.
type Serialized struct {
	mu    sync.Mutex
	Repos uow.Repos
}

var _ uow.UnitOfWork = (*Serialized)(nil)

func NewSerialized(r uow.Repos) *Serialized { return &Serialized{Repos: r} }

func (s *Serialized) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.Repos)
}

func (s *Serialized) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(s.Repos, l)
}

func (s *Serialized) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.Repos.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
	if err != nil {
		return err
	}
	return fn(s.Repos, a)
}
