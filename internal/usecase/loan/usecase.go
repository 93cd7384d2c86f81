package loan

import (
	"context"
	"errors"
	"time"

	appDomain "creditsea-backend/internal/domain/application"
	loanDomain "creditsea-backend/internal/domain/loan"
	"creditsea-backend/internal/domain/uow"
	userDomain "creditsea-backend/internal/domain/user"
	appUC "creditsea-backend/internal/usecase/application"
	"creditsea-backend/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	loans loanDomain.Repository
	apps  appDomain.Repository
	users userDomain.Repository
	uow   uow.UnitOfWork
	log   *logrus.Logger
}

func NewUsecase(loans loanDomain.Repository, apps appDomain.Repository, users userDomain.Repository, tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{loans: loans, apps: apps, users: users, uow: tx, log: log}
}

// Fund approves an application and creates its loan in one transaction.
// Approval is re-asserted even if an admin already approved the application
// through the decision endpoint. A second funding call conflicts: one loan
// per application.
func (u *Usecase) Fund(ctx context.Context, adminID, applicationID string) (*LoanDTO, error) {
	var dto LoanDTO

	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if a.Tenure <= 0 {
			return loanDomain.ErrInvalidTenure
		}

		_, err := r.Loans.GetByApplicationID(ctx, a.ID)
		switch {
		case err == nil:
			return loanDomain.ErrAlreadyFunded
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		a.Status = appDomain.StatusApproved
		a.ApprovedBy = &adminID
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		l := &loanDomain.Loan{
			LoanID:        id.NewID32(),
			ApplicationID: a.ID,
			UserID:        a.UserID,
			InterestRate:  loanDomain.AnnualInterestRate,
			PrincipalLeft: a.Amount,
			TenureMonths:  a.Tenure,
			EMI:           loanDomain.EMI(a.Amount, loanDomain.AnnualInterestRate, a.Tenure),
			IsPaid:        false,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"loan_id":        dto.LoanID,
		"admin_id":       adminID,
		"emi":            dto.EMI,
	}).Info("loan approved and created")
	return &dto, nil
}

// PayEMI posts one full installment against the loan and returns the new
// balance. Runs with the loan row locked so concurrent payments serialize:
// each one decrements from the balance the previous one committed. The
// stored balance is not clamped; the final installment usually leaves a
// small residual either side of zero, which is accepted.
func (u *Usecase) PayEMI(ctx context.Context, userID, loanID string) (float64, error) {
	var newBalance float64

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.IsPaid {
			return loanDomain.ErrNotFound
		}
		newBalance = loanDomain.NextBalance(l.PrincipalLeft, l.EMI)

		t := &loanDomain.Transaction{
			LoanID:    l.ID,
			Amount:    l.EMI,
			MonthYear: time.Now().UTC().Format("2006-01"),
		}
		if err := r.Loans.CreateTransaction(ctx, t); err != nil {
			return err
		}

		l.PrincipalLeft = newBalance
		l.IsPaid = loanDomain.Retired(newBalance)
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, loanDomain.ErrNotFound
		}
		return 0, err
	}

	u.log.WithFields(logrus.Fields{
		"loan_id":     loanID,
		"user_id":     userID,
		"new_balance": newBalance,
	}).Info("emi payment posted")
	return newBalance, nil
}

// Details returns a loan and its full payment history, oldest first.
func (u *Usecase) Details(ctx context.Context, loanID string) (*LoanDetailsDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	ts, err := u.loans.ListTransactions(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &LoanDetailsDTO{LoanDTO: toLoanDTO(l), Transactions: toTransactionDTOs(ts)}, nil
}

// UserLoans returns all of the user's loans with their transactions and
// originating applications. Zero loans is a not-found, not an empty list;
// callers rely on the 404.
func (u *Usecase) UserLoans(ctx context.Context, userID string) ([]UserLoanDTO, error) {
	loans, err := u.loans.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, loanDomain.ErrNoLoans
	}

	out := make([]UserLoanDTO, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		ts, err := u.loans.ListTransactions(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		item := UserLoanDTO{LoanDTO: toLoanDTO(l), Transactions: toTransactionDTOs(ts)}
		if a, err := u.apps.GetByID(ctx, l.ApplicationID); err == nil {
			dto := appUC.ToDTO(a)
			item.Application = &dto
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// UserTotal sums the user's outstanding balances, clamping each at zero so
// overpaid loans never contribute negative amounts. Zero loans is a
// not-found, matching UserLoans.
func (u *Usecase) UserTotal(ctx context.Context, userID string) (float64, error) {
	loans, err := u.loans.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(loans) == 0 {
		return 0, loanDomain.ErrNoLoans
	}
	var total float64
	for i := range loans {
		total += loanDomain.ClampedBalance(loans[i].PrincipalLeft)
	}
	return total, nil
}

// Statistics computes the dashboard aggregates fresh on every call. The
// reads are independent and unlocked; a snapshot taken during concurrent
// writes is acceptable for these figures.
func (u *Usecase) Statistics(ctx context.Context) (*StatisticsDTO, error) {
	totalLoans, err := u.loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := u.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	disbursed, err := u.apps.SumApprovedAmount(ctx)
	if err != nil {
		return nil, err
	}
	savings, err := u.loans.SumInterestOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	repaid, err := u.loans.CountRepaid(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsDTO{
		TotalLoans:         totalLoans,
		TotalUsers:         totalUsers,
		TotalDisbursedCash: disbursed,
		TotalSavings:       savings,
		RepaidLoansCount:   repaid,
		// interest-plus-disbursed approximation, not a cash ledger sum
		TotalCashReceived: savings + disbursed,
	}, nil
}
