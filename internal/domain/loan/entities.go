package loan

import (
	"errors"
	"time"
)

var (
	// ErrNotFound also covers paid-off loans on the repayment path:
	// callers cannot tell a retired loan from a missing one.
	ErrNotFound      = errors.New("loan not found or already paid")
	ErrNoLoans       = errors.New("no loans found for this user")
	ErrAlreadyFunded = errors.New("loan already created for this application")
	ErrInvalidTenure = errors.New("tenure months must be positive")
)

// Loan is the financial record created when an application is approved.
// EMI is fixed for the life of the loan; principal_left is the running
// balance and is never re-amortized.
type Loan struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"id"`
	// FK to applications.id; one loan per application
	ApplicationID uint64  `gorm:"column:application_id;not null;uniqueIndex:ux_loans_application" json:"-"`
	UserID        string  `gorm:"column:user_id;type:char(32);not null;index:idx_loans_user" json:"user_id"`
	InterestRate  float64 `gorm:"column:interest_rate;not null" json:"interest_rate"`
	PrincipalLeft float64 `gorm:"column:principal_left;not null" json:"principal_left"`
	TenureMonths  int     `gorm:"column:tenure_months;not null" json:"tenure_months"`
	EMI           float64 `gorm:"column:emi;not null" json:"emi"`
	IsPaid        bool    `gorm:"column:is_paid;not null;default:false" json:"is_paid"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Transaction is an append-only EMI payment record.
type Transaction struct {
	ID     uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LoanID uint64  `gorm:"column:loan_id;not null;index:idx_transactions_loan" json:"-"`
	Amount float64 `gorm:"column:amount;not null" json:"amount"`
	// calendar tag "YYYY-MM"; not unique, several payments may share a month
	MonthYear string    `gorm:"column:month_year;type:char(7);not null" json:"month_year"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
