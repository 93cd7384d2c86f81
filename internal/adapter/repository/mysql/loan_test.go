package mysql

import (
	"context"
	"errors"
	"testing"

	appDomain "creditsea-backend/internal/domain/application"
	loanDomain "creditsea-backend/internal/domain/loan"
	userDomain "creditsea-backend/internal/domain/user"
	"creditsea-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB and migrates every table the
// repositories touch. The domain models avoid mysql-only column types, so
// they migrate cleanly on sqlite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userDomain.User{},
		&appDomain.Application{},
		&loanDomain.Loan{},
		&loanDomain.Transaction{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, userID string, applicationID uint64) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:        loanID,
		ApplicationID: applicationID,
		UserID:        userID,
		InterestRate:  loanDomain.AnnualInterestRate,
		PrincipalLeft: 120_000,
		TenureMonths:  12,
		EMI:           loanDomain.EMI(120_000, loanDomain.AnnualInterestRate, 12),
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	userID := id.NewID32()

	l := makeLoan(loanID, userID, 1)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.UserID != userID {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, "dddddddddddddddddddddddddddddddd", 2)

	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.PrincipalLeft -= l.EMI
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.PrincipalLeft != l.PrincipalLeft {
		t.Errorf("PrincipalLeft not updated, got=%v want=%v", got.PrincipalLeft, l.PrincipalLeft)
	}
}

func TestLoanGetByLoanID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	_, err := repo.GetByLoanID(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLoanGetByApplicationID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32(), 42)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByApplicationID(ctx, 42)
	if err != nil {
		t.Fatalf("GetByApplicationID: %v", err)
	}
	if got.LoanID != l.LoanID {
		t.Errorf("unexpected loan: %+v", got)
	}

	if _, err := repo.GetByApplicationID(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown application, got %v", err)
	}
}

func TestLoanListByUserID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	for i := uint64(1); i <= 3; i++ {
		if err := repo.Create(ctx, makeLoan(id.NewID32(), userID, i)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	// another borrower, must not appear
	if err := repo.Create(ctx, makeLoan(id.NewID32(), id.NewID32(), 10)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 loans, got %d", len(got))
	}
	for _, l := range got {
		if l.UserID != userID {
			t.Errorf("foreign loan in listing: %+v", l)
		}
	}
}

func TestLoanTransactions(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32(), 7)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, my := range []string{"2026-07", "2026-08"} {
		if err := repo.CreateTransaction(ctx, &loanDomain.Transaction{
			LoanID:    l.ID,
			Amount:    l.EMI,
			MonthYear: my,
		}); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	txs, err := repo.ListTransactions(ctx, l.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].MonthYear != "2026-07" || txs[1].MonthYear != "2026-08" {
		t.Errorf("transactions out of insertion order: %+v", txs)
	}

	// unknown loan yields an empty slice, not an error
	none, err := repo.ListTransactions(ctx, 999)
	if err != nil {
		t.Fatalf("ListTransactions unknown loan: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no transactions, got %d", len(none))
	}
}

func TestLoanAggregates(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	// empty table: all aggregates are zero
	if n, err := repo.Count(ctx); err != nil || n != 0 {
		t.Fatalf("Count on empty table: n=%d err=%v", n, err)
	}
	if n, err := repo.CountRepaid(ctx); err != nil || n != 0 {
		t.Fatalf("CountRepaid on empty table: n=%d err=%v", n, err)
	}
	if s, err := repo.SumInterestOutstanding(ctx); err != nil || s != 0 {
		t.Fatalf("SumInterestOutstanding on empty table: s=%v err=%v", s, err)
	}

	// one active loan, one retired
	active := makeLoan(id.NewID32(), id.NewID32(), 1)
	active.PrincipalLeft = 10_000
	active.TenureMonths = 10
	if err := repo.Create(ctx, active); err != nil {
		t.Fatalf("Create: %v", err)
	}
	retired := makeLoan(id.NewID32(), id.NewID32(), 2)
	retired.PrincipalLeft = 0
	retired.IsPaid = true
	if err := repo.Create(ctx, retired); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if n, err := repo.Count(ctx); err != nil || n != 2 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}
	if n, err := repo.CountRepaid(ctx); err != nil || n != 1 {
		t.Fatalf("CountRepaid: n=%d err=%v", n, err)
	}

	// 10000 * 12 * 10 / 100 = 12000; the retired loan contributes nothing
	want := 10_000 * loanDomain.AnnualInterestRate * 10 / 100
	got, err := repo.SumInterestOutstanding(ctx)
	if err != nil {
		t.Fatalf("SumInterestOutstanding: %v", err)
	}
	if got != want {
		t.Errorf("SumInterestOutstanding got=%v want=%v", got, want)
	}
}
