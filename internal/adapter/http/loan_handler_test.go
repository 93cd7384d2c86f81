package http

import (
	"context"
	"encoding/json"
	"math"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appDomain "creditsea-backend/internal/domain/application"
	loanDomain "creditsea-backend/internal/domain/loan"
	"creditsea-backend/internal/domain/uow"
	"creditsea-backend/internal/testutil/appmock"
	"creditsea-backend/internal/testutil/loanmock"
	"creditsea-backend/internal/testutil/uowmock"
	"creditsea-backend/internal/testutil/usermock"
	loanUC "creditsea-backend/internal/usecase/loan"

	"gorm.io/gorm"
)

func TestFund_Success(t *testing.T) {
	e := newEchoWithValidator()

	appID := strings.Repeat("a", 32)
	adminID := strings.Repeat("d", 32)
	app := &appDomain.Application{
		ID:            1,
		ApplicationID: appID,
		UserID:        strings.Repeat("b", 32),
		Amount:        120_000,
		Tenure:        12,
		Status:        appDomain.StatusVerified,
	}

	var createdLoan *loanDomain.Loan
	loans := &loanmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, applicationID uint64) (*loanDomain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, l *loanDomain.Loan) error {
			l.ID = 1
			createdLoan = l
			return nil
		},
	}
	apps := &appmock.Repo{
		SaveFn: func(ctx context.Context, a *appDomain.Application) error { return nil },
	}
	tx := &uowmock.UoW{
		WithinApplicationTxFn: func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *appDomain.Application) error) error {
			if applicationID != appID {
				t.Fatalf("locked wrong application: %q", applicationID)
			}
			return fn(uow.Repos{Applications: apps, Loans: loans}, app)
		},
	}
	h := NewLoanHandler(loanUC.NewUsecase(loans, apps, &usermock.Repo{}, tx, testLogger()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan/approve/"+appID, nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, adminID, "ADMIN")
	c.SetParamNames("appId")
	c.SetParamValues(appID)

	if err := h.Fund(c); err != nil {
		t.Fatalf("Fund error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}

	if app.Status != appDomain.StatusApproved || app.ApprovedBy == nil || *app.ApprovedBy != adminID {
		t.Fatalf("application not approved by funding: %+v", app)
	}
	if createdLoan == nil {
		t.Fatalf("loan not created")
	}
	wantEMI := loanDomain.EMI(120_000, loanDomain.AnnualInterestRate, 12)
	if math.Abs(createdLoan.EMI-wantEMI) > 1e-9 || createdLoan.PrincipalLeft != 120_000 {
		t.Fatalf("unexpected loan: %+v", createdLoan)
	}

	var got struct {
		Loan loanUC.LoanDTO `json:"loan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Loan.UserID != app.UserID || got.Loan.TenureMonths != 12 {
		t.Fatalf("unexpected dto: %+v", got.Loan)
	}
}

func TestFund_ApplicationNotFound(t *testing.T) {
	e := newEchoWithValidator()

	tx := &uowmock.UoW{
		WithinApplicationTxFn: func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *appDomain.Application) error) error {
			return gorm.ErrRecordNotFound
		},
	}
	h := NewLoanHandler(loanUC.NewUsecase(&loanmock.Repo{}, &appmock.Repo{}, &usermock.Repo{}, tx, testLogger()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan/approve/xxx", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, strings.Repeat("d", 32), "ADMIN")
	c.SetParamNames("appId")
	c.SetParamValues("xxx")

	if err := h.Fund(c); err != nil {
		t.Fatalf("Fund error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestFund_AlreadyFunded(t *testing.T) {
	e := newEchoWithValidator()

	app := &appDomain.Application{ID: 1, ApplicationID: strings.Repeat("a", 32), Amount: 10_000, Tenure: 6}
	loans := &loanmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, applicationID uint64) (*loanDomain.Loan, error) {
			return &loanDomain.Loan{ID: 9, ApplicationID: applicationID}, nil
		},
	}
	tx := &uowmock.UoW{
		WithinApplicationTxFn: func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *appDomain.Application) error) error {
			return fn(uow.Repos{Applications: &appmock.Repo{}, Loans: loans}, app)
		},
	}
	h := NewLoanHandler(loanUC.NewUsecase(loans, &appmock.Repo{}, &usermock.Repo{}, tx, testLogger()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan/approve/"+app.ApplicationID, nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, strings.Repeat("d", 32), "ADMIN")
	c.SetParamNames("appId")
	c.SetParamValues(app.ApplicationID)

	if err := h.Fund(c); err != nil {
		t.Fatalf("Fund error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPayEMI_Success(t *testing.T) {
	e := newEchoWithValidator()

	loanID := strings.Repeat("e", 32)
	l := &loanDomain.Loan{
		ID:            3,
		LoanID:        loanID,
		UserID:        strings.Repeat("b", 32),
		InterestRate:  loanDomain.AnnualInterestRate,
		PrincipalLeft: 10_000,
		TenureMonths:  10,
		EMI:           1_000,
	}

	var savedBalance float64
	var recordedTx *loanDomain.Transaction
	loans := &loanmock.Repo{
		SaveFn: func(ctx context.Context, got *loanDomain.Loan) error {
			savedBalance = got.PrincipalLeft
			return nil
		},
		CreateTransactionFn: func(ctx context.Context, tr *loanDomain.Transaction) error {
			recordedTx = tr
			return nil
		},
	}
	tx := &uowmock.UoW{
		WithinLoanTxFn: func(ctx context.Context, id string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
			if id != loanID {
				t.Fatalf("locked wrong loan: %q", id)
			}
			return fn(uow.Repos{Loans: loans}, l)
		},
	}
	h := NewLoanHandler(loanUC.NewUsecase(loans, &appmock.Repo{}, &usermock.Repo{}, tx, testLogger()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan/pay/"+loanID, nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, l.UserID, "USER")
	c.SetParamNames("loanId")
	c.SetParamValues(loanID)

	if err := h.PayEMI(c); err != nil {
		t.Fatalf("PayEMI error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if savedBalance != 9_000 {
		t.Fatalf("saved balance = %v, want 9000", savedBalance)
	}
	if recordedTx == nil || recordedTx.Amount != 1_000 || len(recordedTx.MonthYear) != 7 {
		t.Fatalf("unexpected transaction: %+v", recordedTx)
	}

	var got struct {
		NewBalance float64 `json:"newBalance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.NewBalance != 9_000 {
		t.Fatalf("newBalance = %v, want 9000", got.NewBalance)
	}
}

func TestPayEMI_LoanNotFound(t *testing.T) {
	e := newEchoWithValidator()

	tx := &uowmock.UoW{
		WithinLoanTxFn: func(ctx context.Context, id string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
			return gorm.ErrRecordNotFound
		},
	}
	h := NewLoanHandler(loanUC.NewUsecase(&loanmock.Repo{}, &appmock.Repo{}, &usermock.Repo{}, tx, testLogger()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loan/pay/xxx", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, strings.Repeat("b", 32), "USER")
	c.SetParamNames("loanId")
	c.SetParamValues("xxx")

	if err := h.PayEMI(c); err != nil {
		t.Fatalf("PayEMI error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUserLoans_NoneFound(t *testing.T) {
	e := newEchoWithValidator()

	loans := &loanmock.Repo{
		ListByUserIDFn: func(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
			return nil, nil
		},
	}
	h := NewLoanHandler(loanUC.NewUsecase(loans, &appmock.Repo{}, &usermock.Repo{}, &uowmock.UoW{}, testLogger()))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loan/user", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, strings.Repeat("b", 32), "USER")

	if err := h.UserLoans(c); err != nil {
		t.Fatalf("UserLoans error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStatistics(t *testing.T) {
	e := newEchoWithValidator()

	loans := &loanmock.Repo{
		CountFn:                  func(ctx context.Context) (int64, error) { return 2, nil },
		CountRepaidFn:            func(ctx context.Context) (int64, error) { return 1, nil },
		SumInterestOutstandingFn: func(ctx context.Context) (float64, error) { return 300, nil },
	}
	apps := &appmock.Repo{
		SumApprovedAmountFn: func(ctx context.Context) (float64, error) { return 70_000, nil },
	}
	users := &usermock.Repo{
		CountFn: func(ctx context.Context) (int64, error) { return 5, nil },
	}
	h := NewLoanHandler(loanUC.NewUsecase(loans, apps, users, &uowmock.UoW{}, testLogger()))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loan/get-stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Statistics(c); err != nil {
		t.Fatalf("Statistics error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got["totalLoans"] != float64(2) || got["totalUsers"] != float64(5) || got["repaidLoansCount"] != float64(1) {
		t.Fatalf("unexpected counters: %+v", got)
	}
	if got["totalDisbursedCash"] != float64(70_000) || got["totalSavings"] != float64(300) {
		t.Fatalf("unexpected sums: %+v", got)
	}
	if got["totalCashReceived"] != float64(70_300) {
		t.Fatalf("totalCashReceived = %v, want 70300", got["totalCashReceived"])
	}
}
