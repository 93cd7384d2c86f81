package http

import (
	"net/http"

	mw "creditsea-backend/internal/adapter/middleware"
	loanUC "creditsea-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loanUC.Usecase }

func NewLoanHandler(uc *loanUC.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

// Fund approves the application and creates the loan record in one call.
func (h *LoanHandler) Fund(c echo.Context) error {
	adminID := mw.UserID(c)
	if adminID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: Admin ID missing"})
	}
	dto, err := h.uc.Fund(c.Request().Context(), adminID, c.Param("appId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Loan Approved & Created",
		"loan":    dto,
	})
}

func (h *LoanHandler) PayEMI(c echo.Context) error {
	userID := mw.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: User ID missing"})
	}
	newBalance, err := h.uc.PayEMI(c.Request().Context(), userID, c.Param("loanId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":    "EMI Payment Successful",
		"newBalance": newBalance,
	})
}

func (h *LoanHandler) Details(c echo.Context) error {
	dto, err := h.uc.Details(c.Request().Context(), c.Param("loanId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) UserLoans(c echo.Context) error {
	userID := mw.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: User ID missing"})
	}
	loans, err := h.uc.UserLoans(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "User loans fetched successfully",
		"loans":   loans,
	})
}

func (h *LoanHandler) UserTotal(c echo.Context) error {
	userID := mw.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: User ID missing"})
	}
	total, err := h.uc.UserTotal(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Total loan amount calculated successfully",
		"totalAmount": total,
	})
}

func (h *LoanHandler) Statistics(c echo.Context) error {
	stats, err := h.uc.Statistics(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":            "Loan statistics retrieved successfully",
		"totalLoans":         stats.TotalLoans,
		"totalUsers":         stats.TotalUsers,
		"totalDisbursedCash": stats.TotalDisbursedCash,
		"totalSavings":       stats.TotalSavings,
		"repaidLoansCount":   stats.RepaidLoansCount,
		"totalCashReceived":  stats.TotalCashReceived,
	})
}
