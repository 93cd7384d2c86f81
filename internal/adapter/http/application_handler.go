package http

import (
	"net/http"

	mw "creditsea-backend/internal/adapter/middleware"
	appUC "creditsea-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *appUC.Usecase }

func NewApplicationHandler(uc *appUC.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	Amount     float64 `json:"amount"     validate:"required,gt=0"`
	Tenure     int     `json:"tenure"     validate:"required,gt=0"`
	EmpStatus  string  `json:"empStatus"  validate:"required"`
	Reason     string  `json:"reason"`
	EmpAddress string  `json:"empAddress"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	userID := mw.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
	}

	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Amount, tenure, and employment status are required.",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Submit(c.Request().Context(), appUC.SubmitInput{
		UserID:     userID,
		Amount:     req.Amount,
		Tenure:     req.Tenure,
		EmpStatus:  req.EmpStatus,
		Reason:     req.Reason,
		EmpAddress: req.EmpAddress,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":     "Loan application submitted successfully",
		"application": dto,
	})
}

// ListMine returns the caller's applications, newest first.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	userID := mw.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
	}
	apps, err := h.uc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":      "User applications retrieved",
		"applications": apps,
	})
}

// ListAll backs the verifier and admin dashboards.
func (h *ApplicationHandler) ListAll(c echo.Context) error {
	apps, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":      "All applications retrieved",
		"applications": apps,
	})
}
