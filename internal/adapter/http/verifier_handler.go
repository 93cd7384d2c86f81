package http

import (
	"net/http"

	mw "creditsea-backend/internal/adapter/middleware"
	"creditsea-backend/internal/usecase/verifier"

	"github.com/labstack/echo/v4"
)

type VerifierHandler struct{ uc *verifier.Usecase }

func NewVerifierHandler(uc *verifier.Usecase) *VerifierHandler {
	return &VerifierHandler{uc: uc}
}

func (h *VerifierHandler) Verify(c echo.Context) error {
	verifierID := mw.UserID(c)
	if verifierID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: Verifier ID is missing"})
	}
	dto, err := h.uc.Verify(c.Request().Context(), verifierID, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Application verified successfully",
		"application": dto,
	})
}

func (h *VerifierHandler) Reject(c echo.Context) error {
	verifierID := mw.UserID(c)
	if verifierID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: Verifier ID is missing"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), verifierID, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Application rejected successfully",
		"application": dto,
	})
}
